package taxonomy

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/viper"
)

// Taxonomy is the single skill vocabulary shared by the resume profile
// extractor and the requirement extractor. Keeping it in one place avoids
// the vocabulary drift that comes from per-matcher literal skill lists.
type Taxonomy struct {
	// Categories maps a category name to its ordered list of terms.
	Categories map[string][]string `mapstructure:"categories"`
	// Roles is the candidate-role list used for title relevance scoring.
	Roles []string `mapstructure:"roles"`
	// StopWords are dropped during keyword tokenization.
	StopWords []string `mapstructure:"stop-words"`

	stopSet map[string]bool
	terms   []string
}

// Synonyms maps shorthand skill spellings to their canonical form. Both
// sides are compared after normalization (lower-case, separators stripped).
var Synonyms = map[string]string{
	"js":     "javascript",
	"ts":     "typescript",
	"node":   "nodejs",
	"ml":     "machine learning",
	"ai":     "artificial intelligence",
	"dl":     "deep learning",
	"nlp":    "natural language processing",
	"k8s":    "kubernetes",
	"nosql":  "mongodb",
	"rdbms":  "sql",
	"gcloud": "gcp",
}

// RoleSynonyms pairs interchangeable title words. Used when a job title and
// a target role share no tokens at all.
var RoleSynonyms = map[string][]string{
	"engineer":  {"developer", "specialist", "analyst"},
	"developer": {"engineer", "programmer", "coder"},
	"manager":   {"lead", "supervisor", "coordinator"},
	"analyst":   {"specialist", "engineer", "scientist"},
	"senior":    {"lead", "principal", "staff"},
	"junior":    {"entry", "graduate", "associate"},
}

// ActionTerms are verbs that signal hands-on responsibility in both resumes
// and job descriptions. Shared occurrences feed the content-overlap score.
var ActionTerms = []string{
	"responsible for", "experience in", "worked with", "developed", "managed",
	"led", "implemented", "designed", "built", "created", "maintained",
	"collaborated", "analyzed", "optimized", "improved", "delivered",
}

// Default returns the built-in vocabulary. A file loaded with Load replaces
// it wholesale, never merges.
func Default() *Taxonomy {
	t := &Taxonomy{
		Categories: map[string][]string{
			"programming": {
				"python", "java", "javascript", "typescript", "c++", "c#", "ruby",
				"go", "rust", "swift", "kotlin", "scala", "php", "perl", "bash",
				"matlab", "r",
			},
			"web": {
				"html", "css", "react", "angular", "vue", "nodejs", "express",
				"django", "flask", "spring", "rails", "laravel", "graphql", "rest",
			},
			"data": {
				"sql", "mysql", "postgresql", "mongodb", "oracle", "redis",
				"cassandra", "elasticsearch", "sqlite", "spark", "hadoop",
				"tableau", "power bi",
			},
			"cloud": {
				"aws", "azure", "gcp", "docker", "kubernetes", "terraform",
				"ansible", "jenkins", "gitlab", "github", "git", "ci/cd",
			},
			"ai": {
				"machine learning", "deep learning", "tensorflow", "pytorch",
				"keras", "scikit-learn", "pandas", "numpy", "data analysis",
				"statistics", "nlp", "computer vision", "artificial intelligence",
			},
			"engineering": {
				"autocad", "solidworks", "catia", "ansys", "simulink", "revit",
				"inventor", "abaqus", "comsol", "labview", "cfd", "fea", "hvac",
				"scada",
			},
			"business": {
				"excel", "powerpoint", "sharepoint", "jira", "confluence",
				"salesforce", "sap", "crm", "project management",
			},
			"methodology": {
				"agile", "scrum", "kanban", "lean", "six sigma", "devops", "tdd",
				"microservices",
			},
		},
		Roles: []string{
			"software engineer", "backend engineer", "frontend engineer",
			"full stack developer", "data engineer", "data analyst",
			"data scientist", "machine learning engineer", "devops engineer",
			"cloud engineer", "platform engineer", "site reliability engineer",
			"mechanical engineer", "thermal engineer", "power engineer",
			"energy engineer", "hvac engineer", "design engineer",
			"project engineer", "sales engineer", "simulation engineer",
			"graduate engineer", "junior engineer", "engineering analyst",
		},
		StopWords: []string{
			"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
			"of", "with", "by", "from", "as", "is", "are", "was", "were", "be",
			"been", "has", "have", "had", "will", "would", "can", "could", "our",
			"your", "their", "this", "that", "these", "those", "you", "we",
			"they", "all", "any", "not", "into", "about", "more", "than", "also",
			"such", "other", "its", "it", "per", "via",
		},
	}
	t.index()
	return t
}

// Load reads a taxonomy file (YAML) and returns it fully indexed. The file
// must provide categories; roles and stop-words fall back to the defaults
// when absent.
func Load(path string) (*Taxonomy, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading taxonomy file %q: %w", path, err)
	}

	var t Taxonomy
	if err := v.Unmarshal(&t); err != nil {
		return nil, fmt.Errorf("parsing taxonomy file %q: %w", path, err)
	}

	if len(t.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy file %q defines no categories", path)
	}

	def := Default()
	if len(t.Roles) == 0 {
		t.Roles = def.Roles
	}
	if len(t.StopWords) == 0 {
		t.StopWords = def.StopWords
	}

	t.index()
	return &t, nil
}

func (t *Taxonomy) index() {
	t.stopSet = make(map[string]bool, len(t.StopWords))
	for _, w := range t.StopWords {
		t.stopSet[strings.ToLower(w)] = true
	}

	seen := make(map[string]bool)
	categories := make([]string, 0, len(t.Categories))
	for name := range t.Categories {
		categories = append(categories, name)
	}
	// Category iteration order must not leak into term order.
	sort.Strings(categories)

	t.terms = t.terms[:0]
	for _, name := range categories {
		for _, term := range t.Categories[name] {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" || seen[term] {
				continue
			}
			seen[term] = true
			t.terms = append(t.terms, term)
		}
	}
}

// Terms returns every vocabulary term, lower-cased, in deterministic order.
func (t *Taxonomy) Terms() []string {
	out := make([]string, len(t.terms))
	copy(out, t.terms)
	return out
}

// MatchText returns the vocabulary terms contained in the given text,
// case-insensitively, preserving taxonomy order. Terms shorter than four
// characters match only on word boundaries so "r" and "go" do not fire
// inside unrelated words.
func (t *Taxonomy) MatchText(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, term := range t.terms {
		if len(term) >= 4 {
			if strings.Contains(lower, term) {
				found = append(found, term)
			}
			continue
		}
		if containsWord(lower, term) {
			found = append(found, term)
		}
	}
	return found
}

func containsWord(text, term string) bool {
	for start := 0; ; {
		i := strings.Index(text[start:], term)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(term)

		// Decode whole runes around the match; indexing single bytes would
		// read a multibyte letter as a boundary.
		before, _ := utf8.DecodeLastRuneInString(text[:i])
		after, _ := utf8.DecodeRuneInString(text[end:])
		beforeOK := i == 0 || !isWordRune(before)
		afterOK := end == len(text) || !isWordRune(after)
		if beforeOK && afterOK {
			return true
		}
		start = i + 1
	}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsStopWord reports whether the token is in the stop-word list.
func (t *Taxonomy) IsStopWord(token string) bool {
	return t.stopSet[strings.ToLower(token)]
}

// NormalizeSkill lower-cases a skill and strips separator characters so
// "Node.JS", "node-js" and "nodejs" compare equal.
func NormalizeSkill(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	replacer := strings.NewReplacer("-", "", "_", "", ".", "", " ", "")
	return replacer.Replace(s)
}

// SkillsEquivalent reports whether two skills name the same thing after
// normalization or through the synonym table.
func SkillsEquivalent(a, b string) bool {
	na, nb := NormalizeSkill(a), NormalizeSkill(b)
	if na == nb {
		return true
	}
	for short, canonical := range Synonyms {
		ns, nc := NormalizeSkill(short), NormalizeSkill(canonical)
		if (na == ns && nb == nc) || (nb == ns && na == nc) {
			return true
		}
	}
	return false
}
