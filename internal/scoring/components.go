package scoring

import (
	"sort"
	"strings"

	"github.com/jobscout/jobscout/internal/taxonomy"
)

// Component functions all return scores on the [0,100] scale. They are pure
// and total over well-formed inputs; the engine isolates any panic as a 0
// contribution.

// keywordOverlap scores the fraction of resume keywords found as substrings
// of the job description, and returns the matched keywords sorted.
func keywordOverlap(keywords map[string]bool, description string) (float64, []string) {
	if len(keywords) == 0 {
		return 0, nil
	}
	desc := strings.ToLower(description)

	var matched []string
	for keyword := range keywords {
		if strings.Contains(desc, keyword) {
			matched = append(matched, keyword)
		}
	}
	sort.Strings(matched)
	return float64(len(matched)) / float64(len(keywords)) * 100, matched
}

// titleRelevance scores the best target role against the job title. Token
// overlap dominates, substring containment of either string in the other is
// a strong signal, and the role-synonym table catches titles that share no
// token with any role. A profile with no target roles is neutral.
func titleRelevance(targetRoles []string, title string) float64 {
	if len(targetRoles) == 0 {
		return 50
	}
	titleLower := strings.ToLower(strings.TrimSpace(title))
	titleTokens := tokenSet(titleLower)

	best := 0.0
	for _, role := range targetRoles {
		role = strings.ToLower(strings.TrimSpace(role))
		score := 0.0

		roleTokens := tokenSet(role)
		if len(roleTokens) > 0 {
			shared := 0
			for token := range roleTokens {
				if titleTokens[token] {
					shared++
				}
			}
			score = float64(shared) / float64(len(roleTokens)) * 100
		}

		if score < 85 && (strings.Contains(titleLower, role) || strings.Contains(role, titleLower)) {
			score = 85
		}
		if score == 0 && roleSynonymMatch(roleTokens, titleTokens) {
			score = 70
		}

		if score > best {
			best = score
		}
	}
	return best
}

func roleSynonymMatch(roleTokens, titleTokens map[string]bool) bool {
	for token := range roleTokens {
		for _, synonym := range taxonomy.RoleSynonyms[token] {
			if titleTokens[synonym] {
				return true
			}
		}
	}
	return false
}

// skillOverlap blends coverage of the job's required skills with
// utilization of the candidate's own set, 70/30. Matching uses normalized
// equality, the synonym table, and substring containment. Returns the
// matched required skills sorted. A posting with no detectable skill
// requirements is neutral.
func skillOverlap(candidate, required map[string]bool) (float64, []string) {
	if len(required) == 0 {
		return 50, nil
	}
	if len(candidate) == 0 {
		return 0, nil
	}

	matchedRequired := make(map[string]bool)
	matchedCandidate := make(map[string]bool)
	for req := range required {
		for cand := range candidate {
			if skillsMatch(cand, req) {
				matchedRequired[req] = true
				matchedCandidate[cand] = true
			}
		}
	}

	coverage := float64(len(matchedRequired)) / float64(len(required))
	utilization := float64(len(matchedCandidate)) / float64(len(candidate))
	score := (coverage*0.7 + utilization*0.3) * 100

	matched := make([]string, 0, len(matchedRequired))
	for skill := range matchedRequired {
		matched = append(matched, skill)
	}
	sort.Strings(matched)
	return score, matched
}

func skillsMatch(candidate, required string) bool {
	if taxonomy.SkillsEquivalent(candidate, required) {
		return true
	}
	// Substring containment catches "postgres" vs "postgresql"; short
	// tokens are excluded to keep "r" or "go" from matching everything.
	if len(candidate) >= 4 && len(required) >= 4 {
		return strings.Contains(required, candidate) || strings.Contains(candidate, required)
	}
	return false
}

// experienceFit is a piecewise function of candidate minus required years.
// Zero-requirement postings accept everyone, with a mild overqualification
// penalty so senior candidates are not funneled into entry roles.
func experienceFit(candidateYears, requiredYears float64) float64 {
	diff := candidateYears - requiredYears

	if requiredYears == 0 {
		if diff >= 3 {
			return 70
		}
		return 100
	}

	switch {
	case diff >= 0:
		return 100
	case diff >= -1:
		return 80
	case diff >= -2:
		return 60
	default:
		score := 40 - 5*(-diff)
		if score < 20 {
			return 20
		}
		return score
	}
}

// contentOverlap measures how much of the description's language the resume
// itself speaks: word-set Jaccard (.4), shared bigram/trigram phrases with
// trigrams weighted 1.5x (.35), and shared action-context terms (.25).
func contentOverlap(resumeText, description string) float64 {
	resumeTokens := tokenize(resumeText)
	descTokens := tokenize(description)
	if len(resumeTokens) == 0 || len(descTokens) == 0 {
		return 0
	}

	jaccard := jaccardOverlap(toSet(resumeTokens), toSet(descTokens))
	phrases := phraseOverlap(resumeTokens, descTokens)
	actions := actionTermOverlap(resumeText, description)

	return (jaccard*0.4 + phrases*0.35 + actions*0.25) * 100
}

func jaccardOverlap(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for token := range a {
		if b[token] {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	return float64(shared) / float64(union)
}

func phraseOverlap(resumeTokens, descTokens []string) float64 {
	resumeBi, resumeTri := ngramSet(resumeTokens, 2), ngramSet(resumeTokens, 3)
	descBi, descTri := ngramSet(descTokens, 2), ngramSet(descTokens, 3)

	sharedBi := intersectionSize(resumeBi, descBi)
	sharedTri := intersectionSize(resumeTri, descTri)

	base := float64(min(len(resumeBi), len(descBi))) + 1.5*float64(min(len(resumeTri), len(descTri)))
	if base == 0 {
		return 0
	}
	score := (float64(sharedBi) + 1.5*float64(sharedTri)) / base
	if score > 1 {
		score = 1
	}
	return score
}

// actionTermOverlap scores the action terms appearing in both texts against
// those the description uses at all.
func actionTermOverlap(resumeText, description string) float64 {
	resumeLower := strings.ToLower(resumeText)
	descLower := strings.ToLower(description)

	inDesc, inBoth := 0, 0
	for _, term := range taxonomy.ActionTerms {
		if !strings.Contains(descLower, term) {
			continue
		}
		inDesc++
		if strings.Contains(resumeLower, term) {
			inBoth++
		}
	}
	if inDesc == 0 {
		return 0
	}
	return float64(inBoth) / float64(inDesc)
}

func tokenSet(s string) map[string]bool {
	return toSet(tokenize(s))
}

func toSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

func intersectionSize(a, b map[string]bool) int {
	n := 0
	for k := range a {
		if b[k] {
			n++
		}
	}
	return n
}
