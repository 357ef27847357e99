package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jobscout/jobscout/internal/taxonomy"
)

// Seniority is the categorical level derived from a posting when no
// explicit year requirement is stated.
type Seniority string

const (
	SeniorityUnspecified Seniority = "unspecified"
	SeniorityIntern      Seniority = "intern"
	SeniorityEntry       Seniority = "entry"
	SeniorityJunior      Seniority = "junior"
	SeniorityMid         Seniority = "mid"
	SenioritySenior      Seniority = "senior"
	SeniorityLead        Seniority = "lead"
	SeniorityDirector    Seniority = "director"
	SeniorityExecutive   Seniority = "executive"
)

// Signals holds the structured requirements derived from one posting.
// Extraction is total: any field that cannot be derived gets its neutral
// default, the call itself never fails.
type Signals struct {
	RequiredExperienceYears float64
	RequiredSkills          map[string]bool
	Seniority               Seniority
}

var (
	internPattern = regexp.MustCompile(
		`(?i)\b(intern|internship|working student|co-op|graduate trainee|traineeship)\b`)

	// Explicit numeric requirements, checked in order. Range patterns take
	// the lower bound.
	rangeYearsPattern = regexp.MustCompile(
		`(?i)\b(\d{1,2})\s*(?:to|-)\s*(\d{1,2})\s*(?:years?|yrs?)\b`)
	plusYearsPattern = regexp.MustCompile(
		`(?i)\b(\d{1,2})\+?\s*(?:years?|yrs?)\s*(?:of\s+)?(?:professional\s+|relevant\s+|related\s+)?(?:work\s+)?(?:experience|exp)\b`)
	minimumYearsPattern = regexp.MustCompile(
		`(?i)\b(?:minimum\s+(?:of\s+)?|at\s+least\s+)(\d{1,2})\+?\s*(?:years?|yrs?)\b`)
	yearsMinimumPattern = regexp.MustCompile(
		`(?i)\b(\d{1,2})\s*(?:years?|yrs?)\s+minimum\b`)
)

// seniorityLevels maps categorical keywords to implied years, scanned in
// fixed priority order: the most junior signals win so that a "junior
// engineer reporting to a senior lead" posting resolves to junior.
var seniorityLevels = []struct {
	keyword   string
	years     float64
	seniority Seniority
}{
	{"entry level", 0, SeniorityEntry},
	{"entry-level", 0, SeniorityEntry},
	{"no experience required", 0, SeniorityEntry},
	{"recent graduate", 0, SeniorityEntry},
	{"fresh graduate", 0, SeniorityEntry},
	{"trainee", 0, SeniorityEntry},
	{"junior", 1, SeniorityJunior},
	{"associate level", 1, SeniorityJunior},
	{"mid-level", 3, SeniorityMid},
	{"mid level", 3, SeniorityMid},
	{"intermediate", 3, SeniorityMid},
	{"senior", 6, SenioritySenior},
	{"lead", 7, SeniorityLead},
	{"principal", 8, SeniorityLead},
	{"staff engineer", 8, SeniorityLead},
	{"architect", 8, SeniorityLead},
	{"manager", 8, SeniorityLead},
	{"head of", 10, SeniorityDirector},
	{"director", 10, SeniorityDirector},
	{"vice president", 12, SeniorityExecutive},
	{"vp ", 12, SeniorityExecutive},
	{"c-level", 15, SeniorityExecutive},
	{"cto", 15, SeniorityExecutive},
}

// skillPhrasePatterns pull skill fragments out of requirement prose. The
// captured group is split on delimiters afterwards.
var skillPhrasePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:proficient|experienced?|knowledge|expertise|familiar)\s+(?:in|with)\s+([^,.;:\n]+)`),
	regexp.MustCompile(`(?i)\b(?:technologies|tools|frameworks?|languages?|stack)\s*:\s*([^.;\n]+)`),
	regexp.MustCompile(`(?i)\b(?:required|preferred)\s+(?:skills?|qualifications?)\s*:\s*([^.;\n]+)`),
}

var skillDelimiters = regexp.MustCompile(`[,;/&|]|\band\b|\bor\b`)

// Requirements derives Signals from a posting's title and description.
func Requirements(title, description string, tax *taxonomy.Taxonomy) Signals {
	text := strings.ToLower(title + " " + description)

	years, seniority := experienceRequirement(text)

	return Signals{
		RequiredExperienceYears: years,
		RequiredSkills:          jobSkills(text, tax),
		Seniority:               seniority,
	}
}

// experienceRequirement resolves the required years cascade. Intern and
// student phrasing forces 0 regardless of any numeric claims, then explicit
// numbers win, then the categorical table, then the 0 default.
func experienceRequirement(text string) (float64, Seniority) {
	if internPattern.MatchString(text) {
		return 0, SeniorityIntern
	}

	if m := rangeYearsPattern.FindStringSubmatch(text); m != nil {
		low, _ := strconv.Atoi(m[1])
		return float64(low), seniorityForYears(float64(low))
	}
	for _, pattern := range []*regexp.Regexp{plusYearsPattern, minimumYearsPattern, yearsMinimumPattern} {
		if m := pattern.FindStringSubmatch(text); m != nil {
			years, _ := strconv.Atoi(m[1])
			return float64(years), seniorityForYears(float64(years))
		}
	}

	for _, level := range seniorityLevels {
		if strings.Contains(text, level.keyword) {
			return level.years, level.seniority
		}
	}

	return 0, SeniorityUnspecified
}

func seniorityForYears(years float64) Seniority {
	switch {
	case years <= 1:
		return SeniorityEntry
	case years <= 3:
		return SeniorityJunior
	case years <= 6:
		return SeniorityMid
	case years <= 10:
		return SenioritySenior
	default:
		return SeniorityDirector
	}
}

// jobSkills combines taxonomy containment with pattern-based extraction
// from requirement phrases.
func jobSkills(text string, tax *taxonomy.Taxonomy) map[string]bool {
	skills := make(map[string]bool)

	for _, term := range tax.MatchText(text) {
		skills[term] = true
	}

	for _, pattern := range skillPhrasePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			fragment := strings.TrimSpace(match[1])
			if len(fragment) > 80 {
				// Whole-sentence captures are noise, not skill lists.
				continue
			}
			for _, part := range skillDelimiters.Split(fragment, -1) {
				part = strings.TrimSpace(part)
				if len(part) < 3 || len(part) > 30 {
					continue
				}
				if tax.IsStopWord(part) {
					continue
				}
				skills[part] = true
			}
		}
	}

	return skills
}
