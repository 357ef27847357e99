package scoring

import (
	"sort"
	"strings"

	"github.com/jobscout/jobscout/internal/extract"
	"github.com/jobscout/jobscout/internal/jobs"
	"github.com/jobscout/jobscout/internal/resume"
)

// UserOverrides carries the candidate facts declared in configuration
// rather than extracted from the resume. Declared values win: a non-negative
// ExperienceYears replaces the resume-derived years in every policy, and
// Skills either score as their own component (enhanced policy) or join the
// candidate skill set.
type UserOverrides struct {
	Skills          []string
	ExperienceYears float64
}

// NoUserExperience marks ExperienceYears as unset.
const NoUserExperience = -1

// MatchResult is the scored outcome for one posting.
type MatchResult struct {
	Posting            *jobs.Posting
	Score              float64
	MatchedSkills      []string
	MatchedKeywords    []string
	Breakdown          map[Component]float64
	RequiredExperience float64
}

// Engine evaluates one weighting policy over the shared component set. It
// is safe for concurrent use: the profile is read through copying accessors
// and the cache is internally locked.
type Engine struct {
	policy Policy
	user   UserOverrides
	cache  *Cache
}

// Fixed evaluation order keeps float accumulation, and therefore scores,
// identical across runs.
var componentOrder = []Component{
	ComponentKeyword,
	ComponentTitle,
	ComponentSkills,
	ComponentUserSkills,
	ComponentSemantic,
	ComponentExperience,
	ComponentContent,
}

func NewEngine(policy Policy, user UserOverrides, cache *Cache) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if cache == nil {
		cache = NewCache(256)
	}
	return &Engine{policy: policy, user: user, cache: cache}, nil
}

// Score combines the profile and the posting's requirement signals into a
// [0,100] match score with a per-component breakdown. A panicking component
// contributes 0; the call itself never fails.
func (e *Engine) Score(profile *resume.Profile, posting *jobs.Posting, signals extract.Signals) *MatchResult {
	result := &MatchResult{
		Posting:            posting,
		Breakdown:          make(map[Component]float64, len(e.policy.Weights)),
		RequiredExperience: signals.RequiredExperienceYears,
	}

	candidateYears := profile.ExperienceYears()
	if e.user.ExperienceYears >= 0 {
		candidateYears = e.user.ExperienceYears
	}

	candidateSkills := profile.Skills()
	userSkills := skillSet(e.user.Skills)
	_, scoresUserSkills := e.policy.Weights[ComponentUserSkills]
	if !scoresUserSkills {
		for skill := range userSkills {
			candidateSkills[skill] = true
		}
	}

	total := 0.0
	for _, component := range componentOrder {
		weight, ok := e.policy.Weights[component]
		if !ok {
			continue
		}

		value := safeComponent(func() float64 {
			switch component {
			case ComponentKeyword:
				v, matched := keywordOverlap(profile.Keywords(), posting.Description)
				result.MatchedKeywords = matched
				return v
			case ComponentTitle:
				return titleRelevance(profile.TargetRoles(), posting.Title)
			case ComponentSkills:
				v, matched := skillOverlap(candidateSkills, signals.RequiredSkills)
				result.MatchedSkills = matched
				return v
			case ComponentUserSkills:
				v, matched := skillOverlap(userSkills, signals.RequiredSkills)
				result.MatchedSkills = mergeSorted(result.MatchedSkills, matched)
				return v
			case ComponentSemantic:
				return e.semantic(profile, posting)
			case ComponentExperience:
				return experienceFit(candidateYears, signals.RequiredExperienceYears)
			case ComponentContent:
				return contentOverlap(profile.RawText(), posting.Description)
			default:
				return 0
			}
		})

		result.Breakdown[component] = value
		total += value * weight
	}

	result.Score = clamp(total, 0, 100)
	return result
}

// semantic is the cached TF-IDF cosine between the profile's skill/keyword
// vocabulary and the posting description.
func (e *Engine) semantic(profile *resume.Profile, posting *jobs.Posting) float64 {
	key := posting.URL
	if key == "" {
		key = posting.DedupKey()
	}
	if v, ok := e.cache.Get(key); ok {
		return v
	}

	v := tfidfSimilarity(profileText(profile), posting.Description) * 100
	e.cache.Put(key, v)
	return v
}

func profileText(profile *resume.Profile) string {
	var parts []string
	for _, set := range []map[string]bool{profile.Skills(), profile.Keywords()} {
		keys := make([]string, 0, len(set))
		for k := range set {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts = append(parts, keys...)
	}
	parts = append(parts, profile.TargetRoles()...)
	return strings.Join(parts, " ")
}

func safeComponent(fn func() float64) (value float64) {
	defer func() {
		if recover() != nil {
			value = 0
		}
	}()
	return fn()
}

func skillSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			set[s] = true
		}
	}
	return set
}

func mergeSorted(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		seen[s] = true
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
