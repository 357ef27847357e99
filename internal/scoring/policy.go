package scoring

import (
	"fmt"
	"math"
	"sort"
)

// Component names one sub-score of the final match score.
type Component string

const (
	ComponentKeyword    Component = "keyword"
	ComponentTitle      Component = "title"
	ComponentSkills     Component = "skills"
	ComponentSemantic   Component = "semantic"
	ComponentExperience Component = "experience"
	ComponentContent    Component = "content_overlap"
	ComponentUserSkills Component = "user_skills"
)

// Policy is a named weight vector over components. New scoring strategies
// are data, not code: the engine evaluates whatever components a policy
// weights.
type Policy struct {
	Name    string
	Weights map[Component]float64
}

// The three built-in policies.
const (
	PolicyStandard           = "standard"
	PolicyEnhanced           = "enhanced"
	PolicyDescriptionFocused = "description_focused"
)

var policies = map[string]Policy{
	PolicyStandard: {
		Name: PolicyStandard,
		Weights: map[Component]float64{
			ComponentKeyword:    0.25,
			ComponentTitle:      0.20,
			ComponentSkills:     0.25,
			ComponentSemantic:   0.15,
			ComponentExperience: 0.15,
		},
	},
	// Enhanced splits the candidate signal 60/40 between resume-derived and
	// user-declared inputs: user skills carry their own component and the
	// experience component runs on the user-declared years when set.
	PolicyEnhanced: {
		Name: PolicyEnhanced,
		Weights: map[Component]float64{
			ComponentKeyword:    0.15,
			ComponentTitle:      0.15,
			ComponentSkills:     0.20,
			ComponentSemantic:   0.10,
			ComponentUserSkills: 0.25,
			ComponentExperience: 0.15,
		},
	},
	PolicyDescriptionFocused: {
		Name: PolicyDescriptionFocused,
		Weights: map[Component]float64{
			ComponentKeyword:    0.10,
			ComponentTitle:      0.05,
			ComponentSkills:     0.20,
			ComponentSemantic:   0.25,
			ComponentExperience: 0.05,
			ComponentContent:    0.35,
		},
	},
}

// LookupPolicy returns the named policy, validated.
func LookupPolicy(name string) (Policy, error) {
	p, ok := policies[name]
	if !ok {
		return Policy{}, fmt.Errorf("unknown matcher %q, valid values: %v", name, PolicyNames())
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// PolicyNames returns the registered policy names, sorted.
func PolicyNames() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the policy invariant: non-negative weights summing
// to 1.0 within 1e-6.
func (p Policy) Validate() error {
	sum := 0.0
	for component, weight := range p.Weights {
		if weight < 0 {
			return fmt.Errorf("policy %q: component %s has negative weight %v", p.Name, component, weight)
		}
		sum += weight
	}
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("policy %q: weights sum to %v, want 1.0", p.Name, sum)
	}
	return nil
}
