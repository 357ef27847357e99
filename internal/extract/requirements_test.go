package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jobscout/jobscout/internal/taxonomy"
)

func TestExperienceRequirementCascade(t *testing.T) {
	cases := []struct {
		name      string
		title     string
		desc      string
		wantYears float64
		wantLevel Seniority
	}{
		{
			name:      "intern overrides numeric claims",
			title:     "Software Engineering Intern",
			desc:      "Our team has 5+ years of experience building platforms.",
			wantYears: 0,
			wantLevel: SeniorityIntern,
		},
		{
			name:      "plus years",
			title:     "Backend Engineer",
			desc:      "Requires 5+ years of experience with distributed systems.",
			wantYears: 5,
			wantLevel: SeniorityMid,
		},
		{
			name:      "range takes lower bound",
			title:     "Data Engineer",
			desc:      "We expect 3-5 years experience with data pipelines.",
			wantYears: 3,
			wantLevel: SeniorityJunior,
		},
		{
			name:      "minimum of",
			title:     "Platform Engineer",
			desc:      "Minimum of 7 years in infrastructure roles.",
			wantYears: 7,
			wantLevel: SenioritySenior,
		},
		{
			name:      "at least",
			title:     "SRE",
			desc:      "At least 2 years running production systems.",
			wantYears: 2,
			wantLevel: SeniorityJunior,
		},
		{
			name:      "senior keyword",
			title:     "Senior Software Engineer",
			desc:      "Join our backend team.",
			wantYears: 6,
			wantLevel: SenioritySenior,
		},
		{
			name:      "junior beats senior in priority order",
			title:     "Junior Engineer",
			desc:      "You will report to a senior lead.",
			wantYears: 1,
			wantLevel: SeniorityJunior,
		},
		{
			name:      "entry level",
			title:     "Software Engineer",
			desc:      "Entry level position, mentorship provided.",
			wantYears: 0,
			wantLevel: SeniorityEntry,
		},
		{
			name:      "director",
			title:     "Director of Engineering",
			desc:      "Own the engineering org.",
			wantYears: 10,
			wantLevel: SeniorityDirector,
		},
		{
			name:      "no signal defaults to zero",
			title:     "Software Engineer",
			desc:      "Work on interesting problems.",
			wantYears: 0,
			wantLevel: SeniorityUnspecified,
		},
	}

	tax := taxonomy.Default()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sig := Requirements(tc.title, tc.desc, tax)
			assert.Equal(t, tc.wantYears, sig.RequiredExperienceYears)
			assert.Equal(t, tc.wantLevel, sig.Seniority)
		})
	}
}

func TestRequiredSkillsFromTaxonomy(t *testing.T) {
	sig := Requirements(
		"Backend Engineer",
		"You will build services in Go and Python, backed by PostgreSQL and Redis, deployed on Kubernetes.",
		taxonomy.Default(),
	)

	for _, want := range []string{"python", "postgresql", "redis", "kubernetes"} {
		assert.True(t, sig.RequiredSkills[want], "expected skill %q, got %v", want, sig.RequiredSkills)
	}
}

func TestRequiredSkillsFromPhrases(t *testing.T) {
	sig := Requirements(
		"Data Engineer",
		"Technologies: Airflow, dbt, Snowflake. Must be proficient in terraform.",
		taxonomy.Default(),
	)

	for _, want := range []string{"airflow", "dbt", "snowflake", "terraform"} {
		assert.True(t, sig.RequiredSkills[want], "expected skill %q, got %v", want, sig.RequiredSkills)
	}
}

func TestRequiredSkillsFiltersNoise(t *testing.T) {
	sig := Requirements(
		"Engineer",
		"Familiar with it. Technologies: ab, this-is-a-ridiculously-long-skill-name-way-over-limit.",
		taxonomy.Default(),
	)

	assert.False(t, sig.RequiredSkills["it"], "two-char fragments must be dropped")
	assert.False(t, sig.RequiredSkills["ab"], "short fragments must be dropped")
	for skill := range sig.RequiredSkills {
		assert.LessOrEqual(t, len(skill), 30)
	}
}

func TestRequirementsTotal(t *testing.T) {
	sig := Requirements("", "", taxonomy.Default())
	assert.NotNil(t, sig.RequiredSkills)
	assert.Zero(t, sig.RequiredExperienceYears)
}
