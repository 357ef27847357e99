package resume

import (
	"strings"
	"time"
	"unicode"

	"github.com/jobscout/jobscout/internal/taxonomy"
)

// Profile is the structured candidate representation extracted from raw
// resume text. It is built once per session and treated as immutable; all
// accessors return copies so concurrent scoring never shares mutable state.
type Profile struct {
	skills          map[string]bool
	keywords        map[string]bool
	targetRoles     []string
	experienceYears float64
	rawText         string
}

// ExtractProfile parses raw resume text into a Profile. Every extraction
// step is best effort: a field that cannot be derived stays empty or zero,
// the call itself never fails.
func ExtractProfile(text string, tax *taxonomy.Taxonomy) *Profile {
	return extractProfileAt(text, tax, time.Now())
}

func extractProfileAt(text string, tax *taxonomy.Taxonomy, now time.Time) *Profile {
	p := &Profile{
		skills:   make(map[string]bool),
		keywords: make(map[string]bool),
		rawText:  text,
	}

	for _, skill := range tax.MatchText(text) {
		p.skills[skill] = true
	}

	p.keywords = Tokenize(text, tax)
	p.experienceYears = experienceYears(text, now)
	p.targetRoles = matchTargetRoles(text, tax)

	return p
}

// Tokenize splits text into the keyword set used for overlap scoring:
// lower-cased alphanumeric tokens of at least 3 characters, stop-words
// removed.
func Tokenize(text string, tax *taxonomy.Taxonomy) map[string]bool {
	keywords := make(map[string]bool)
	var word strings.Builder

	flush := func() {
		token := word.String()
		word.Reset()
		if len(token) < 3 || tax.IsStopWord(token) {
			return
		}
		keywords[token] = true
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return keywords
}

// matchTargetRoles keeps the candidate roles whose full phrase or
// discipline word (the role's last token) appears in the resume text.
func matchTargetRoles(text string, tax *taxonomy.Taxonomy) []string {
	lower := strings.ToLower(text)

	var roles []string
	for _, role := range tax.Roles {
		role = strings.ToLower(role)
		if strings.Contains(lower, role) {
			roles = append(roles, role)
			continue
		}
		words := strings.Fields(role)
		if len(words) > 1 && strings.Contains(lower, words[len(words)-1]) {
			roles = append(roles, role)
		}
	}
	return roles
}

// Skills returns a copy of the detected skill set, lower-cased.
func (p *Profile) Skills() map[string]bool {
	return copySet(p.skills)
}

// Keywords returns a copy of the keyword set.
func (p *Profile) Keywords() map[string]bool {
	return copySet(p.keywords)
}

// TargetRoles returns a copy of the matched candidate roles.
func (p *Profile) TargetRoles() []string {
	out := make([]string, len(p.targetRoles))
	copy(out, p.targetRoles)
	return out
}

// ExperienceYears is the total experience summed over all date ranges found
// in the resume, in years.
func (p *Profile) ExperienceYears() float64 {
	return p.experienceYears
}

// RawText returns the original resume text.
func (p *Profile) RawText() string {
	return p.rawText
}

func copySet(src map[string]bool) map[string]bool {
	dst := make(map[string]bool, len(src))
	for k := range src {
		dst[k] = true
	}
	return dst
}
