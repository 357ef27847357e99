package scoring

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Term-frequency/inverse-document-frequency cosine similarity over the two
// input texts, with 1 to 3 word n-grams. Degenerate inputs (empty text, no
// shared vocabulary) score 0, never fail.

const maxNgram = 3

func tfidfSimilarity(a, b string) float64 {
	docA := ngramCounts(tokenize(a), maxNgram)
	docB := ngramCounts(tokenize(b), maxNgram)
	if len(docA) == 0 || len(docB) == 0 {
		return 0
	}

	// Smoothed idf over the two-document corpus: shared terms are damped,
	// document-unique terms emphasized.
	idf := func(term string) float64 {
		df := 0.0
		if _, ok := docA[term]; ok {
			df++
		}
		if _, ok := docB[term]; ok {
			df++
		}
		return math.Log(3.0/(1.0+df)) + 1.0
	}

	// Accumulate in sorted term order; map iteration order would change the
	// float sums, and therefore the score, between runs.
	var dot, normA, normB float64
	for _, term := range sortedTerms(docA) {
		w := docA[term] * idf(term)
		normA += w * w
		if tfB, ok := docB[term]; ok {
			dot += w * tfB * idf(term)
		}
	}
	for _, term := range sortedTerms(docB) {
		w := docB[term] * idf(term)
		normB += w * w
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func sortedTerms(doc map[string]float64) []string {
	terms := make([]string, 0, len(doc))
	for term := range doc {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// tokenize lower-cases and splits on every non-alphanumeric rune, dropping
// single-character fragments.
func tokenize(text string) []string {
	var tokens []string
	var word strings.Builder

	flush := func() {
		if word.Len() >= 2 {
			tokens = append(tokens, word.String())
		}
		word.Reset()
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// ngramCounts returns term frequencies of all 1..n word grams, normalized
// by the total gram count.
func ngramCounts(tokens []string, n int) map[string]float64 {
	counts := make(map[string]float64)
	total := 0.0
	for size := 1; size <= n; size++ {
		for i := 0; i+size <= len(tokens); i++ {
			gram := strings.Join(tokens[i:i+size], " ")
			counts[gram]++
			total++
		}
	}
	if total == 0 {
		return counts
	}
	for gram := range counts {
		counts[gram] /= total
	}
	return counts
}

// ngramSet returns the distinct grams of exactly the given size.
func ngramSet(tokens []string, size int) map[string]bool {
	set := make(map[string]bool)
	for i := 0; i+size <= len(tokens); i++ {
		set[strings.Join(tokens[i:i+size], " ")] = true
	}
	return set
}
