package similarity

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the similarity a fuzzy answer must exceed to be accepted.
const DefaultThreshold = 0.85

const (
	containmentBoost = 0.10
	firstRuneBoost   = 0.05
	// numericTolerance is the relative difference allowed between two quantities.
	numericTolerance = 0.05
)

var (
	numberPattern = regexp.MustCompile(`(\d+\.?\d*)`)
	unitPattern   = regexp.MustCompile(`([a-zA-Z°]+)`)
)

// EditDistance returns the Levenshtein distance between a and b, counted in runes.
// Comparison is case-sensitive; callers normalize first.
func EditDistance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// StringSimilarity scores two strings in [0, 1]. Both are reduced to lowercase
// letters, digits and whitespace; the edit-distance ratio is then boosted when
// one contains the other and when they share a first rune.
func StringSimilarity(a, b string) float64 {
	na, nb := normalize(a), normalize(b)
	if na == "" && nb == "" {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}

	ra, rb := []rune(na), []rune(nb)
	maxLen := max(len(ra), len(rb))
	score := 1 - float64(EditDistance(na, nb))/float64(maxLen)

	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		score += containmentBoost
	}
	if ra[0] == rb[0] {
		score += firstRuneBoost
	}
	return math.Min(1.0, score)
}

func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// IsAnswerSimilar decides whether user is close enough to correct. The first
// rule that applies wins: exact match, numeric tolerance (when correct has a
// digit and both sides parse a number), "/"-separated alternatives, single-word
// similarity, then the average best per-word similarity of the user's words.
func IsAnswerSimilar(user, correct string, threshold float64) bool {
	user = strings.ToLower(strings.TrimSpace(user))
	correct = strings.ToLower(strings.TrimSpace(correct))

	if user == correct {
		return true
	}
	if matched, decided := numericMatch(user, correct); decided {
		return matched
	}
	if !strings.Contains(correct, "/") {
		return textMatch(user, correct, threshold)
	}

	for _, alt := range strings.Split(correct, "/") {
		if alternativeMatch(user, strings.TrimSpace(alt), threshold) {
			return true
		}
	}
	return false
}

// alternativeMatch applies the non-splitting rules to a single alternative.
func alternativeMatch(user, alt string, threshold float64) bool {
	if user == alt {
		return true
	}
	if matched, decided := numericMatch(user, alt); decided {
		return matched
	}
	return textMatch(user, alt, threshold)
}

// numericMatch compares the first number (and first unit word) of both strings.
// decided is false when correct has no digit or either side has no number.
func numericMatch(user, correct string) (matched, decided bool) {
	if !strings.ContainsFunc(correct, unicode.IsDigit) {
		return false, false
	}
	userValue, userUnit, ok := extractQuantity(user)
	if !ok {
		return false, false
	}
	correctValue, correctUnit, ok := extractQuantity(correct)
	if !ok {
		return false, false
	}

	unitsOK := userUnit == "" || correctUnit == "" || UnitsCompatible(userUnit, correctUnit)
	return withinTolerance(userValue, correctValue) && unitsOK, true
}

func extractQuantity(text string) (value float64, unit string, ok bool) {
	m := numberPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	if u := unitPattern.FindStringSubmatch(text); u != nil {
		unit = strings.ToLower(u[1])
	}
	return value, unit, true
}

func withinTolerance(got, want float64) bool {
	if want == 0 {
		return got == 0
	}
	return math.Abs(got-want)/want < numericTolerance
}

func textMatch(user, correct string, threshold float64) bool {
	userWords := strings.Fields(user)
	correctWords := strings.Fields(correct)

	if len(userWords) == 1 && len(correctWords) == 1 {
		return StringSimilarity(user, correct) > threshold
	}
	if len(userWords) == 0 {
		return false
	}

	var total float64
	for _, uw := range userWords {
		best := 0.0
		for _, cw := range correctWords {
			best = math.Max(best, StringSimilarity(uw, cw))
		}
		total += best
	}
	return total/float64(len(userWords)) > threshold
}
