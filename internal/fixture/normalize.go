package fixture

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// IDPartLength bounds each team fragment of a fixture ID.
const IDPartLength = 14

// scorePattern requires the digit runs not to continue into neighbouring digits.
var scorePattern = regexp.MustCompile(`(?:^|[^0-9])([0-9]{1,3})\s*:\s*([0-9]{1,3})(?:[^0-9]|$)`)

// Clean collapses every whitespace run to a single space and trims both ends.
// Text is NFC-normalized first so composed and decomposed diacritics compare equal.
func Clean(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// ParseScore returns the first "home:away" score in s. Callers must pass text that
// does not contain the kickoff time, which has the same shape.
func ParseScore(s string) (*Score, bool) {
	m := scorePattern.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	home, _ := strconv.Atoi(m[1])
	away, _ := strconv.Atoi(m[2])
	return &Score{Home: home, Away: away}, true
}

// IDPart keeps only letters, digits and underscores of name and truncates to
// IDPartLength runes.
func IDPart(name string) string {
	var b strings.Builder
	n := 0
	for _, r := range norm.NFC.String(name) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			continue
		}
		b.WriteRune(r)
		n++
		if n == IDPartLength {
			break
		}
	}
	return b.String()
}

// GenerateID creates a deterministic ID of the form RR-DDMM-Home-Away.
func GenerateID(round, day, month int, home, away string) string {
	return fmt.Sprintf("%02d-%02d%02d-%s-%s", round, day, month, IDPart(home), IDPart(away))
}

// Dedupe drops fixtures whose ID was already seen, keeping the first occurrence.
func Dedupe(fixtures []*Fixture) []*Fixture {
	seen := make(map[string]bool, len(fixtures))
	unique := make([]*Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		unique = append(unique, f)
	}
	return unique
}
