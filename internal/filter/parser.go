package filter

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// maxRound bounds range expansion.
const maxRound = 999

var roundTerm = regexp.MustCompile(`^(\d{1,3})(?:\s*-\s*(\d{1,3}))?$`)

// ParseRounds parses a round selection string into sorted, unique round numbers.
//
// Supported formats:
//   - "7" - a single round
//   - "1-5" - an inclusive range
//   - "1-5, 7, 10-12" - comma separated terms of either kind
//
// An empty input returns nil, meaning "all rounds".
func ParseRounds(input string) ([]int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	seen := make(map[int]bool)
	for _, term := range strings.Split(input, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}

		m := roundTerm.FindStringSubmatch(term)
		if m == nil {
			return nil, errors.Newf("invalid round term: %q", term)
		}

		from, _ := strconv.Atoi(m[1])
		to := from
		if m[2] != "" {
			to, _ = strconv.Atoi(m[2])
		}
		if from < 1 || to > maxRound {
			return nil, errors.Newf("round out of range: %q", term)
		}
		if from > to {
			return nil, errors.Newf("start round must not exceed end round: %q", term)
		}

		for r := from; r <= to; r++ {
			seen[r] = true
		}
	}

	if len(seen) == 0 {
		return nil, errors.Newf("no rounds in %q", input)
	}

	rounds := make([]int, 0, len(seen))
	for r := range seen {
		rounds = append(rounds, r)
	}
	sort.Ints(rounds)
	return rounds, nil
}

// FormatRounds renders sorted round numbers back into compact range notation.
func FormatRounds(rounds []int) string {
	var parts []string
	for i := 0; i < len(rounds); {
		j := i
		for j+1 < len(rounds) && rounds[j+1] == rounds[j]+1 {
			j++
		}
		if j > i {
			parts = append(parts, fmt.Sprintf("%d-%d", rounds[i], rounds[j]))
		} else {
			parts = append(parts, strconv.Itoa(rounds[i]))
		}
		i = j + 1
	}
	return strings.Join(parts, ", ")
}
