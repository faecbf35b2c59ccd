package update

import (
	"strconv"
	"strings"
)

// Result is the ordering of a candidate version relative to an installed one.
type Result int

const (
	Less    Result = -1
	Equal   Result = 0
	Greater Result = 1
)

func (r Result) String() string {
	switch r {
	case Less:
		return "less"
	case Greater:
		return "greater"
	default:
		return "equal"
	}
}

// Compare orders two dot-delimited version strings by numeric segment.
//
// Each dot-delimited segment is reduced to its digits and parsed as an
// integer; an empty, missing, or digit-free segment counts as 0, so shorter
// versions compare as if zero-padded ("1.2" == "1.2.0") and an empty string
// compares as "0". The first differing segment decides.
//
// Known limitation, kept for compatibility with the update workflow: because
// non-digit characters are stripped per segment, pre-release suffixes
// collapse ("2.0.0-beta" compares Equal to "2.0.0"). This is not a semver
// comparison.
func Compare(candidate, installed string) Result {
	if candidate == installed {
		return Equal
	}

	cand := strings.Split(candidate, ".")
	inst := strings.Split(installed, ".")
	n := len(cand)
	if len(inst) > n {
		n = len(inst)
	}

	for i := 0; i < n; i++ {
		cv := segmentValue(cand, i)
		iv := segmentValue(inst, i)
		if cv > iv {
			return Greater
		}
		if cv < iv {
			return Less
		}
	}
	return Equal
}

func segmentValue(segments []string, i int) int {
	if i >= len(segments) {
		return 0
	}
	return numericValue(segments[i])
}

// numericValue strips every non-digit rune from a segment and parses the
// remainder, defaulting to 0 for empty or digit-free segments.
func numericValue(segment string) int {
	var digits strings.Builder
	for _, r := range segment {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}
