package graph

import (
	"strconv"
	"strings"
)

// FormatValue renders v with one decimal place. With trim set, a trailing
// ".0" is dropped so that 40 reads "40" rather than "40.0".
func FormatValue(v float64, trim bool) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	if trim {
		s = strings.TrimSuffix(s, ".0")
	}
	if s == "-0" || s == "-0.0" {
		s = s[1:]
	}
	return s
}
