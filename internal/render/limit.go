package render

import (
	"math"
	"strings"
	"unicode"

	"top-movers-server/internal/market"
)

// ParseLimitField reads the leading integer of a form value the way a
// browser's parseInt does: leading space, optional sign, then digits.
// Unparseable input and 0 fall back to market.DefaultLimit. Range is left to
// the server; overflow saturates.
func ParseLimitField(raw string) int {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for ; digits < len(s) && s[digits] >= '0' && s[digits] <= '9'; digits++ {
		d := int(s[digits] - '0')
		if n > (math.MaxInt-d)/10 {
			n = math.MaxInt
			for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
				digits++
			}
			break
		}
		n = n*10 + d
	}
	if digits == 0 || n == 0 {
		return market.DefaultLimit
	}
	if neg {
		return -n
	}
	return n
}
