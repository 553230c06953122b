package protocol

import "math"

// ScanUint parses the leading unsigned decimal number of s, skipping leading
// spaces and an optional '+'. It reports false when s has no leading digits
// or the number overflows.
//
// Generated programs carry a copy of this function, taken from this file by
// ScanUintSource.
func ScanUint(s string) (uint64, bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	if i < len(s) && s[i] == '+' {
		i++
	}

	start := i
	var v uint64
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		d := uint64(s[i] - '0')
		if v > (math.MaxUint64-d)/10 {
			return 0, false
		}
		v = v*10 + d
	}
	return v, i > start
}
