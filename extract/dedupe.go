package extract

import "strings"

// The multi-valued fields tolerate overlapping candidates from independent
// channels, so every insertion is guarded by an "already covered" check.
// The lists are capped at 20-30 entries, which keeps the quadratic scans
// cheap.

// contains reports exact membership of s in entries.
func contains(entries []string, s string) bool {
	for _, e := range entries {
		if e == s {
			return true
		}
	}
	return false
}

// anyContains reports whether any existing entry contains s as a substring.
// Used for performer names, where "정명훈 - 지휘" covers a later bare "정명훈".
func anyContains(entries []string, s string) bool {
	for _, e := range entries {
		if strings.Contains(e, s) {
			return true
		}
	}
	return false
}

// anyContainsPrefix reports whether any existing entry contains the leading
// window runes of s. Used for program entries, where channels capture the
// same work with different amounts of trailing text.
func anyContainsPrefix(entries []string, s string, window int) bool {
	return anyContains(entries, runePrefix(s, window))
}
