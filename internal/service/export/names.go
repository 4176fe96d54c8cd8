package export

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Excel limits sheet names to 31 characters and forbids a few symbols.
const maxSheetName = 31

var sheetReplacer = strings.NewReplacer(
	":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "(", "]", ")",
)

// sheetName derives a valid sheet name not yet in used. Excel compares sheet names case-insensitively.
func sheetName(name string, used map[string]bool) string {
	base := strings.TrimSpace(sheetReplacer.Replace(name))
	if base == "" {
		base = "Employee"
	}

	candidate := truncate(base, maxSheetName)
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncate(s string, limit int) string {
	for len(s) > limit {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	return s
}

func sanitize(name string) string {
	fields := strings.Fields(sheetReplacer.Replace(name))
	if len(fields) == 0 {
		return "employee"
	}
	return strings.Join(fields, "_")
}
