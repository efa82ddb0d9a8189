package grid

import "github.com/rivo/uniseg"

// RebusTrigger is the symbol that switches a typed letter to rebus entry.
const RebusTrigger = "/"

// TruncateGraphemes returns at most n user-perceived characters of s.
func TruncateGraphemes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}

	g := uniseg.NewGraphemes(s)
	count := 0
	end := 0
	for g.Next() {
		if count == n {
			break
		}
		_, end = g.Positions()
		count++
	}
	return s[:end]
}

// AppendRebus appends letter to value after capping value at limit
// characters.
func AppendRebus(value, letter string, limit int) string {
	return TruncateGraphemes(value, limit) + letter
}
