package models

// Truncate shortens s to at most n characters, ending in an ellipsis when cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
