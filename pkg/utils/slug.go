package utils

import "strings"

// Slugify lowercases name and joins its whitespace-separated words with single hyphens.
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
