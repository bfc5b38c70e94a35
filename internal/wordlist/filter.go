package wordlist

import (
	"strings"

	"github.com/samber/lo"
)

// WordCount returns the number of space-separated tokens in a phrase.
func WordCount(phrase string) int {
	return len(strings.Fields(phrase))
}

// FilterByWordCount keeps phrases whose word count lies in [minWords, maxWords].
func FilterByWordCount(phrases []string, minWords, maxWords int) []string {
	return lo.Filter(phrases, func(phrase string, _ int) bool {
		n := WordCount(phrase)
		return n >= minWords && n <= maxWords
	})
}
