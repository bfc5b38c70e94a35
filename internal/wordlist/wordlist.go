// Package wordlist loads phrase and word lists from files.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/verte-zerg/funtext/internal/model"
)

// LoadPhrases reads one phrase per line from the provided file path.
// Inner whitespace is normalized to single spaces.
func LoadPhrases(path string) ([]string, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	phrases := make([]string, 0, len(lines))
	for _, line := range lines {
		phrases = append(phrases, strings.Join(strings.Fields(line), " "))
	}
	return phrases, nil
}

// LoadPosWords reads "word<TAB>group" lines. Group is noun, verb or adj.
func LoadPosWords(path string) ([]model.PosWord, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	words := make([]model.PosWord, 0, len(lines))
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected word and group, got %q", i+1, line)
		}
		pos, err := ParsePartOfSpeech(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		words = append(words, model.PosWord{Text: fields[0], PartOfSpeech: pos})
	}
	return words, nil
}

// ParsePartOfSpeech maps a group name to a PartOfSpeech.
func ParsePartOfSpeech(value string) (model.PartOfSpeech, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "noun", "n":
		return model.Noun, nil
	case "verb", "v":
		return model.Verb, nil
	case "adj", "adjective", "a":
		return model.Adjective, nil
	default:
		return "", fmt.Errorf("unknown part of speech %q", value)
	}
}

func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only list.
			_ = cerr
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("list is empty")
	}
	return lines, nil
}
