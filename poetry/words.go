/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package poetry

import (
	"io"
	"strings"
)

// Delimiter separates words within a line of the word resource.
const Delimiter = ","

// DefaultWords is used when no word resource is configured.
var DefaultWords = []string{
	"the", "a", "and", "of", "to", "in", "is", "my", "your", "our",
	"I", "you", "we", "she", "he", "they", "it", "me", "us", "them",
	"love", "dream", "night", "day", "sun", "moon", "star", "sea", "sky", "rain",
	"fire", "heart", "soul", "light", "dark", "shadow", "whisper", "song", "storm", "garden",
	"blue", "red", "gold", "silver", "quiet", "wild", "sweet", "cold", "warm", "lost",
	"run", "fly", "sing", "dance", "fall", "burn", "remember", "forget", "wait", "breathe",
	"always", "never", "softly", "again", "tomorrow", "forever", "still", "only",
	"like", "through", "under", "above", "with", "without", "beyond", "between",
	"s", "ed", "ing", "ly", "er", "est", "!", "?", "...",
}

// ParseWords extracts words from delimited text. The first line is a header
// and is discarded. Any run of line-break characters counts as a single
// separator, so mixed line endings and blank lines are tolerated. Each field
// is trimmed and then loses one surrounding pair of double quotes; text
// inside the quotes is kept as written. Empty fields are dropped.
func ParseWords(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	lines := strings.FieldsFunc(string(data), func(c rune) bool {
		return c == '\n' || c == '\r'
	})
	if len(lines) < 2 {
		return []string{}, nil
	}

	words := []string{}
	for _, line := range lines[1:] {
		for field := range strings.SplitSeq(line, Delimiter) {
			if w := normalizeWord(field); w != "" {
				words = append(words, w)
			}
		}
	}

	return words, nil
}

func normalizeWord(field string) string {
	w := strings.TrimSpace(field)
	if len(w) >= 2 && strings.HasPrefix(w, `"`) && strings.HasSuffix(w, `"`) {
		w = w[1 : len(w)-1]
	}
	return w
}
