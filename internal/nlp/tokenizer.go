// Package nlp implements the shared text features used by both the offline
// trainer and the online router. Training-time and inference-time tokenization
// must be byte-for-byte identical; this package is the only place the rule
// lives, and TokenizerVersion is stamped into every persisted bundle so a
// binary with a different rule refuses to load it.
package nlp

import (
	"regexp"
	"strings"
)

// TokenizerVersion identifies the tokenization rule below. Bump it whenever
// Tokenize changes behavior.
const TokenizerVersion = 1

// tokenPattern selects runs of two or more word characters, the same token
// rule the bag-of-words vocabulary was originally built with. Single-letter
// words carry no signal at this corpus size.
var tokenPattern = regexp.MustCompile(`\w\w+`)

// Tokenize lowercases text and splits it into vocabulary terms.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}
