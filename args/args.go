// Package args implements a consuming scanner over raw command line tokens.
//
// The host plugin runtime hands us the user's tokens verbatim. We pick out
// the options we understand and forward everything else, untouched and in
// order, to the external formatter.
package args

import "strings"

// Extractor is a mutable cursor over an immutable token sequence. Accessors
// consume the tokens they match, so later accessors never see them twice. The
// input slice itself is never modified.
type Extractor struct {
	tokens   []string
	consumed []bool
}

func NewExtractor(tokens []string) *Extractor {
	return &Extractor{
		tokens:   tokens,
		consumed: make([]bool, len(tokens)),
	}
}

// Option returns the value of the first `--name value` occurrence, consuming
// both tokens. A trailing `--name` with no value following it is consumed and
// reported as absent.
func (e *Extractor) Option(name string) (string, bool) {
	marker := "--" + name

	for i, token := range e.tokens {
		if e.consumed[i] || token != marker {
			continue
		}

		e.consumed[i] = true

		if i+1 < len(e.tokens) && !e.consumed[i+1] {
			e.consumed[i+1] = true
			return e.tokens[i+1], true
		}

		return "", false
	}

	return "", false
}

// OptionDefault is Option, substituting def when the option is absent.
func (e *Extractor) OptionDefault(name string, def string) string {
	if value, ok := e.Option(name); ok {
		return value
	}

	return def
}

// Repeated collects every `--name value` occurrence. When exactly one
// occurrence is found its value is additionally split on commas, so
// `--target a,b` and `--target a --target b` are interchangeable. Multiple
// explicit occurrences are assumed already atomic and returned unsplit.
func (e *Extractor) Repeated(name string) []string {
	var values []string

	for {
		value, ok := e.Option(name)
		if !ok {
			break
		}

		values = append(values, value)
	}

	if len(values) == 1 {
		return strings.Split(values[0], ",")
	}

	return values
}

// Flag reports whether `--name` appears at least once, consuming every
// occurrence.
func (e *Extractor) Flag(name string) bool {
	marker := "--" + name
	found := false

	for i, token := range e.tokens {
		if e.consumed[i] || token != marker {
			continue
		}

		e.consumed[i] = true
		found = true
	}

	return found
}

// Remaining returns every token not consumed so far, in original order.
func (e *Extractor) Remaining() []string {
	rest := make([]string, 0, len(e.tokens))

	for i, token := range e.tokens {
		if !e.consumed[i] {
			rest = append(rest, token)
		}
	}

	return rest
}
