package annotation

import (
	"strings"
)

// Pair is a single key(value) entry of an annotation block. Atoms without
// arguments, such as "self", carry an empty Value.
type Pair struct {
	Key   string
	Value string
	Raw   string // entry text as written, trimmed of surrounding spaces
}

// Term is a label split into its bare term and its trailing annotation block.
//
//	plant(wheat)[source(self),cause(life[location(universe)])]
//	^ Functor    ^ Annots (outer brackets included)
type Term struct {
	Functor string
	Annots  string
	Pairs   []Pair
}

// Get returns the value of the first annotation with the given key.
func (t Term) Get(key string) (string, bool) {
	for _, p := range t.Pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Values returns the values of every annotation with the given key, in order.
func (t Term) Values(key string) []string {
	var values []string
	for _, p := range t.Pairs {
		if p.Key == key {
			values = append(values, p.Value)
		}
	}
	return values
}

// Parse splits label into its term and annotation block. The annotation block
// is the bracket group that opens at nesting depth zero; it must close at the
// very end of the label. Brackets nested inside the term or inside annotation
// values are kept verbatim, and double-quoted strings are opaque.
func Parse(label string) (Term, error) {
	start, err := scan(label)
	if err != nil {
		return Term{}, err
	}
	if start < 0 {
		return Term{Functor: label}, nil
	}

	pairs, err := splitPairs(label, start+1, len(label)-1)
	if err != nil {
		return Term{}, err
	}

	return Term{
		Functor: label[:start],
		Annots:  label[start:],
		Pairs:   pairs,
	}, nil
}

// scan validates bracket structure and returns the offset of the annotation
// block, or -1 if the label has none.
func scan(label string) (int, error) {
	stack := make([]byte, 0, 8)
	annotStart := -1

	for i := 0; i < len(label); i++ {
		if annotStart >= 0 && len(stack) == 0 {
			return -1, parseErr(label, i, ErrTrailing)
		}

		c := label[i]
		switch c {
		case '"':
			end := strings.IndexByte(label[i+1:], '"')
			if end < 0 {
				return -1, parseErr(label, i, ErrUnterminatedString)
			}
			i += end + 1
		case '(', '[':
			if c == '[' && len(stack) == 0 {
				annotStart = i
			}
			stack = append(stack, c)
		case ')', ']':
			if len(stack) == 0 {
				return -1, parseErr(label, i, ErrUnbalanced)
			}
			open := stack[len(stack)-1]
			if (c == ')' && open != '(') || (c == ']' && open != '[') {
				return -1, parseErr(label, i, ErrMismatched)
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		return -1, parseErr(label, len(label), ErrUnbalanced)
	}
	return annotStart, nil
}

// splitPairs splits label[from:to] at top-level commas and parses each entry.
func splitPairs(label string, from, to int) ([]Pair, error) {
	pairs := make([]Pair, 0, 4)
	if strings.TrimSpace(label[from:to]) == "" {
		return pairs, nil
	}

	depth := 0
	itemStart := from
	for i := from; i <= to; i++ {
		if i < to {
			switch label[i] {
			case '"':
				i += strings.IndexByte(label[i+1:], '"') + 1
				continue
			case '(', '[':
				depth++
				continue
			case ')', ']':
				depth--
				continue
			case ',':
				if depth > 0 {
					continue
				}
			default:
				continue
			}
		}

		pair, err := parsePair(label, itemStart, i)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
		itemStart = i + 1
	}

	return pairs, nil
}

// parsePair parses a single key(value) entry found at label[from:to].
func parsePair(label string, from, to int) (Pair, error) {
	raw := strings.TrimSpace(label[from:to])
	if raw == "" {
		return Pair{}, parseErr(label, from, ErrMalformedPair)
	}

	open := strings.IndexByte(raw, '(')
	if open < 0 {
		return Pair{Key: raw, Raw: raw}, nil
	}
	if open == 0 || matchClose(raw, open) != len(raw)-1 {
		return Pair{}, parseErr(label, from, ErrMalformedPair)
	}

	return Pair{
		Key:   raw[:open],
		Value: raw[open+1 : len(raw)-1],
		Raw:   raw,
	}, nil
}

// matchClose returns the offset of the bracket closing the one opened at s[open].
// The caller guarantees s is balanced.
func matchClose(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '"':
			i += strings.IndexByte(s[i+1:], '"') + 1
		case '(', '[':
			depth++
		case ')', ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
