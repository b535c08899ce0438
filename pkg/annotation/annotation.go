// Package annotation extracts and strips the bracketed key(value) annotations
// carried by symbolic event labels, e.g.
//
//	plant(wheat)[source(self),motivation(plant(wheat))]
//
// All functions are pure. Malformed labels yield a *ParseError instead of a
// truncated result.
package annotation

import (
	"strings"
)

// Well-known annotation keys.
const (
	KeyMotivation     = "motivation"
	KeyCausality      = "causality"
	KeyCrossCharacter = "crossCharacter"
	KeyCause          = "cause"
	KeySource         = "source"
	KeyEmotion        = "emotion"
)

// GetAnnotation returns the value of the annotation key in label, or "" if absent.
func GetAnnotation(label, key string) (string, error) {
	term, err := Parse(label)
	if err != nil {
		return "", err
	}
	value, _ := term.Get(key)
	return value, nil
}

// Values returns every value annotated under key, in label order.
func Values(label, key string) ([]string, error) {
	term, err := Parse(label)
	if err != nil {
		return nil, err
	}
	return term.Values(key), nil
}

// RemoveAnnots strips the trailing annotation block, leaving the bare term.
func RemoveAnnots(label string) (string, error) {
	term, err := Parse(label)
	if err != nil {
		return "", err
	}
	return term.Functor, nil
}

// GetAnnots returns the raw annotation block of label. With stripOuter the
// enclosing brackets are removed. A label without annotations yields "".
func GetAnnots(label string, stripOuter bool) (string, error) {
	term, err := Parse(label)
	if err != nil {
		return "", err
	}
	if stripOuter && term.Annots != "" {
		return term.Annots[1 : len(term.Annots)-1], nil
	}
	return term.Annots, nil
}

// StripAnnotation removes every annotation with the given key and returns the
// rebuilt label. The block is dropped entirely when nothing else remains.
func StripAnnotation(label, key string) (string, error) {
	term, err := Parse(label)
	if err != nil {
		return "", err
	}

	kept := make([]string, 0, len(term.Pairs))
	for _, p := range term.Pairs {
		if p.Key != key {
			kept = append(kept, p.Raw)
		}
	}
	if len(kept) == len(term.Pairs) {
		return label, nil
	}
	if len(kept) == 0 {
		return term.Functor, nil
	}
	return term.Functor + "[" + strings.Join(kept, ",") + "]", nil
}

// Name returns the functor name of a bare term: "plant" for "plant(wheat)".
func Name(term string) string {
	if i := strings.IndexAny(term, "(["); i >= 0 {
		return term[:i]
	}
	return term
}
