// Package emotion holds the fixed OCC emotion table used to decide the
// valence of appraisal tags attached to plot graph vertices.
package emotion

import (
	"sort"
)

// PAD is a point in pleasure/arousal/dominance space.
type PAD struct {
	Pleasure  float64
	Arousal   float64
	Dominance float64
}

// Valence is the sign of an emotion's pleasure component.
type Valence int

const (
	Neutral  Valence = 0
	Positive Valence = 1
	Negative Valence = -1
)

// table maps the 22 OCC emotions to their ALMA PAD values.
var table = map[string]PAD{
	"admiration":      {0.5, 0.3, -0.2},
	"anger":           {-0.51, 0.59, 0.25},
	"disappointment":  {-0.3, 0.1, -0.4},
	"distress":        {-0.4, -0.2, -0.5},
	"fear":            {-0.64, 0.6, -0.43},
	"fears_confirmed": {-0.5, -0.3, -0.7},
	"gloating":        {0.3, -0.3, -0.1},
	"gratification":   {0.6, 0.5, 0.4},
	"gratitude":       {0.4, 0.2, -0.3},
	"happy_for":       {0.4, 0.2, 0.2},
	"hate":            {-0.6, 0.6, 0.3},
	"hope":            {0.2, 0.2, -0.1},
	"joy":             {0.4, 0.2, 0.1},
	"love":            {0.3, 0.1, 0.2},
	"pity":            {-0.4, -0.2, -0.5},
	"pride":           {0.4, 0.3, 0.3},
	"relief":          {0.2, -0.3, 0.4},
	"remorse":         {-0.3, 0.1, -0.6},
	"reproach":        {-0.3, -0.1, 0.4},
	"resentment":      {-0.2, -0.3, -0.2},
	"satisfaction":    {0.3, -0.2, 0.4},
	"shame":           {-0.3, 0.1, -0.6},
}

// Lookup returns the PAD values of a named emotion.
func Lookup(name string) (PAD, bool) {
	pad, ok := table[name]
	return pad, ok
}

// ValenceOf returns the valence of a named emotion. Unknown names are Neutral.
func ValenceOf(name string) Valence {
	pad, ok := table[name]
	switch {
	case !ok:
		return Neutral
	case pad.Pleasure > 0:
		return Positive
	case pad.Pleasure < 0:
		return Negative
	default:
		return Neutral
	}
}

// Classify reports whether any of the given emotions is positive and whether
// any is negative.
func Classify(emotions []string) (positive, negative bool) {
	for _, em := range emotions {
		switch ValenceOf(em) {
		case Positive:
			positive = true
		case Negative:
			negative = true
		}
	}
	return positive, negative
}

// Known reports whether name is an emotion of the table.
func Known(name string) bool {
	_, ok := table[name]
	return ok
}

// All returns every emotion name, sorted.
func All() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
