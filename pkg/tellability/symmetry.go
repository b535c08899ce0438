package tellability

import (
	"github.com/dd0wney/plotgraph/pkg/logging"
	"github.com/dd0wney/plotgraph/pkg/plotgraph"
)

// sequences are the per-character event streams symmetry looks at.
type sequences struct {
	emotions   []string
	intentions []string
	beliefs    []string
	actions    []string
}

func characterSequences(g *plotgraph.Graph, root *plotgraph.Vertex) sequences {
	var s sequences
	for _, v := range g.CharSubgraph(root.ID()) {
		s.emotions = append(s.emotions, v.Emotions()...)
		if i := v.Intention(); i != "" {
			s.intentions = append(s.intentions, i)
		}
		switch v.Type() {
		case plotgraph.Percept:
			s.beliefs = append(s.beliefs, v.Functor())
		case plotgraph.Action:
			s.actions = append(s.actions, v.Functor())
		}
	}
	return s
}

// symmetry averages the per-character symmetry. No repetition measure is
// weighted in yet, so every character contributes 0; the repetition
// statistics are only computed when they would be logged.
func symmetry(g *plotgraph.Graph, logger logging.Logger) float64 {
	roots := g.Roots()
	if len(roots) == 0 {
		return 0
	}
	if logger.GetLevel() > logging.DebugLevel {
		return 0
	}
	total := 0.0
	for _, root := range roots {
		s := characterSequences(g, root)
		log := logger.With(logging.Character(root.Label()))
		total += analyseSequence(s.emotions, log.With(logging.String("sequence", "emotions")))
		total += analyseSequence(s.intentions, log.With(logging.String("sequence", "intentions")))
		total += analyseSequence(s.beliefs, log.With(logging.String("sequence", "beliefs")))
		total += analyseSequence(s.actions, log.With(logging.String("sequence", "actions")))
	}
	return total / float64(len(roots))
}

func analyseSequence(seq []string, logger logging.Logger) float64 {
	d := repetitionDistances(seq)
	logger.Debug("sequence symmetry",
		logging.Int("negative_distance", d.negative),
		logging.Int("overlap_distance", d.overlap),
		logging.Int("normal_distance", d.normal),
	)
	return 0
}

// distances summarises how repeated subsequences are spaced.
type distances struct {
	negative int // gap between the end of one occurrence and the next start
	overlap  int // +1 per overlapping pair of occurrences, -1 otherwise
	normal   int // distance between consecutive starts
}

// repetitionDistances considers every subsequence seq[start:end] with
// start+1 < end < len(seq). For each one occurring more than once it sums
// the distances between consecutive occurrences, weighted by the number of
// occurrences.
//
// Subsequences are grouped one length at a time: the id of seq[i:i+l] is
// derived from the id of seq[i:i+l-1] and the token at i+l-1, so memory
// stays linear and time quadratic in len(seq).
func repetitionDistances(seq []string) distances {
	n := len(seq)
	var d distances
	if n < 3 {
		return d
	}

	tokens := make(map[string]int32)
	rank := make([]int32, n)
	tok := make([]int32, n)
	for i, s := range seq {
		id, ok := tokens[s]
		if !ok {
			id = int32(len(tokens))
			tokens[s] = id
		}
		tok[i], rank[i] = id, id
	}

	type group struct {
		count, last             int
		negative, overlap, gaps int
	}
	ids := make(map[[2]int32]int32, n)
	groups := make([]group, 0, n)

	for length := 2; length < n; length++ {
		clear(ids)
		groups = groups[:0]
		// starts run in increasing order, so each group sees its
		// occurrences in sequence order
		for i := 0; i+length < n; i++ {
			key := [2]int32{rank[i], tok[i+length-1]}
			id, ok := ids[key]
			if !ok {
				id = int32(len(groups))
				ids[key] = id
				groups = append(groups, group{})
			}
			rank[i] = id

			g := &groups[id]
			if g.count > 0 {
				gap := i - (g.last + length)
				g.negative += gap
				if gap < 0 {
					g.overlap++
				} else {
					g.overlap--
				}
				g.gaps += i - g.last
			}
			g.count++
			g.last = i
		}
		for _, g := range groups {
			if g.count < 2 {
				continue
			}
			d.negative += g.negative * g.count
			d.overlap += g.overlap * g.count
			d.normal += g.gaps * g.count
		}
	}
	return d
}
