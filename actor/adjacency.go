package actor

import "slices"

// adjacency is an undirected vertex graph stored as one neighbor set per vertex index.
// A nil entry means the vertex has no key in the graph; a non-nil entry, even empty,
// counts as a key.
type adjacency struct {
	neighbors [][]int
	keys      int
}

func (g *adjacency) add(v1, v2 int) {
	g.link(v1, v2)
	g.link(v2, v1)
}

func (g *adjacency) link(from, to int) {
	if from >= len(g.neighbors) {
		grown := make([][]int, from+1)
		copy(grown, g.neighbors)
		g.neighbors = grown
	}

	set := g.neighbors[from]
	if set == nil {
		set = make([]int, 0, 4)
		g.keys++
	}
	if !slices.Contains(set, to) {
		set = append(set, to)
	}
	g.neighbors[from] = set
}

func (g *adjacency) keyCount() int {
	return g.keys
}

func (g *adjacency) of(v int) []int {
	if v < 0 || v >= len(g.neighbors) {
		return nil
	}
	return g.neighbors[v]
}

func (g *adjacency) clone() adjacency {
	neighbors := make([][]int, len(g.neighbors))
	for i, set := range g.neighbors {
		neighbors[i] = slices.Clone(set)
	}
	return adjacency{neighbors: neighbors, keys: g.keys}
}
