package actor

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// HullDef describes a convex hull in YAML or JSON.
//
//	margin: 0.04
//	vertices: [[1, 1, 1], [-1, 1, 1], ...]
//	edges: [[0, 1], ...]
//	edge_acceleration: true
//
// The vertices are trusted to form a convex polytope and the edges to be its edges.
type HullDef struct {
	Margin           float64      `json:"margin,omitempty" yaml:"margin,omitempty"`
	Vertices         [][3]float64 `json:"vertices" yaml:"vertices"`
	Edges            [][2]int     `json:"edges,omitempty" yaml:"edges,omitempty"`
	EdgeAcceleration bool         `json:"edge_acceleration,omitempty" yaml:"edge_acceleration,omitempty"`
}

// LoadHullDef decodes a hull definition from a YAML reader.
func LoadHullDef(r io.Reader) (*HullDef, error) {
	var def HullDef
	if err := yaml.NewDecoder(r).Decode(&def); err != nil {
		return nil, fmt.Errorf("decode hull definition: %w", err)
	}
	return &def, nil
}

// Build creates the hull through AddVertex and AddEdge, in definition order.
// A zero margin selects DefaultMargin.
func (def *HullDef) Build(opts ...Option) (*ConvexHull, error) {
	margin := def.Margin
	if margin == 0 {
		margin = DefaultMargin
	}

	h, err := NewConvexHull(margin, opts...)
	if err != nil {
		return nil, err
	}

	for _, v := range def.Vertices {
		h.AddVertex(mgl64.Vec3(v))
	}
	for i, e := range def.Edges {
		if err := h.AddEdge(e[0], e[1]); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}
	h.SetEdgeAcceleration(def.EdgeAcceleration)

	return h, nil
}
