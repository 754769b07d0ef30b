package actor

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

var _ ShapeInterface = (*ConvexHull)(nil)

// ConvexHull is a convex polytope described by its vertices in local space.
//
// Support queries scan every vertex, which costs O(n). When the polytope edges are
// registered with AddEdge and SetEdgeAcceleration(true) is called, queries instead
// hill-climb the edge graph from the vertex returned by the previous query, which is
// close to O(1) when successive directions change smoothly.
//
// Construction (AddVertex, AddEdge, SetEdgeAcceleration) must complete before any query.
// Queries may then run concurrently: the only state they write is the cached start
// vertex, and a stale start vertex lengthens the climb without changing its result.
type ConvexHull struct {
	vertices []mgl64.Vec3
	count    int
	// bounds of the vertices and the local origin, without margin
	bounds AABB
	margin float64

	edgeAcceleration bool
	edges            adjacency
	cachedSupport    atomic.Int64

	logger *zap.Logger
}

// Option configures a ConvexHull at construction.
type Option func(*ConvexHull)

// WithLogger sets the logger used to report construction and consistency failures.
func WithLogger(logger *zap.Logger) Option {
	return func(h *ConvexHull) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewConvexHull creates an empty hull, to be filled with AddVertex and AddEdge.
func NewConvexHull(margin float64, opts ...Option) (*ConvexHull, error) {
	if !(margin > 0) {
		return nil, fmt.Errorf("margin must be greater than zero, got %v: %w", margin, ErrInvalidArgument)
	}

	h := &ConvexHull{margin: margin, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

// NewConvexHullFromBuffer creates a hull from n vertices read in a flat buffer.
// Vertex i starts at buffer[i*stride] and spans 3 consecutive components.
func NewConvexHullFromBuffer(buffer []float64, n, stride int, margin float64, opts ...Option) (*ConvexHull, error) {
	if n <= 0 {
		return nil, fmt.Errorf("vertex count must be greater than zero, got %d: %w", n, ErrInvalidArgument)
	}
	if stride <= 0 {
		return nil, fmt.Errorf("stride must be greater than zero, got %d: %w", stride, ErrInvalidArgument)
	}
	if need := (n-1)*stride + 3; len(buffer) < need {
		return nil, fmt.Errorf("buffer holds %d components, %d vertices at stride %d need %d: %w",
			len(buffer), n, stride, need, ErrInvalidArgument)
	}

	h, err := NewConvexHull(margin, opts...)
	if err != nil {
		return nil, err
	}

	h.vertices = make([]mgl64.Vec3, 0, n)
	for i := 0; i < n; i++ {
		offset := i * stride
		h.vertices = append(h.vertices, mgl64.Vec3{buffer[offset], buffer[offset+1], buffer[offset+2]})
	}
	h.count = n
	h.recalculateBounds()

	h.logger.Debug("convex hull built from buffer",
		zap.Int("vertices", n),
		zap.Int("stride", stride),
		zap.Float64("margin", margin))

	return h, nil
}

func (h *ConvexHull) recalculateBounds() {
	h.bounds = AABB{}
	for _, v := range h.vertices[:h.count] {
		h.bounds = h.bounds.Extend(v)
	}
}

// AddVertex appends a vertex. Its index is the number of vertices added before it.
func (h *ConvexHull) AddVertex(vertex mgl64.Vec3) {
	h.vertices = append(h.vertices, vertex)
	h.count++
	h.bounds = h.bounds.Extend(vertex)
}

// AddEdge connects the vertices v1 and v2 in the adjacency graph. Adding an
// existing edge again has no effect.
func (h *ConvexHull) AddEdge(v1, v2 int) error {
	if v1 < 0 {
		return fmt.Errorf("v1 must be greater or equal to zero, got %d: %w", v1, ErrInvalidArgument)
	}
	if v2 < 0 {
		return fmt.Errorf("v2 must be greater or equal to zero, got %d: %w", v2, ErrInvalidArgument)
	}

	h.edges.add(v1, v2)
	return nil
}

// SetEdgeAcceleration switches support queries to hill climbing on the edge graph.
// Enable it only once every edge of the polytope has been added.
func (h *ConvexHull) SetEdgeAcceleration(enabled bool) {
	h.edgeAcceleration = enabled
	h.logger.Debug("convex hull edge acceleration",
		zap.Bool("enabled", enabled),
		zap.Int("vertices", h.count),
		zap.Int("adjacencyKeys", h.edges.keyCount()))
}

func (h *ConvexHull) EdgeAcceleration() bool {
	return h.edgeAcceleration
}

func (h *ConvexHull) Margin() float64 {
	return h.margin
}

func (h *ConvexHull) VertexCount() int {
	return h.count
}

// Vertex returns the vertex at index i, and false when i is out of range.
func (h *ConvexHull) Vertex(i int) (mgl64.Vec3, bool) {
	if i < 0 || i >= len(h.vertices) {
		return mgl64.Vec3{}, false
	}
	return h.vertices[i], true
}

// CachedSupportVertex returns the index the last hill climb ended on.
func (h *ConvexHull) CachedSupportVertex() int {
	return int(h.cachedSupport.Load())
}

// SupportWithMargin returns the support point of the hull grown by its margin:
// the exact support point pushed by margin along the normalized direction.
// A zero or near-zero direction is replaced by (1, 1, 1).
func (h *ConvexHull) SupportWithMargin(direction mgl64.Vec3) (mgl64.Vec3, error) {
	support, err := h.SupportWithoutMargin(direction)
	if err != nil {
		return mgl64.Vec3{}, err
	}

	unit := direction
	if direction.LenSqr() < MachineEpsilon*MachineEpsilon {
		unit = mgl64.Vec3{1, 1, 1}
	}

	return support.Add(unit.Normalize().Mul(h.margin)), nil
}

// SupportWithoutMargin returns the hull vertex with the largest dot product with direction.
func (h *ConvexHull) SupportWithoutMargin(direction mgl64.Vec3) (mgl64.Vec3, error) {
	if h.count != len(h.vertices) {
		return mgl64.Vec3{}, h.fail(
			fmt.Errorf("vertex count %d differs from vertex list size %d: %w", h.count, len(h.vertices), ErrInconsistent))
	}
	if h.count == 0 {
		return mgl64.Vec3{}, h.fail(fmt.Errorf("hull has no vertices: %w", ErrInconsistent))
	}

	var index int
	var err error
	if h.edgeAcceleration {
		index, err = h.climb(direction)
	} else {
		index, err = h.scan(direction)
	}
	if err != nil {
		return mgl64.Vec3{}, h.fail(err)
	}

	return h.vertices[index], nil
}

// scan tests every vertex. Ties keep the first vertex found.
// The hull must contain the local origin, so the best dot product can't be negative.
func (h *ConvexHull) scan(direction mgl64.Vec3) (int, error) {
	best := 0
	maxDot := -math.MaxFloat64
	for i, v := range h.vertices {
		if dot := direction.Dot(v); dot > maxDot {
			best = i
			maxDot = dot
		}
	}

	if !(maxDot >= 0) {
		return 0, fmt.Errorf("max dot product %v is negative, the hull does not contain its origin: %w", maxDot, ErrInconsistent)
	}
	return best, nil
}

// climb walks the edge graph from the cached vertex toward increasing dot products.
// A linear function has no local maximum on the edge graph of a convex polytope
// other than the global one, so the walk stops on the support vertex.
func (h *ConvexHull) climb(direction mgl64.Vec3) (int, error) {
	if keys := h.edges.keyCount(); keys != h.count {
		return 0, fmt.Errorf("adjacency graph has %d vertices, hull has %d: %w", keys, h.count, ErrInconsistent)
	}

	current := int(h.cachedSupport.Load())
	if current < 0 || current >= h.count {
		current = 0
	}
	maxDot := direction.Dot(h.vertices[current])

	for optimal := false; !optimal; {
		optimal = true

		neighbors := h.edges.of(current)
		if len(neighbors) == 0 {
			return 0, fmt.Errorf("vertex %d has no adjacent edges: %w", current, ErrInconsistent)
		}

		for _, n := range neighbors {
			if n >= h.count {
				return 0, fmt.Errorf("vertex %d has neighbor %d outside of %d vertices: %w", current, n, h.count, ErrInconsistent)
			}
			if dot := direction.Dot(h.vertices[n]); dot > maxDot {
				current = n
				maxDot = dot
				optimal = false
			}
		}
	}

	h.cachedSupport.Store(int64(current))
	return current, nil
}

func (h *ConvexHull) fail(err error) error {
	h.logger.Error("convex hull support query failed",
		zap.Int("vertices", h.count),
		zap.Bool("edgeAcceleration", h.edgeAcceleration),
		zap.Error(err))
	return err
}

// LocalBounds returns the local-space bounds grown by the margin.
// Bounds always contain the local origin and are never tightened.
func (h *ConvexHull) LocalBounds() AABB {
	return h.bounds.Inflate(h.margin)
}

// ComputeInertia approximates the inertia tensor with the one of the bounding box
// returned by LocalBounds: I = (m/3) * (e1² + e2²) per axis, e being the half-extents.
func (h *ConvexHull) ComputeInertia(mass float64) (mgl64.Mat3, error) {
	extent := h.LocalBounds().HalfExtents()
	if !(extent.X() > 0) || !(extent.Y() > 0) || !(extent.Z() > 0) {
		err := fmt.Errorf("bounding half-extents %v must all be greater than zero: %w", extent, ErrInconsistent)
		h.logger.Error("convex hull inertia failed", zap.Error(err))
		return mgl64.Mat3{}, err
	}

	factor := mass / 3.0
	x2 := extent.X() * extent.X()
	y2 := extent.Y() * extent.Y()
	z2 := extent.Z() * extent.Z()

	return mgl64.Mat3{
		factor * (y2 + z2), 0, 0,
		0, factor * (x2 + z2), 0,
		0, 0, factor * (x2 + y2),
	}, nil
}

// Clone returns a deep copy sharing no mutable state with h.
func (h *ConvexHull) Clone() *ConvexHull {
	c := &ConvexHull{
		vertices:         slices.Clone(h.vertices),
		count:            h.count,
		bounds:           h.bounds,
		margin:           h.margin,
		edgeAcceleration: h.edgeAcceleration,
		edges:            h.edges.clone(),
		logger:           h.logger,
	}
	c.cachedSupport.Store(h.cachedSupport.Load())

	return c
}

// Equal reports whether both hulls have the same vertex sequence.
// A hull using edge acceleration is never equal to anything, itself included.
func (h *ConvexHull) Equal(other *ConvexHull) bool {
	if other == nil {
		return false
	}
	return h.count == other.count &&
		!h.edgeAcceleration &&
		slices.Equal(h.vertices, other.vertices)
}

// Fingerprint hashes the vertex sequence. Equal hulls have the same fingerprint.
func (h *ConvexHull) Fingerprint() uint64 {
	digest := xxhash.New()
	var buf [8]byte
	for _, v := range h.vertices {
		for _, c := range v {
			if c == 0 {
				c = 0 // -0 == +0
			}
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(c))
			_, _ = digest.Write(buf[:])
		}
	}
	return digest.Sum64()
}
