package convexhull

import (
	"context"
	"fmt"

	"github.com/akmonengine/convexhull/actor"
	"github.com/akmonengine/convexhull/gjk"
	"go.uber.org/zap"
)

// Pair represents a pair of bodies that potentially overlap
type Pair struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

// CandidatePairs returns every pair of bodies whose world AABBs overlap.
// This is an O(n²) brute-force approach suitable for small numbers of bodies.
// Pairs of two static bodies are skipped.
func CandidatePairs(bodies []*actor.Body) []Pair {
	var pairs []Pair
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if a.BodyType == actor.BodyTypeStatic && b.BodyType == actor.BodyTypeStatic {
				continue
			}
			if a.GetAABB().Overlaps(b.GetAABB()) {
				pairs = append(pairs, Pair{BodyA: a, BodyB: b})
			}
		}
	}
	return pairs
}

// Intersections runs GJK on every pair and returns the overlapping ones, in input order.
// Any support query failure aborts the whole batch.
func Intersections(ctx context.Context, pairs []Pair, workers int, logger *zap.Logger) ([]Pair, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	hits := make([]bool, len(pairs))
	err := task(ctx, workers, pairs, func(i int, p Pair) error {
		simplex := gjk.SimplexPool.Get().(*gjk.Simplex)
		defer gjk.SimplexPool.Put(simplex)

		hit, err := gjk.Intersect(p.BodyA, p.BodyB, simplex)
		if err != nil {
			return fmt.Errorf("pair %d: %w", i, err)
		}
		hits[i] = hit
		return nil
	})
	if err != nil {
		logger.Error("narrow phase failed", zap.Error(err))
		return nil, err
	}

	var overlapping []Pair
	for i, hit := range hits {
		if hit {
			overlapping = append(overlapping, pairs[i])
		}
	}

	logger.Debug("narrow phase done",
		zap.Int("pairs", len(pairs)),
		zap.Int("overlapping", len(overlapping)))

	return overlapping, nil
}
