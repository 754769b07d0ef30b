package convexhull

import (
	"context"
	"fmt"

	"github.com/akmonengine/convexhull/actor"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// SupportBatch returns the margin-inflated support point of shape for every direction,
// in the same order. Directions are split between workers in contiguous chunks, so each
// worker walks a coherent run of directions.
func SupportBatch(ctx context.Context, shape actor.ShapeInterface, directions []mgl64.Vec3, workers int, logger *zap.Logger) ([]mgl64.Vec3, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	points := make([]mgl64.Vec3, len(directions))
	err := task(ctx, workers, directions, func(i int, direction mgl64.Vec3) error {
		point, err := shape.SupportWithMargin(direction)
		if err != nil {
			return fmt.Errorf("direction %d %v: %w", i, direction, err)
		}
		points[i] = point
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("support batch done",
		zap.Int("directions", len(directions)),
		zap.Int("workers", max(DEFAULT_WORKERS, workers)))

	return points, nil
}
