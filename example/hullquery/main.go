package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/akmonengine/convexhull"
	"github.com/akmonengine/convexhull/actor"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

const cube = `
margin: 0.1
vertices:
  - [-1, -1, -1]
  - [1, -1, -1]
  - [-1, 1, -1]
  - [1, 1, -1]
  - [-1, -1, 1]
  - [1, -1, 1]
  - [-1, 1, 1]
  - [1, 1, 1]
edges:
  - [0, 1]
  - [0, 2]
  - [0, 4]
  - [1, 3]
  - [1, 5]
  - [2, 3]
  - [2, 6]
  - [3, 7]
  - [4, 5]
  - [4, 6]
  - [5, 7]
  - [6, 7]
edge_acceleration: true
`

func main() {
	path := flag.String("hull", "", "YAML hull definition, a unit cube when empty")
	workers := flag.Int("workers", 4, "parallel workers")
	steps := flag.Int("steps", 360, "directions swept around the Y axis")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(logger, *path, *workers, *steps); err != nil {
		logger.Fatal("hull query failed", zap.Error(err))
	}
}

func run(logger *zap.Logger, path string, workers, steps int) error {
	def, err := loadDef(path)
	if err != nil {
		return err
	}

	hull, err := def.Build(actor.WithLogger(logger))
	if err != nil {
		return err
	}

	bounds := hull.LocalBounds()
	logger.Info("hull loaded",
		zap.Int("vertices", hull.VertexCount()),
		zap.Float64("margin", hull.Margin()),
		zap.Bool("edgeAcceleration", hull.EdgeAcceleration()),
		zap.String("bounds", fmt.Sprintf("%v %v", bounds.Min, bounds.Max)),
		zap.Uint64("fingerprint", hull.Fingerprint()))

	inertia, err := hull.ComputeInertia(1)
	if err != nil {
		return err
	}
	logger.Info("inertia for a unit mass", zap.String("diagonal", fmt.Sprint(inertia.Diag())))

	directions := make([]mgl64.Vec3, steps)
	for i := range directions {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		directions[i] = mgl64.Vec3{math.Cos(angle), 0.2, math.Sin(angle)}
	}

	points, err := convexhull.SupportBatch(context.Background(), hull, directions, workers, logger)
	if err != nil {
		return err
	}
	for i := 0; i < len(points); i += max(1, steps/8) {
		fmt.Printf("support %v -> %v\n", directions[i], points[i])
	}

	// a row of hulls, each touching its neighbors
	var bodies []*actor.Body
	for i := 0; i < 5; i++ {
		body, err := actor.NewBody(actor.NewTransform(mgl64.Vec3{float64(i) * 2.1, 0, 0}, mgl64.QuatIdent()), hull, actor.BodyTypeDynamic, 1)
		if err != nil {
			return err
		}
		bodies = append(bodies, body)
	}

	overlapping, err := convexhull.Intersections(context.Background(), convexhull.CandidatePairs(bodies), workers, logger)
	if err != nil {
		return err
	}
	fmt.Printf("%d overlapping pairs among %d bodies\n", len(overlapping), len(bodies))

	return nil
}

func loadDef(path string) (*actor.HullDef, error) {
	if path == "" {
		return actor.LoadHullDef(strings.NewReader(cube))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return actor.LoadHullDef(f)
}
