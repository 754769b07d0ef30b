package convexhull

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskVisitsEveryItemOnce(t *testing.T) {
	for _, workers := range []int{-1, 0, 1, 3, 8, 100} {
		data := make([]int, 37)
		visits := make([]int32, len(data))

		err := task(context.Background(), workers, data, func(i int, _ int) error {
			atomic.AddInt32(&visits[i], 1)
			return nil
		})
		require.NoError(t, err)

		for i, v := range visits {
			assert.Equal(t, int32(1), v, "item %d with %d workers", i, workers)
		}
	}
}

func TestTaskEmptyData(t *testing.T) {
	err := task(context.Background(), 4, []int{}, func(int, int) error {
		t.Fatal("fn called on empty data")
		return nil
	})
	assert.NoError(t, err)
}

func TestTaskReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	data := make([]int, 100)

	err := task(context.Background(), 4, data, func(i int, _ int) error {
		if i == 42 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestTaskCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := task(ctx, 2, make([]int, 10), func(int, int) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
