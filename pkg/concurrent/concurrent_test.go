package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcurrentRunsAll(t *testing.T) {
	var sum atomic.Int64
	err := Concurrent(context.Background(), []int{1, 2, 3, 4}, 2, func(_ context.Context, v int) error {
		sum.Add(int64(v))
		return nil
	})
	assert.NoError(t, err)
	assert.EqualValues(t, 10, sum.Load())
}

func TestConcurrentRespectsLimit(t *testing.T) {
	var running, peak atomic.Int32
	items := make([]int, 20)
	err := Concurrent(context.Background(), items, 3, func(_ context.Context, _ int) error {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		running.Add(-1)
		return nil
	})
	assert.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestConcurrentReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := Concurrent(context.Background(), []int{1, 2, 3}, 0, func(ctx context.Context, v int) error {
		if v == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}
