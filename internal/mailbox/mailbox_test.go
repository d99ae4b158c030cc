package mailbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitResolvesFuture(t *testing.T) {
	m := New(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Drain(ctx)

	future := Submit(m, func() (int, error) { return 42, nil })

	v, err := future.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestSubmitPropagatesError(t *testing.T) {
	m := New(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Drain(ctx)

	sentinel := assertErr{"boom"}
	future := Submit(m, func() (int, error) { return 0, sentinel })

	_, err := future.Await(context.Background())
	assert.Equal(t, sentinel, err)
}

func TestTasksRunInFIFOOrder(t *testing.T) {
	m := New(16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Drain(ctx)

	var order []int
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		i := i
		m.Send(func() {
			order = append(order, i)
			if i == 4 {
				close(done)
			}
		})
	}
	<-done

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestAwaitRespectsContextCancellation(t *testing.T) {
	m := New(1) // one free slot so Submit returns; never drained in this test
	future := Submit(m, func() (int, error) { return 1, nil })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := future.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestJoinCollectsResultsInOrder(t *testing.T) {
	m := New(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Drain(ctx)

	futures := make([]*Future[int], 5)
	for i := range futures {
		i := i
		futures[i] = Submit(m, func() (int, error) { return i * i, nil })
	}

	results, err := Join(context.Background(), futures)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 4, 9, 16}, results)
}

func TestJoinReturnsFirstError(t *testing.T) {
	m := New(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Drain(ctx)

	boom := assertErr{"fan-out leg failed"}
	futures := []*Future[int]{
		Submit(m, func() (int, error) { return 1, nil }),
		Submit(m, func() (int, error) { return 0, boom }),
	}

	_, err := Join(context.Background(), futures)
	assert.Equal(t, boom, err)
}

type assertErr struct{ msg string }

func (e assertErr) Error() string { return e.msg }
