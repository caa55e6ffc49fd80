package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrainRunsInOrder(t *testing.T) {
	l := NewLoop()
	var got []int

	for i := 0; i < 3; i++ {
		i := i
		require.True(t, l.Post(func() { got = append(got, i) }))
	}
	assert.Equal(t, 3, l.Pending())

	assert.Equal(t, 3, l.Drain())
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, int64(3), l.Processed())
}

func TestDrainIncludesNestedPosts(t *testing.T) {
	l := NewLoop()
	var got []string

	l.Post(func() {
		got = append(got, "outer")
		l.Post(func() { got = append(got, "inner") })
	})
	l.Post(func() { got = append(got, "second") })

	assert.Equal(t, 3, l.Drain())
	assert.Equal(t, []string{"outer", "second", "inner"}, got)
}

func TestPanicIsRecovered(t *testing.T) {
	l := NewLoop()
	ran := false

	l.Post(func() { panic("boom") })
	l.Post(func() { ran = true })

	assert.NotPanics(t, func() { l.Drain() })
	assert.True(t, ran)
	assert.Equal(t, int64(1), l.recovered.Load())
}

func TestPostAfterClose(t *testing.T) {
	l := NewLoop()
	l.Close()

	assert.False(t, l.Post(func() {}))
	assert.False(t, l.Post(nil))
}

func TestRunProcessesConcurrentPosts(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	var wg sync.WaitGroup
	var mu sync.Mutex
	total := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Post(func() {
				mu.Lock()
				total++
				mu.Unlock()
			})
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool { return l.Processed() == 10 }, time.Second, 5*time.Millisecond)
	mu.Lock()
	assert.Equal(t, 10, total)
	mu.Unlock()

	l.Close()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Close")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, l.Run(ctx), context.Canceled)
}
