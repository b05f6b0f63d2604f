package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestLimiter(t *testing.T, policy Policy) *Limiter {
	t.Helper()
	l, err := New(policy)
	require.NoError(t, err)
	return l
}

func TestNew_RejectsNonPositiveWindow(t *testing.T) {
	_, err := New(Policy{Limit: 1, Window: 0})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = New(Policy{Limit: 1, Window: -time.Second})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestPolicy_String(t *testing.T) {
	tests := []struct {
		policy Policy
		want   string
	}{
		{DefaultPolicy(), "1 per 1 hour"},
		{Policy{Limit: 5, Window: time.Minute}, "5 per 1 minute"},
		{Policy{Limit: 3, Window: 2 * time.Hour}, "3 per 2 hours"},
		{Policy{Limit: 10, Window: 24 * time.Hour}, "10 per 1 day"},
		{Policy{Limit: 2, Window: 90 * time.Second}, "2 per 90 seconds"},
		{Policy{Limit: 1, Window: 1500 * time.Millisecond}, "1 per 1.5s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.String())
		})
	}
}

func TestCheckAndRecord_DefaultPolicy(t *testing.T) {
	l := newTestLimiter(t, DefaultPolicy())

	first := l.CheckAndRecord("10.0.0.1", epoch)
	require.True(t, first.Allowed)
	assert.Equal(t, 0, first.Remaining)
	assert.Equal(t, epoch.Add(time.Hour), first.ResetAt)

	second := l.CheckAndRecord("10.0.0.1", epoch.Add(time.Second))
	require.False(t, second.Allowed)
	assert.Equal(t, time.Hour-time.Second, second.RetryAfter)

	later := l.CheckAndRecord("10.0.0.1", epoch.Add(time.Hour+time.Second))
	assert.True(t, later.Allowed)
}

func TestCheckAndRecord_NPlusOneRejected(t *testing.T) {
	for _, limit := range []int{1, 2, 5, 10} {
		t.Run(fmt.Sprintf("limit=%d", limit), func(t *testing.T) {
			l := newTestLimiter(t, Policy{Limit: limit, Window: time.Minute})

			for i := 0; i < limit; i++ {
				d := l.CheckAndRecord("k", epoch.Add(time.Duration(i)*time.Second))
				require.Truef(t, d.Allowed, "request %d should be admitted", i+1)
				assert.Equal(t, limit-i-1, d.Remaining)
			}

			d := l.CheckAndRecord("k", epoch.Add(time.Duration(limit)*time.Second))
			assert.False(t, d.Allowed)
			assert.Equal(t, time.Minute-time.Duration(limit)*time.Second, d.RetryAfter)
		})
	}
}

func TestCheckAndRecord_RejectionDoesNotExtendWindow(t *testing.T) {
	l := newTestLimiter(t, DefaultPolicy())

	require.True(t, l.CheckAndRecord("k", epoch).Allowed)
	for i := 1; i <= 10; i++ {
		require.False(t, l.CheckAndRecord("k", epoch.Add(time.Duration(i)*time.Minute)).Allowed)
	}

	assert.True(t, l.CheckAndRecord("k", epoch.Add(time.Hour)).Allowed)
}

func TestCheckAndRecord_DistinctKeysIndependent(t *testing.T) {
	l := newTestLimiter(t, DefaultPolicy())

	require.True(t, l.CheckAndRecord("a", epoch).Allowed)
	require.False(t, l.CheckAndRecord("a", epoch.Add(time.Second)).Allowed)

	b := l.CheckAndRecord("b", epoch.Add(time.Second))
	assert.True(t, b.Allowed)
	assert.False(t, l.CheckAndRecord("a", epoch.Add(2*time.Second)).Allowed)
	assert.Equal(t, 2, l.Len())
}

func TestCheckAndRecord_NonPositiveLimitRejectsAll(t *testing.T) {
	for _, limit := range []int{0, -1} {
		l := newTestLimiter(t, Policy{Limit: limit, Window: time.Hour})

		d := l.CheckAndRecord("k", epoch)
		assert.False(t, d.Allowed)
		assert.Equal(t, time.Hour, d.RetryAfter)
		assert.Equal(t, 0, l.Len(), "rejections must not record state")
	}
}

func TestCheckAndRecord_ConcurrentSameKey(t *testing.T) {
	l := newTestLimiter(t, DefaultPolicy())

	const workers = 64
	var admitted atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if l.CheckAndRecord("203.0.113.7", epoch).Allowed {
				admitted.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), admitted.Load())
}

func TestAllow_UsesClock(t *testing.T) {
	now := epoch
	l, err := New(DefaultPolicy(), WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	assert.True(t, l.Allow("k").Allowed)
	now = now.Add(30 * time.Minute)
	assert.False(t, l.Allow("k").Allowed)
	now = now.Add(31 * time.Minute)
	assert.True(t, l.Allow("k").Allowed)
}

func TestPrune(t *testing.T) {
	l := newTestLimiter(t, DefaultPolicy())

	l.CheckAndRecord("old", epoch)
	l.CheckAndRecord("fresh", epoch.Add(30*time.Minute))

	removed := l.Prune(epoch.Add(time.Hour))
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, l.Len())

	// fresh key keeps its window after pruning
	assert.False(t, l.CheckAndRecord("fresh", epoch.Add(time.Hour)).Allowed)
	assert.True(t, l.CheckAndRecord("old", epoch.Add(time.Hour)).Allowed)
}
