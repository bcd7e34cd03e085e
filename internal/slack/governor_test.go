package slack

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"
)

// sleepRecorder records requested backoff waits without sleeping.
type sleepRecorder struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.waits = append(s.waits, d)
	s.mu.Unlock()
	return nil
}

func (s *sleepRecorder) recorded() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.waits...)
}

// throttleHandler serves 429 with a Retry-After hint for the first n
// requests, then succeeds.
func throttleHandler(n int, retryAfter string, onSuccess http.HandlerFunc) http.HandlerFunc {
	var mu sync.Mutex
	served := 0
	return func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		served++
		throttle := served <= n
		mu.Unlock()
		if throttle {
			if retryAfter != "" {
				w.Header().Set("Retry-After", retryAfter)
			}
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		onSuccess(w, r)
	}
}

func TestThrottledCallRetriesAfterHint(t *testing.T) {
	f := newFakeWorkspace(t)
	f.handle("auth.test", throttleHandler(2, "3", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, map[string]any{"team": "acme"})
	}))

	rec := &sleepRecorder{}
	c := newTestClient(t, f, WithSleepFunc(rec.sleep))

	if _, err := c.AuthTest(context.Background()); err != nil {
		t.Fatalf("AuthTest() error = %v, want success after retries", err)
	}

	waits := rec.recorded()
	if len(waits) != 2 {
		t.Fatalf("recorded %d waits, want 2", len(waits))
	}
	for i, w := range waits {
		if w < 3*time.Second {
			t.Errorf("wait[%d] = %v, want at least the hinted 3s", i, w)
		}
	}
	if got := f.count("auth.test"); got != 3 {
		t.Errorf("auth.test called %d times, want 3", got)
	}
}

func TestThrottleExhaustsRetryBudget(t *testing.T) {
	f := newFakeWorkspace(t)
	f.handle("auth.test", throttleHandler(100, "1", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, nil)
	}))

	rec := &sleepRecorder{}
	c := newTestClient(t, f, WithSleepFunc(rec.sleep))

	_, err := c.AuthTest(context.Background())
	if !IsRateLimited(err) {
		t.Fatalf("AuthTest() error = %v, want rate-limited classification", err)
	}
	// Initial call plus exactly MaxRetries retries, never more.
	if got, want := f.count("auth.test"), DefaultRetryPolicy.MaxRetries+1; got != want {
		t.Errorf("auth.test called %d times, want %d", got, want)
	}
	if got, want := len(rec.recorded()), DefaultRetryPolicy.MaxRetries; got != want {
		t.Errorf("recorded %d waits, want %d", got, want)
	}
}

func TestThrottleWithoutHintUsesFallback(t *testing.T) {
	f := newFakeWorkspace(t)
	f.handle("auth.test", throttleHandler(1, "", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, nil)
	}))

	rec := &sleepRecorder{}
	c := newTestClient(t, f, WithSleepFunc(rec.sleep))

	if _, err := c.AuthTest(context.Background()); err != nil {
		t.Fatalf("AuthTest() error = %v", err)
	}
	waits := rec.recorded()
	if len(waits) != 1 || waits[0] != DefaultRetryPolicy.FallbackWait {
		t.Errorf("waits = %v, want one fallback wait of %v", waits, DefaultRetryPolicy.FallbackWait)
	}
}

func TestBackoffBudgetCapsTotalWait(t *testing.T) {
	f := newFakeWorkspace(t)
	f.handle("auth.test", throttleHandler(100, "45", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, nil)
	}))

	rec := &sleepRecorder{}
	c := newTestClient(t, f, WithSleepFunc(rec.sleep))

	_, err := c.AuthTest(context.Background())
	if !IsRateLimited(err) {
		t.Fatalf("AuthTest() error = %v, want rate-limited classification", err)
	}
	// 45s + 45s would exceed the 60s budget, so only one wait happens.
	if got := len(rec.recorded()); got != 1 {
		t.Errorf("recorded %d waits, want 1 before the budget is exceeded", got)
	}
}

func TestCancelledDuringBackoff(t *testing.T) {
	f := newFakeWorkspace(t)

	ctx, cancel := context.WithCancel(context.Background())
	f.handle("auth.test", func(w http.ResponseWriter, r *http.Request) {
		// Cancel while the governor is about to wait out the throttle.
		cancel()
		w.Header().Set("Retry-After", "5")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	c := newTestClient(t, f)
	_, err := c.AuthTest(ctx)
	if !IsCancelled(err) {
		t.Fatalf("AuthTest() error = %v, want cancelled classification", err)
	}
	if got := f.count("auth.test"); got != 1 {
		t.Errorf("auth.test called %d times, want 1 (no retry after cancellation)", got)
	}
}

func TestRetryPolicyOverride(t *testing.T) {
	f := newFakeWorkspace(t)
	f.handle("auth.test", throttleHandler(100, "1", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, nil)
	}))

	rec := &sleepRecorder{}
	c := newTestClient(t, f,
		WithSleepFunc(rec.sleep),
		WithRetryPolicy(RetryPolicy{MaxRetries: 1, FallbackWait: time.Second, MaxBackoff: time.Minute, TransientDelay: time.Millisecond}),
	)

	_, err := c.AuthTest(context.Background())
	if !IsRateLimited(err) {
		t.Fatalf("AuthTest() error = %v, want rate-limited classification", err)
	}
	if got := f.count("auth.test"); got != 2 {
		t.Errorf("auth.test called %d times, want 2 with MaxRetries=1", got)
	}
}
