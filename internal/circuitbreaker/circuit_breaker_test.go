package circuitbreaker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

var errTest = errors.New("boom")

func TestOpensAfterMaxFailures(t *testing.T) {
	cb := New(Config{
		Name:        "test",
		MaxFailures: 3,
		Timeout:     time.Minute,
		MaxRequests: 1,
	}, testLogger())

	for i := 0; i < 3; i++ {
		if err := cb.Execute(func() error { return errTest }); !errors.Is(err, errTest) {
			t.Fatalf("attempt %d: error = %v, want errTest", i, err)
		}
	}

	if cb.State() != StateOpen {
		t.Fatalf("state = %s, want open", cb.State())
	}

	err := cb.Execute(func() error { return nil })
	if !errors.Is(err, ErrCircuitBreakerOpen) {
		t.Fatalf("error = %v, want ErrCircuitBreakerOpen", err)
	}
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := New(Config{
		Name:        "test",
		MaxFailures: 2,
		Timeout:     time.Minute,
		MaxRequests: 1,
	}, testLogger())

	cb.Execute(func() error { return errTest })
	cb.Execute(func() error { return nil })
	cb.Execute(func() error { return errTest })

	if cb.State() != StateClosed {
		t.Fatalf("state = %s, want closed after interleaved success", cb.State())
	}
}

func TestHalfOpenRecovery(t *testing.T) {
	cb := New(Config{
		Name:        "test",
		MaxFailures: 1,
		Timeout:     20 * time.Millisecond,
		MaxRequests: 1,
	}, testLogger())

	cb.Execute(func() error { return errTest })
	if cb.State() != StateOpen {
		t.Fatalf("state = %s, want open", cb.State())
	}

	time.Sleep(30 * time.Millisecond)

	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("probe request error = %v", err)
	}
	if cb.State() != StateClosed {
		t.Fatalf("state = %s, want closed after successful probe", cb.State())
	}
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb := New(Config{
		Name:        "test",
		MaxFailures: 1,
		Timeout:     20 * time.Millisecond,
		MaxRequests: 1,
	}, testLogger())

	cb.Execute(func() error { return errTest })
	time.Sleep(30 * time.Millisecond)

	cb.Execute(func() error { return errTest })
	if cb.State() != StateOpen {
		t.Fatalf("state = %s, want open after failed probe", cb.State())
	}
}

func TestDefaultsApplied(t *testing.T) {
	cb := New(Config{}, testLogger())

	if cb.name != "unnamed" {
		t.Errorf("name = %q, want unnamed", cb.name)
	}
	if cb.maxFailures != 5 {
		t.Errorf("maxFailures = %d, want 5", cb.maxFailures)
	}
	if cb.timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cb.timeout)
	}
	if cb.maxRequests != 1 {
		t.Errorf("maxRequests = %d, want 1", cb.maxRequests)
	}
}

func TestMetricsConsistentUnderConcurrency(t *testing.T) {
	cb := New(Config{
		Name:        "test",
		MaxFailures: 1000,
		Timeout:     time.Minute,
		MaxRequests: 1,
	}, testLogger())

	const goroutines = 50
	const iterations = 20

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				cb.Execute(func() error {
					if (n+j)%3 == 0 {
						return errTest
					}
					return nil
				})
			}
		}(i)
	}
	wg.Wait()

	metrics := cb.Metrics()
	total := metrics["total_requests"].(int64)
	failures := metrics["total_failures"].(int64)
	successes := metrics["total_successes"].(int64)

	if total != failures+successes {
		t.Errorf("inconsistent metrics: total=%d failures=%d successes=%d", total, failures, successes)
	}
	if total != goroutines*iterations {
		t.Errorf("total = %d, want %d", total, goroutines*iterations)
	}
}
