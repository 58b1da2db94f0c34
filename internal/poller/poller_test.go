// internal/poller/poller_test.go
package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeReader struct {
	mu    sync.Mutex
	flow  float64
	fail  bool
	calls int
}

func (f *fakeReader) GetFlow() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail {
		return 0, errors.New("fail read")
	}
	return f.flow, nil
}

func TestNew_Validates(t *testing.T) {
	r := &fakeReader{}

	if _, err := New(Config{Interval: time.Second}, r); err == nil {
		t.Fatalf("expected error for missing device name")
	}
	if _, err := New(Config{Device: "rrg"}, r); err == nil {
		t.Fatalf("expected error for zero interval")
	}
	if _, err := New(Config{Device: "rrg", Interval: time.Second}, nil); err == nil {
		t.Fatalf("expected error for nil reader")
	}
}

func TestPollOnce_Success(t *testing.T) {
	p, err := New(Config{Device: "rrg", Interval: time.Second}, &fakeReader{flow: 45})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	res := p.PollOnce()
	if res.Err != nil {
		t.Fatalf("PollOnce err=%v", res.Err)
	}
	if res.Flow != 45 || res.Device != "rrg" || res.At.IsZero() {
		t.Fatalf("unexpected reading: %+v", res)
	}
}

func TestPollOnce_Failure(t *testing.T) {
	p, err := New(Config{Device: "rrg", Interval: time.Second}, &fakeReader{fail: true})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	res := p.PollOnce()
	if res.Err == nil {
		t.Fatalf("expected error, got nil")
	}
	if res.Flow != 0 {
		t.Fatalf("flow must be zero on failure, got %v", res.Flow)
	}
}

func TestRun_EmitsUntilCancelled(t *testing.T) {
	reader := &fakeReader{flow: 1.5}
	p, err := New(Config{Device: "rrg", Interval: 5 * time.Millisecond}, reader)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan Reading)
	done := make(chan struct{})
	go func() {
		p.Run(ctx, out)
		close(done)
	}()

	for i := 0; i < 3; i++ {
		select {
		case r := <-out:
			if r.Flow != 1.5 {
				t.Fatalf("unexpected flow %v", r.Flow)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for reading %d", i)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
