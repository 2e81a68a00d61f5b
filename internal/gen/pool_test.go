package gen

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
)

func TestPoolMapRunsEveryJob(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	var ran int64
	hits := make([]int32, 100)
	err := p.Map(100, func(i int) error {
		atomic.AddInt64(&ran, 1)
		atomic.AddInt32(&hits[i], 1)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ran != 100 {
		t.Errorf("expected 100 jobs, ran %d", ran)
	}
	for i, h := range hits {
		if h != 1 {
			t.Errorf("job %d ran %d times", i, h)
		}
	}
}

func TestPoolMapJoinsErrors(t *testing.T) {
	p := NewPool(2)
	defer p.Close()

	var ran int64
	err := p.Map(10, func(i int) error {
		atomic.AddInt64(&ran, 1)
		if i == 3 || i == 7 {
			return fmt.Errorf("job %d failed", i)
		}
		return nil
	})
	if err == nil {
		t.Fatal("expected joined error")
	}
	if ran != 10 {
		t.Errorf("a failing job must not stop its siblings: ran %d of 10", ran)
	}
	if !strings.Contains(err.Error(), "job 3 failed") || !strings.Contains(err.Error(), "job 7 failed") {
		t.Errorf("joined error should name both failures: %v", err)
	}
}

func TestPoolMapZeroJobs(t *testing.T) {
	p := NewPool(2)
	defer p.Close()

	if err := p.Map(0, func(i int) error { return errors.New("never") }); err != nil {
		t.Errorf("zero jobs should be a no-op, got %v", err)
	}
}

func TestPoolSequentialReuse(t *testing.T) {
	p := NewPool(3)
	defer p.Close()

	for round := 0; round < 5; round++ {
		var ran int64
		if err := p.Map(20, func(i int) error {
			atomic.AddInt64(&ran, 1)
			return nil
		}); err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
		if ran != 20 {
			t.Fatalf("round %d: ran %d of 20", round, ran)
		}
	}
}
