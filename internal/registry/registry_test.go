package registry

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestReserveReturnsFreeCandidate(t *testing.T) {
	r := New(0)

	got, err := r.Reserve("email", "a.smith@university.edu")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a.smith@university.edu" {
		t.Errorf("expected candidate returned unchanged, got %q", got)
	}
	if r.Count("email") != 1 {
		t.Errorf("expected 1 reserved value, got %d", r.Count("email"))
	}
}

func TestReserveSuffixesEmailBeforeDomain(t *testing.T) {
	r := New(0)

	r.Reserve("email", "a.smith@university.edu")
	got, err := r.Reserve("email", "a.smith@university.edu")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a.smith1@university.edu" {
		t.Errorf("expected suffix before domain, got %q", got)
	}

	got, _ = r.Reserve("email", "a.smith@university.edu")
	if got != "a.smith2@university.edu" {
		t.Errorf("expected incrementing suffix, got %q", got)
	}
}

func TestReserveSuffixesPlainValues(t *testing.T) {
	r := New(0)

	r.Reserve("phone", "+1-555-123-4567")
	got, err := r.Reserve("phone", "+1-555-123-4567")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "+1-555-123-45671" {
		t.Errorf("expected appended suffix, got %q", got)
	}
}

func TestReserveExhaustion(t *testing.T) {
	r := New(3)

	r.Reserve("email", "x@y.z")
	for i := 1; i <= 3; i++ {
		if _, err := r.Reserve("email", "x@y.z"); err != nil {
			t.Fatalf("attempt %d should still find a suffix: %v", i, err)
		}
	}

	_, err := r.Reserve("email", "x@y.z")
	if err == nil {
		t.Fatal("expected exhaustion error")
	}
	var exhausted *ExhaustionError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ExhaustionError, got %T", err)
	}
	if exhausted.Category != "email" || exhausted.Attempts != 3 {
		t.Errorf("unexpected error fields: %+v", exhausted)
	}
}

func TestTryReserve(t *testing.T) {
	r := New(0)

	if !r.TryReserve("slot", "B1 R101|2025-09-08 09:00") {
		t.Error("first reservation should succeed")
	}
	if r.TryReserve("slot", "B1 R101|2025-09-08 09:00") {
		t.Error("duplicate reservation should fail")
	}
	if !r.TryReserve("slot", "B1 R101|2025-09-08 11:00") {
		t.Error("distinct key should succeed")
	}
}

func TestCategoriesAreIndependent(t *testing.T) {
	r := New(0)

	r.Reserve("email", "shared")
	got, _ := r.Reserve("phone", "shared")
	if got != "shared" {
		t.Errorf("categories should not share keyspaces, got %q", got)
	}
}

func TestConcurrentReserve(t *testing.T) {
	r := New(0)

	const workers = 8
	const perWorker = 200

	var wg sync.WaitGroup
	results := make([][]string, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				got, err := r.Reserve("email", fmt.Sprintf("user%d@u.edu", i%50))
				if err != nil {
					t.Errorf("worker %d: %v", w, err)
					return
				}
				results[w] = append(results[w], got)
			}
		}(w)
	}
	wg.Wait()

	seen := make(map[string]struct{})
	for _, rs := range results {
		for _, v := range rs {
			if _, dup := seen[v]; dup {
				t.Fatalf("duplicate value handed out: %q", v)
			}
			seen[v] = struct{}{}
		}
	}
	if len(seen) != workers*perWorker {
		t.Errorf("expected %d distinct values, got %d", workers*perWorker, len(seen))
	}
}
