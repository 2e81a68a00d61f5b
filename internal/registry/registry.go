// Package registry enforces run-wide uniqueness of generated values:
// scalar categories such as emails and phone numbers, and composite keys
// such as (classroom, class time) schedule fingerprints.
package registry

import (
	"fmt"
	"strings"
	"sync"
)

const DefaultMaxAttempts = 1000

// ExhaustionError reports that a category's candidate space ran out
// before a free value was found.
type ExhaustionError struct {
	Category string
	Attempts int
}

func (e *ExhaustionError) Error() string {
	return fmt.Sprintf("uniqueness space exhausted for category %q after %d attempts", e.Category, e.Attempts)
}

// Registry is safe for use from concurrent fan-out workers; every
// membership check and insert happens under one mutex.
type Registry struct {
	mu          sync.Mutex
	seen        map[string]map[string]struct{}
	maxAttempts int
}

func New(maxAttempts int) *Registry {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Registry{
		seen:        make(map[string]map[string]struct{}),
		maxAttempts: maxAttempts,
	}
}

func (r *Registry) category(name string) map[string]struct{} {
	c, ok := r.seen[name]
	if !ok {
		c = make(map[string]struct{})
		r.seen[name] = c
	}
	return c
}

// Reserve records candidate in the category and returns it. If the
// candidate is already taken, a numeric suffix is appended (before the
// "@" for email-shaped values) and retried up to the attempt ceiling.
func (r *Registry) Reserve(category, candidate string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.category(category)
	if _, taken := c[candidate]; !taken {
		c[candidate] = struct{}{}
		return candidate, nil
	}

	local, domain, isEmail := strings.Cut(candidate, "@")
	for i := 1; i <= r.maxAttempts; i++ {
		var next string
		if isEmail {
			next = fmt.Sprintf("%s%d@%s", local, i, domain)
		} else {
			next = fmt.Sprintf("%s%d", candidate, i)
		}
		if _, taken := c[next]; !taken {
			c[next] = struct{}{}
			return next, nil
		}
	}
	return "", &ExhaustionError{Category: category, Attempts: r.maxAttempts}
}

// TryReserve records a composite key and reports whether it was free.
// Callers regenerate and retry on false, bounded by MaxAttempts.
func (r *Registry) TryReserve(category, key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.category(category)
	if _, taken := c[key]; taken {
		return false
	}
	c[key] = struct{}{}
	return true
}

// MaxAttempts is the retry ceiling callers of TryReserve should honor
// before giving up with an ExhaustionError.
func (r *Registry) MaxAttempts() int {
	return r.maxAttempts
}

// Count returns how many values a category holds.
func (r *Registry) Count(category string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen[category])
}
