package synth

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"
)

type Gender int

const (
	Male Gender = iota
	Female
)

// Source produces every random value in a run. It is a thin wrapper over
// math/rand seeded from the run configuration: the same seed and the same
// call sequence always yield the same values.
type Source struct {
	rng  *rand.Rand
	seed int64
}

func New(seed int64) *Source {
	return &Source{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Derive returns an independent child source whose seed is a function of
// the parent seed, a label, and an index. Fan-out jobs each derive their
// own source so concurrent scheduling cannot perturb the output.
func (s *Source) Derive(label string, index int) *Source {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d/%s/%d", s.seed, label, index)
	return New(int64(h.Sum64()))
}

// IntBetween returns a value in [min, max], inclusive on both ends.
func (s *Source) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.Intn(max-min+1)
}

// FloatBetween returns a value in [min, max) rounded to the given number
// of decimal places.
func (s *Source) FloatBetween(min, max float64, decimals int) float64 {
	v := min + s.rng.Float64()*(max-min)
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

func (s *Source) Bool() bool {
	return s.rng.Intn(2) == 1
}

func (s *Source) Gender() Gender {
	if s.rng.Intn(2) == 0 {
		return Male
	}
	return Female
}

func (s *Source) FirstName(g Gender) string {
	if g == Male {
		return maleFirstNames[s.rng.Intn(len(maleFirstNames))]
	}
	return femaleFirstNames[s.rng.Intn(len(femaleFirstNames))]
}

func (s *Source) LastName() string {
	return lastNames[s.rng.Intn(len(lastNames))]
}

func (s *Source) Phone() string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", s.IntBetween(200, 999), s.rng.Intn(1000), s.rng.Intn(10000))
}

// Weighted picks one option using integer weights. Weights must be the
// same length as options; a zero total falls back to a uniform pick.
func (s *Source) Weighted(options []string, weights []int) string {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 || len(weights) != len(options) {
		return options[s.rng.Intn(len(options))]
	}
	n := s.rng.Intn(total)
	for i, w := range weights {
		if n < w {
			return options[i]
		}
		n -= w
	}
	return options[len(options)-1]
}

// WeightedFloat is Weighted for numeric scales (e.g. grade curves).
func (s *Source) WeightedFloat(options []float64, weights []int) float64 {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 || len(weights) != len(options) {
		return options[s.rng.Intn(len(options))]
	}
	n := s.rng.Intn(total)
	for i, w := range weights {
		if n < w {
			return options[i]
		}
		n -= w
	}
	return options[len(options)-1]
}

// DateBetween returns a day-granularity time in [start, end].
func (s *Source) DateBetween(start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return start
	}
	return start.AddDate(0, 0, s.rng.Intn(days+1))
}

// DateTimeBetween returns a second-granularity time in [start, end).
func (s *Source) DateTimeBetween(start, end time.Time) time.Time {
	span := int64(end.Sub(start).Seconds())
	if span <= 0 {
		return start
	}
	return start.Add(time.Duration(s.rng.Int63n(span)) * time.Second)
}

func (s *Source) Sentence(minWords, maxWords int) string {
	n := s.IntBetween(minWords, maxWords)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = loremWords[s.rng.Intn(len(loremWords))]
	}
	out := strings.Join(parts, " ")
	return strings.ToUpper(out[:1]) + out[1:] + "."
}

func (s *Source) Paragraph(sentences int) string {
	parts := make([]string, sentences)
	for i := range parts {
		parts[i] = s.Sentence(5, 12)
	}
	return strings.Join(parts, " ")
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](s *Source, items []T) T {
	return items[s.rng.Intn(len(items))]
}

// Sample returns k distinct elements drawn without replacement, via a
// partial Fisher-Yates shuffle of a copy. Order of the result follows the
// shuffle, not the input.
func Sample[T any](s *Source, items []T, k int) []T {
	if k > len(items) {
		k = len(items)
	}
	if k <= 0 {
		return nil
	}
	cp := make([]T, len(items))
	copy(cp, items)
	for i := 0; i < k; i++ {
		j := i + s.rng.Intn(len(cp)-i)
		cp[i], cp[j] = cp[j], cp[i]
	}
	return cp[:k]
}
