package rng

// Scripted is a Source that replays a fixed sequence of samples, then
// repeats the last one. It makes individual rolls in tests exact: a
// sample of 0 yields the minimum of any range.
type Scripted struct {
	samples []float64
	next    int
}

// NewScripted creates a scripted source. With no samples it always returns 0.
func NewScripted(samples ...float64) *Scripted {
	return &Scripted{samples: samples}
}

// Float64 returns the next scripted sample.
func (s *Scripted) Float64() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	if s.next >= len(s.samples) {
		return s.samples[len(s.samples)-1]
	}
	v := s.samples[s.next]
	s.next++
	return v
}

// Push appends more samples to the script.
func (s *Scripted) Push(samples ...float64) {
	s.samples = append(s.samples, samples...)
}

// Consumed returns how many scripted samples have been drawn.
func (s *Scripted) Consumed() int {
	return s.next
}

// SampleFor returns the sample that makes IntRange(lo, hi) yield v.
func SampleFor(lo, hi, v int) float64 {
	n := hi - lo + 1
	return (float64(v-lo) + 0.5) / float64(n)
}
