package usage

import "sync"

// Series is a bounded FIFO of usage samples. One writer, any number of readers.
type Series struct {
	mu     sync.RWMutex
	values []float64
	start  int
	size   int
}

func NewSeries(capacity int) *Series {
	if capacity < 1 {
		capacity = 1
	}
	return &Series{values: make([]float64, capacity)}
}

// Append adds a sample, evicting the oldest one when full.
func (s *Series) Append(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	capacity := len(s.values)
	if s.size < capacity {
		s.values[(s.start+s.size)%capacity] = v
		s.size++
		return
	}
	s.values[s.start] = v
	s.start = (s.start + 1) % capacity
}

// Snapshot returns a copy of the samples, oldest first.
func (s *Series) Snapshot() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]float64, s.size)
	for i := range s.size {
		out[i] = s.values[(s.start+i)%len(s.values)]
	}
	return out
}

func (s *Series) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

func (s *Series) Capacity() int {
	return len(s.values)
}
