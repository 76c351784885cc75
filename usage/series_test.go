package usage

import (
	"sync"
	"testing"

	"github.com/Gthulhu/cpupower/domain"
	"github.com/stretchr/testify/assert"
)

func TestSeriesKeepsInsertionOrder(t *testing.T) {
	s := NewSeries(3)
	assert.Empty(t, s.Snapshot())
	s.Append(1)
	s.Append(2)
	assert.Equal(t, []float64{1, 2}, s.Snapshot())
	assert.Equal(t, 2, s.Len())
}

func TestSeriesEvictsOldest(t *testing.T) {
	s := NewSeries(domain.UsageSeriesCapacity)
	for i := range 61 {
		s.Append(float64(i))
	}
	snap := s.Snapshot()
	assert.Len(t, snap, domain.UsageSeriesCapacity)
	assert.Equal(t, 1.0, snap[0])
	assert.Equal(t, 60.0, snap[len(snap)-1])
}

func TestSeriesSnapshotIsCopy(t *testing.T) {
	s := NewSeries(2)
	s.Append(5)
	snap := s.Snapshot()
	snap[0] = 99
	assert.Equal(t, []float64{5}, s.Snapshot())
}

func TestSeriesConcurrentReaders(t *testing.T) {
	s := NewSeries(10)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 1000 {
			s.Append(float64(i))
		}
	}()
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				snap := s.Snapshot()
				assert.LessOrEqual(t, len(snap), 10)
				for i := 1; i < len(snap); i++ {
					assert.Less(t, snap[i-1], snap[i])
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, s.Len())
}
