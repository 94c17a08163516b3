package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordCheckAndAverage(t *testing.T) {
	m := New()
	m.RecordCheck(int64(100 * time.Millisecond))
	m.RecordCheck(int64(300 * time.Millisecond))

	snap := m.Snapshot()
	assert.EqualValues(t, 2, snap.DomainsChecked)
	assert.InDelta(t, 200.0, snap.AvgCheckTimeMs(), 0.001)
}

func TestAvgCheckTimeZeroWhenEmpty(t *testing.T) {
	m := New()
	assert.Zero(t, m.Snapshot().AvgCheckTimeMs())
}

func TestConcurrentRecording(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordCheck(int64(time.Millisecond))
			m.RecordAPICall()
		}()
	}
	wg.Wait()
	snap := m.Snapshot()
	assert.EqualValues(t, 200, snap.DomainsChecked)
	assert.EqualValues(t, 200, snap.APICallsMade)
}
