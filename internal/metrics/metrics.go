package metrics

import (
	"sync"
	"time"
)

// Metrics counts simulated writes and their outcomes.
type Metrics struct {
	mu               sync.RWMutex
	writesAttempted  int64
	writesSucceeded  int64
	injectedFailures int64
	writesCancelled  int64
	lastUpdateTime   time.Time
}

type Snapshot struct {
	WritesAttempted  int64     `json:"writesAttempted"`
	WritesSucceeded  int64     `json:"writesSucceeded"`
	InjectedFailures int64     `json:"injectedFailures"`
	WritesCancelled  int64     `json:"writesCancelled"`
	LastUpdateTime   time.Time `json:"lastUpdateTime"`
}

func NewMetrics() *Metrics {
	return &Metrics{
		lastUpdateTime: time.Now(),
	}
}

func (m *Metrics) IncrementWriteAttempt() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writesAttempted++
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) IncrementWriteSucceeded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writesSucceeded++
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) IncrementInjectedFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.injectedFailures++
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) IncrementWriteCancelled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writesCancelled++
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		WritesAttempted:  m.writesAttempted,
		WritesSucceeded:  m.writesSucceeded,
		InjectedFailures: m.injectedFailures,
		WritesCancelled:  m.writesCancelled,
		LastUpdateTime:   m.lastUpdateTime,
	}
}
