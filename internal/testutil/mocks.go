package testutil

import (
	"errors"
	"fmt"
	"recstore/internal/models"
	"recstore/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu           sync.Mutex
	RecordsTotal map[string]int
	Requests     map[string]int
	StoreOps     []string
	Persistences int
	CacheHits    int
	CacheMisses  int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		RecordsTotal: make(map[string]int),
		Requests:     make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests[fmt.Sprintf("%s %d", endpoint, status)]++
}

// RequestCount returns how many requests to endpoint finished with status.
func (m *MockMetrics) RequestCount(endpoint string, status int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Requests[fmt.Sprintf("%s %d", endpoint, status)]
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObserveStoreDuration(kind, op string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreOps = append(m.StoreOps, kind+":"+op)
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persistences++
}
func (m *MockMetrics) SetRecordsTotal(kind string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordsTotal[kind] = count
}

// MockRecordService implements services.RecordServiceInterface with
// injectable failures.
type MockRecordService struct {
	mu        sync.Mutex
	SaveCalls []SaveCall
	LoadCalls []models.Kind
	LoadData  map[models.Kind]any
	CountData map[string]int
	Dir       string
	SaveErr   error
	LoadErr   error
	CountErr  error
}

type SaveCall struct {
	Kind models.Kind
	Data models.Record
}

var ErrMockFailure = errors.New("mock failure")

func (m *MockRecordService) Save(kind models.Kind, data models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, SaveCall{Kind: kind, Data: data})
	return m.SaveErr
}

func (m *MockRecordService) Load(kind models.Kind) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls = append(m.LoadCalls, kind)
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if v, ok := m.LoadData[kind]; ok {
		return v, nil
	}
	if kind == models.KindConfig {
		return models.Record("{}"), nil
	}
	return []models.Record{}, nil
}

func (m *MockRecordService) Counts() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountErr != nil {
		return nil, m.CountErr
	}
	return m.CountData, nil
}

func (m *MockRecordService) DataDir() string {
	return m.Dir
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {
	m.Closed = true
}
