package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	storeRequests       map[string]int
	storeFailures       map[string]int
	pagesFetched        map[string][]int
	silentWriteFailures map[string]int
	orphanedAdjustments int
	eventsPublished     map[string]int
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		storeRequests:       make(map[string]int),
		storeFailures:       make(map[string]int),
		pagesFetched:        make(map[string][]int),
		silentWriteFailures: make(map[string]int),
		eventsPublished:     make(map[string]int),
	}
}

func storeKey(operation, table string) string {
	return operation + "/" + table
}

func (m *Mock) IncStoreRequests(operation, table string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeRequests[storeKey(operation, table)]++
}

func (m *Mock) IncStoreFailures(operation, table string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeFailures[storeKey(operation, table)]++
}

func (m *Mock) ObservePagesFetched(table string, pages int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pagesFetched[table] = append(m.pagesFetched[table], pages)
}

func (m *Mock) IncSilentWriteFailures(field string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.silentWriteFailures[field]++
}

func (m *Mock) IncOrphanedAdjustments() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orphanedAdjustments++
}

func (m *Mock) IncEventsPublished(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished[event]++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// StoreRequests returns how often IncStoreRequests was called for operation and table.
func (m *Mock) StoreRequests(operation, table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeRequests[storeKey(operation, table)]
}

// StoreFailures returns how often IncStoreFailures was called for operation and table.
func (m *Mock) StoreFailures(operation, table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeFailures[storeKey(operation, table)]
}

// PagesFetched returns every page count observed for table.
func (m *Mock) PagesFetched(table string) []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.pagesFetched[table]...)
}

func (m *Mock) SilentWriteFailures(field string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.silentWriteFailures[field]
}

func (m *Mock) OrphanedAdjustments() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orphanedAdjustments
}

func (m *Mock) EventsPublished(event string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished[event]
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
