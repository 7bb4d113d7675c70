package metrics

import "time"

//go:generate mockery --name MetricsProvider --dir . --output ../../mocks --outpkg mocks --with-expecter --filename MetricsProvider.go
type MetricsProvider interface {
	IncrementHTTPRequests(method, path, status string)
	RecordHTTPRequestDuration(method, path string, duration time.Duration)

	IncrementDatabaseQueries(queryType string, success bool)
	RecordDatabaseQueryDuration(queryType string, duration time.Duration)

	IncrementCacheHits()
	IncrementCacheMisses()
	RecordCacheOperationDuration(operation string, duration time.Duration)

	IncrementPostOperations(operation string, success bool)
	IncrementFeedPages(feedType string)
	IncrementFeedFallbacks()
	RecordFeedAssemblyDuration(feedType string, duration time.Duration)

	SetServiceHealth(healthy bool)
}

// Noop satisfies MetricsProvider for tests and wiring without a
// metrics backend.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (Noop) IncrementHTTPRequests(method, path, status string)                     {}
func (Noop) RecordHTTPRequestDuration(method, path string, duration time.Duration) {}
func (Noop) IncrementDatabaseQueries(queryType string, success bool)               {}
func (Noop) RecordDatabaseQueryDuration(queryType string, duration time.Duration)  {}
func (Noop) IncrementCacheHits()                                                   {}
func (Noop) IncrementCacheMisses()                                                 {}
func (Noop) RecordCacheOperationDuration(operation string, duration time.Duration) {}
func (Noop) IncrementPostOperations(operation string, success bool)                {}
func (Noop) IncrementFeedPages(feedType string)                                    {}
func (Noop) IncrementFeedFallbacks()                                               {}
func (Noop) RecordFeedAssemblyDuration(feedType string, duration time.Duration)    {}
func (Noop) SetServiceHealth(healthy bool)                                         {}
