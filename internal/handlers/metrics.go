package handlers

import "github.com/prometheus/client_golang/prometheus"

type BookmarkMetrics struct {
	ResolveRequests *prometheus.CounterVec
	ImportRequests  *prometheus.CounterVec
	ImportRecords   *prometheus.CounterVec
}

func (m *BookmarkMetrics) IncResolve(status string) {
	if m == nil || m.ResolveRequests == nil {
		return
	}
	m.ResolveRequests.WithLabelValues(status).Inc()
}

func (m *BookmarkMetrics) IncImport(status string) {
	if m == nil || m.ImportRequests == nil {
		return
	}
	m.ImportRequests.WithLabelValues(status).Inc()
}

func (m *BookmarkMetrics) AddImportRecords(result string, n int) {
	if m == nil || m.ImportRecords == nil {
		return
	}
	m.ImportRecords.WithLabelValues(result).Add(float64(n))
}
