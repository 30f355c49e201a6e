package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	if m == nil {
		t.Fatal("NewMetrics() returned nil")
	}
	if len(m.Collectors()) != 3 {
		t.Errorf("expected 3 collectors, got %d", len(m.Collectors()))
	}
}

func TestMetricsRegisterAndRecord(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	if err := m.Register(reg); err != nil {
		t.Fatalf("Register() returned error: %v", err)
	}

	m.IncEventsTracked("payment_success", StatusSuccess)
	m.IncEventsTracked("payment_success", StatusFailure)
	m.AddEventsDeleted(42)
	m.IncJanitorRuns(StatusSuccess)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() returned error: %v", err)
	}
	found := map[string]*dto.MetricFamily{}
	for _, fam := range families {
		found[fam.GetName()] = fam
	}
	if fam, ok := found[MetricEventsTrackedTotal]; !ok || len(fam.GetMetric()) != 2 {
		t.Errorf("events tracked family missing or wrong cardinality: %v", fam)
	}
	if fam, ok := found[MetricEventsDeletedTotal]; !ok || fam.GetMetric()[0].GetCounter().GetValue() != 42 {
		t.Errorf("events deleted family missing or wrong value: %v", fam)
	}
	if _, ok := found[MetricJanitorRunsTotal]; !ok {
		t.Error("janitor runs family missing")
	}
}

func TestMetricsDoubleRegisterFails(t *testing.T) {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	if err := m.Register(reg); err != nil {
		t.Fatalf("first Register() returned error: %v", err)
	}
	if err := m.Register(reg); err == nil {
		t.Error("second Register() should fail")
	}
}
