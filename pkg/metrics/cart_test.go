package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCartMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewCartMetrics(reg)
	metrics.IncMutation("add")
	metrics.IncMutation("add")
	metrics.IncMirrorFailure("save")
	metrics.IncCheckout("success")
	metrics.ObserveDraftOrders(3)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "cart_mutations_total", "op", "add"); err != nil {
		t.Fatalf("fetch mutations: %v", err)
	} else if got != 2 {
		t.Fatalf("expected add=2, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "cart_mirror_failures_total", "op", "save"); err != nil {
		t.Fatalf("fetch mirror failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected save failures=1, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "checkout_attempts_total", "outcome", "success"); err != nil {
		t.Fatalf("fetch checkouts: %v", err)
	} else if got != 1 {
		t.Fatalf("expected success=1, got %f", got)
	}

	mf := findMetricFamily(mfs, "checkout_draft_orders")
	if mf == nil || len(mf.GetMetric()) != 1 {
		t.Fatalf("draft order histogram missing")
	}
	if sum := mf.GetMetric()[0].GetHistogram().GetSampleSum(); sum != 3 {
		t.Fatalf("expected histogram sum 3, got %f", sum)
	}
}

func TestCartMetricsNilSafe(t *testing.T) {
	var nilMetrics *CartMetrics
	nilMetrics.IncMutation("add")
	nilMetrics.IncMirrorFailure("load")
	nilMetrics.IncCheckout("empty_cart")
	nilMetrics.ObserveDraftOrders(1)

	noop := NewCartMetrics(nil)
	noop.IncMutation("add")
	noop.ObserveDraftOrders(1)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
