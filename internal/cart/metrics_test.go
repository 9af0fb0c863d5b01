package cart

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tahweela/tahweela-backend/pkg/metrics"
)

func counterTotal(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	total := 0.0
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestControllerRecordsMutationsAndMirrorFailures(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	ctrl, err := NewController(Options{
		Key:     "tahweela_cart",
		Mirror:  &failingMirror{saveErr: errMirrorDown},
		Metrics: metrics.NewCartMetrics(reg),
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	ctrl.Init(ctx)

	_ = ctrl.Add(ctx, product("1", "sup1", 450), 1, nil)
	ctrl.Clear(ctx)

	if got := counterTotal(t, reg, "cart_mutations_total"); got != 2 {
		t.Fatalf("expected 2 mutations, got %v", got)
	}
	if got := counterTotal(t, reg, "cart_mirror_failures_total"); got != 2 {
		t.Fatalf("expected 2 mirror failures, got %v", got)
	}
}
