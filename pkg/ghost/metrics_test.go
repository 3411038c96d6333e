package ghost

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestGenerateMetricsIncrement(t *testing.T) {
	okBefore := testutil.ToFloat64(generationsTotal.WithLabelValues("ok"))
	tokBefore := testutil.ToFloat64(tokensStreamedTotal)

	c := loadTestContext(t, &fakeEngine{tokens: []string{"a", "b"}}, Options{})
	defer func() { _ = c.Release() }()
	resp := c.Generate(context.Background(), "p", nil)
	resp.Release()

	if got := testutil.ToFloat64(generationsTotal.WithLabelValues("ok")) - okBefore; got != 1 {
		t.Fatalf("expected 1 ok generation, got %v", got)
	}
	if got := testutil.ToFloat64(tokensStreamedTotal) - tokBefore; got != 2 {
		t.Fatalf("expected 2 streamed tokens, got %v", got)
	}
}

func TestBusyMetricOutcome(t *testing.T) {
	busyBefore := testutil.ToFloat64(generationsTotal.WithLabelValues("busy"))

	c := loadTestContext(t, &fakeEngine{}, Options{})
	defer func() { _ = c.Release() }()
	// occupy the in-flight slot directly; the guard is what we measure
	c.genCh <- struct{}{}
	resp := c.Generate(context.Background(), "p", nil)
	resp.Release()
	<-c.genCh

	if got := testutil.ToFloat64(generationsTotal.WithLabelValues("busy")) - busyBefore; got != 1 {
		t.Fatalf("expected 1 busy outcome, got %v", got)
	}
}

func TestLiveContextsGauge(t *testing.T) {
	before := testutil.ToFloat64(contextsLive)
	c := loadTestContext(t, &fakeEngine{}, Options{})
	if got := testutil.ToFloat64(contextsLive) - before; got != 1 {
		t.Fatalf("expected gauge +1, got %v", got)
	}
	if err := c.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if got := testutil.ToFloat64(contextsLive) - before; got != 0 {
		t.Fatalf("expected gauge back to baseline, got %v", got)
	}
}
