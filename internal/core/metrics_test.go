package core

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorderCountsOutcomes(t *testing.T) {
	rec := NewPrometheusRecorder()
	ctx := context.Background()
	rec.Observe(ctx, "dish.create", true, 5*time.Millisecond)
	rec.Observe(ctx, "dish.create", false, time.Millisecond)
	rec.Observe(ctx, "", true, time.Second)
	if got := testutil.ToFloat64(rec.operations.WithLabelValues("dish.create", "success")); got != 1 {
		t.Fatalf("expected one success, got %v", got)
	}
	if got := testutil.ToFloat64(rec.operations.WithLabelValues("dish.create", "error")); got != 1 {
		t.Fatalf("expected one error, got %v", got)
	}
	if n := testutil.CollectAndCount(rec.durations); n != 1 {
		t.Fatalf("expected one histogram series, got %d", n)
	}
}

func TestServiceRecordsMetrics(t *testing.T) {
	rec := NewPrometheusRecorder()
	svc := newTestService(t, WithMetrics(rec))
	ctx := context.Background()
	must(svc.CreatePerson(ctx, PersonInput{Name: "Ada", Email: "ada@example.com"}))
	if _, err := svc.GetPerson(ctx, 99); err == nil {
		t.Fatalf("expected not found")
	}
	if got := testutil.ToFloat64(rec.operations.WithLabelValues("person.create", "success")); got != 1 {
		t.Fatalf("expected create success, got %v", got)
	}
	if got := testutil.ToFloat64(rec.operations.WithLabelValues("person.get", "error")); got != 1 {
		t.Fatalf("expected get error, got %v", got)
	}
	families, err := rec.Registry().Gather()
	if err != nil || len(families) != 2 {
		t.Fatalf("expected two metric families, got %d err=%v", len(families), err)
	}
}
