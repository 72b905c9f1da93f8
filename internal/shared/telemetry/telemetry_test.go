package telemetry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func TestNoop(t *testing.T) {
	if err := Noop(context.Background()); err != nil {
		t.Errorf("Noop() = %v, want nil", err)
	}
}

func TestNewMetricsServer(t *testing.T) {
	srv := newMetricsServer("9464")

	if srv.Addr != ":9464" {
		t.Errorf("Addr = %q, want %q", srv.Addr, ":9464")
	}

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("GET /metrics status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestNewSampler(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{1, "ParentBased{root:AlwaysOnSampler"},
		{0.5, "ParentBased{root:TraceIDRatioBased{0.5}"},
		{0, "ParentBased{root:TraceIDRatioBased{0}"},
	}
	for _, tt := range tests {
		if got := newSampler(tt.ratio).Description(); !strings.HasPrefix(got, tt.want) {
			t.Errorf("newSampler(%v).Description() = %q, want prefix %q", tt.ratio, got, tt.want)
		}
	}
}

func TestShutdownChain_ReverseOrderAndJoinedErrors(t *testing.T) {
	var order []int
	var chain shutdownChain
	chain.add(func(context.Context) error { order = append(order, 1); return nil })
	chain.add(func(context.Context) error { order = append(order, 2); return errors.New("exporter down") })
	chain.add(func(context.Context) error { order = append(order, 3); return nil })

	err := chain.run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "exporter down") {
		t.Errorf("run() error = %v, want it to mention the failing step", err)
	}
	if len(order) != 3 || order[0] != 3 || order[2] != 1 {
		t.Errorf("shutdown order = %v, want [3 2 1]", order)
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource(context.Background(), Config{ServiceName: "ledgerly", Environment: "test"})
	if err != nil {
		t.Fatalf("newResource() error = %v", err)
	}

	got, ok := res.Set().Value(semconv.ServiceNameKey)
	if !ok || got.AsString() != "ledgerly" {
		t.Errorf("service.name = %q, want %q", got.AsString(), "ledgerly")
	}
	if _, ok := res.Set().Value(semconv.TelemetrySDKNameKey); !ok {
		t.Error("telemetry.sdk.name missing from resource")
	}
}

func TestNewResource_EnvAttributesKept(t *testing.T) {
	t.Setenv("OTEL_RESOURCE_ATTRIBUTES", "team=finance")

	res, err := newResource(context.Background(), Config{ServiceName: "ledgerly"})
	if err != nil {
		t.Fatalf("newResource() error = %v", err)
	}
	if got, ok := res.Set().Value("team"); !ok || got.AsString() != "finance" {
		t.Errorf("team = %q, want %q", got.AsString(), "finance")
	}
}
