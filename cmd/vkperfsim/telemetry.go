package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/omeyang/vkperf/pkg/observability/xmetrics"
)

const instrumentationName = "github.com/omeyang/vkperf/cmd/vkperfsim"

// telemetry 进程内的 OpenTelemetry 管道，结束时从 ManualReader 读出调用计数。
type telemetry struct {
	tp       *sdktrace.TracerProvider
	mp       *sdkmetric.MeterProvider
	reader   *sdkmetric.ManualReader
	observer xmetrics.Observer
}

func newTelemetry() (*telemetry, error) {
	reader := sdkmetric.NewManualReader()
	t := &telemetry{
		tp:     sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample())),
		mp:     sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
		reader: reader,
	}
	obs, err := xmetrics.NewOTelObserver(
		xmetrics.WithTracerProvider(t.tp),
		xmetrics.WithMeterProvider(t.mp),
		xmetrics.WithInstrumentationName(instrumentationName),
	)
	if err != nil {
		return nil, errors.Join(err, t.shutdown(context.Background()))
	}
	t.observer = obs
	return t, nil
}

// callCount 一个 operation/status 组合的调用次数
type callCount struct {
	Operation string
	Status    string
	Count     int64
}

// counts 读取当前的调用计数，按 operation、status 排序。
func (t *telemetry) counts(ctx context.Context) ([]callCount, error) {
	var rm metricdata.ResourceMetrics
	if err := t.reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("collect metrics: %w", err)
	}

	merged := map[[2]string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != xmetrics.MetricCallTotal {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				op, _ := dp.Attributes.Value("operation")
				st, _ := dp.Attributes.Value("status")
				merged[[2]string{op.AsString(), st.AsString()}] += dp.Value
			}
		}
	}

	out := make([]callCount, 0, len(merged))
	for k, v := range merged {
		out = append(out, callCount{Operation: k[0], Status: k[1], Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Operation != out[j].Operation {
			return out[i].Operation < out[j].Operation
		}
		return out[i].Status < out[j].Status
	})
	return out, nil
}

func (t *telemetry) report(ctx context.Context, w io.Writer) error {
	counts, err := t.counts(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "calls:")
	for _, c := range counts {
		fmt.Fprintf(w, "  %-28s %-6s %d\n", c.Operation, c.Status, c.Count)
	}
	return nil
}

func (t *telemetry) shutdown(ctx context.Context) error {
	return errors.Join(t.tp.Shutdown(ctx), t.mp.Shutdown(ctx))
}
