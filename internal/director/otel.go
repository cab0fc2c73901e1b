package director

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/ivlev/autocamera/internal/director"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type metrics struct {
	keysWritten    metric.Int64Counter
	keysReplaced   metric.Int64Counter
	channelMissing metric.Int64Counter
	camerasAdded   metric.Int64Counter
}

func newMetrics(m metric.Meter) (*metrics, error) {
	var (
		out metrics
		err error
	)

	out.keysWritten, err = m.Int64Counter(
		"director.keys.written",
		metric.WithDescription("Channel keys inserted"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating keys written counter: %w", err)
	}

	out.keysReplaced, err = m.Int64Counter(
		"director.keys.replaced",
		metric.WithDescription("Existing channel keys deleted before insert"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating keys replaced counter: %w", err)
	}

	out.channelMissing, err = m.Int64Counter(
		"director.channels.missing",
		metric.WithDescription("Section channels that could not be keyed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating channel missing counter: %w", err)
	}

	out.camerasAdded, err = m.Int64Counter(
		"director.cameras.added",
		metric.WithDescription("Cameras added to a sequence"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cameras added counter: %w", err)
	}

	return &out, nil
}

func noopMetrics() *metrics {
	m, _ := newMetrics(noop.NewMeterProvider().Meter(instrumentationName))
	return m
}

func (m *metrics) recordKeys(policy fmt.Stringer, written, replaced int) {
	attrs := metric.WithAttributes(attribute.String("interpolation", policy.String()))
	m.keysWritten.Add(context.Background(), int64(written), attrs)
	if replaced > 0 {
		m.keysReplaced.Add(context.Background(), int64(replaced), attrs)
	}
}
