// Package metrics holds the game server's instruments. Gauges and histograms are
// plain prometheus collectors; counters go through the OpenTelemetry meter so they
// are exported by the otel prometheus exporter next to them.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

const (
	namespace = "typeracer"
	meterName = "typeracer"
)

// Metrics groups the instruments used by the connection, session and handler layers.
type Metrics struct {
	connectedClients prometheus.Gauge
	activeSessions   prometheus.Gauge
	messageDuration  *prometheus.HistogramVec

	messagesHandled metric.Int64Counter
	racesFinished   metric.Int64Counter
	charactersTyped metric.Int64Counter
}

// NewMeterProvider creates an otel meter provider whose readings are exported
// through reg.
func NewMeterProvider(reg prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}

// New registers the prometheus collectors on reg and creates the otel counters
// on mp.
func New(reg prometheus.Registerer, mp metric.MeterProvider) (*Metrics, error) {
	m := &Metrics{
		connectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected_clients",
			Help:      "Number of clients currently connected to the game server.",
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of open sessions.",
		}),
		messageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "message_handling_seconds",
			Help:      "Time spent handling a client message.",
			Buckets:   DefaultBuckets,
		}, []string{"type"}),
	}

	for _, c := range []prometheus.Collector{m.connectedClients, m.activeSessions, m.messageDuration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("could not register collector: %w", err)
		}
	}

	meter := mp.Meter(meterName)

	var err error
	if m.messagesHandled, err = meter.Int64Counter("typeracer.messages.handled",
		metric.WithDescription("Client messages handled, by type.")); err != nil {
		return nil, fmt.Errorf("could not create messages counter: %w", err)
	}
	if m.racesFinished, err = meter.Int64Counter("typeracer.races.finished",
		metric.WithDescription("Races that ran to completion or timed out.")); err != nil {
		return nil, fmt.Errorf("could not create races counter: %w", err)
	}
	if m.charactersTyped, err = meter.Int64Counter("typeracer.characters.typed",
		metric.WithDescription("Characters typed during races.")); err != nil {
		return nil, fmt.Errorf("could not create characters counter: %w", err)
	}

	return m, nil
}

// NewNop returns Metrics backed by a private registry and a no-op meter.
func NewNop() *Metrics {
	m, err := New(prometheus.NewRegistry(), noop.NewMeterProvider())
	if err != nil {
		panic(err)
	}

	return m
}

// ClientConnected increments the connected clients gauge.
func (m *Metrics) ClientConnected() { m.connectedClients.Inc() }

// ClientDisconnected decrements the connected clients gauge.
func (m *Metrics) ClientDisconnected() { m.connectedClients.Dec() }

// SessionOpened increments the active sessions gauge.
func (m *Metrics) SessionOpened() { m.activeSessions.Inc() }

// SessionClosed decrements the active sessions gauge.
func (m *Metrics) SessionClosed() { m.activeSessions.Dec() }

// MessageHandled records that a message of the given type was handled in d.
func (m *Metrics) MessageHandled(ctx context.Context, messageType string, d time.Duration) {
	m.messageDuration.WithLabelValues(messageType).Observe(d.Seconds())
	m.messagesHandled.Add(ctx, 1, metric.WithAttributes(attribute.String("type", messageType)))
}

// RaceFinished records a finished race with the given number of players.
func (m *Metrics) RaceFinished(ctx context.Context, players int) {
	m.racesFinished.Add(ctx, 1, metric.WithAttributes(attribute.Int("players", players)))
}

// CharacterTyped records one keystroke.
func (m *Metrics) CharacterTyped(ctx context.Context, correct bool) {
	m.charactersTyped.Add(ctx, 1, metric.WithAttributes(attribute.Bool("correct", correct)))
}
