package metrics_test

import (
	"context"
	"strings"
	"testing"
	"time"
	"typeracer/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_GaugesAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	mp, err := metrics.NewMeterProvider(reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := metrics.New(reg, mp)
	require.NoError(t, err)

	m.ClientConnected()
	m.ClientConnected()
	m.ClientDisconnected()
	m.SessionOpened()
	m.MessageHandled(context.Background(), "ReadyRequest", 3*time.Millisecond)

	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP typeracer_connected_clients Number of clients currently connected to the game server.
# TYPE typeracer_connected_clients gauge
typeracer_connected_clients 1
# HELP typeracer_active_sessions Number of open sessions.
# TYPE typeracer_active_sessions gauge
typeracer_active_sessions 1
`), "typeracer_connected_clients", "typeracer_active_sessions"))

	count, err := testutil.GatherAndCount(reg, "typeracer_message_handling_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestMetrics_OtelCountersExported(t *testing.T) {
	reg := prometheus.NewRegistry()
	mp, err := metrics.NewMeterProvider(reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := metrics.New(reg, mp)
	require.NoError(t, err)

	ctx := context.Background()
	m.RaceFinished(ctx, 3)
	m.CharacterTyped(ctx, true)
	m.CharacterTyped(ctx, false)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names["typeracer_races_finished_total"])
	require.True(t, names["typeracer_characters_typed_total"])
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	mp, err := metrics.NewMeterProvider(prometheus.NewRegistry())
	require.NoError(t, err)

	_, err = metrics.New(reg, mp)
	require.NoError(t, err)

	_, err = metrics.New(reg, mp)
	require.Error(t, err)
}

func TestNewNop(t *testing.T) {
	m := metrics.NewNop()
	m.ClientConnected()
	m.RaceFinished(context.Background(), 1)
}
