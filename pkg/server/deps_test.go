package server_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"

	"github.com/Sumatoshi-tech/itree/pkg/observability"
	"github.com/Sumatoshi-tech/itree/pkg/server"
)

func newInstrumentedDeps(t *testing.T, mp metric.MeterProvider) server.Deps {
	t.Helper()

	meter := mp.Meter("test")

	red, err := observability.NewREDMetrics(meter)
	require.NoError(t, err)

	index, err := observability.NewIndexMetrics(meter)
	require.NoError(t, err)

	return server.Deps{Logger: quietLogger(), RED: red, Index: index}
}
