package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/fixedsecret/pkg/secret"
)

func withStats(t *testing.T, snap secret.Snapshot) {
	t.Helper()
	original := statsFunc
	statsFunc = func() secret.Snapshot { return snap }
	t.Cleanup(func() { statsFunc = original })
}

func TestRegister_ExposesCounters(t *testing.T) {
	withStats(t, secret.Snapshot{Created: 10, Destroyed: 6, Moved: 2, Reclaimed: 1})

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, Register(reg))

	expected := `
# HELP fixedsecret_containers_live Number of secret containers currently holding key material
# TYPE fixedsecret_containers_live gauge
fixedsecret_containers_live 1
# HELP fixedsecret_containers_reclaimed_total Total number of secret containers zeroed by the garbage collector because Destroy was never called
# TYPE fixedsecret_containers_reclaimed_total counter
fixedsecret_containers_reclaimed_total 1
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"fixedsecret_containers_live", "fixedsecret_containers_reclaimed_total")
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestRegister_Twice(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))

	err := Register(reg)
	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}

func TestGather_TracksRealContainers(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))

	liveBefore := gauge(t, reg, "fixedsecret_containers_live")

	var key [32]byte
	s := secret.New(&key)
	assert.Equal(t, liveBefore+1, gauge(t, reg, "fixedsecret_containers_live"))

	s.Destroy()
	assert.Equal(t, liveBefore, gauge(t, reg, "fixedsecret_containers_live"))
}

func gauge(t *testing.T, g prometheus.Gatherer, name string) float64 {
	t.Helper()
	samples, err := Gather(g)
	require.NoError(t, err)
	for _, s := range samples {
		if s.Name == name {
			return s.Value
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return 0
}
