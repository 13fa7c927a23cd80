package metrics //nolint:testpackage

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { Init(reg) })

	assert.Panics(t, func() { Init(reg) }, "registering twice must fail")
}

func TestCounters(t *testing.T) {
	t.Parallel()

	before := testutil.ToFloat64(opsExecutedTotal.WithLabelValues("cons"))
	AddOpExecuted("cons")
	AddOpExecuted("cons")
	assert.InDelta(t, before+2, testutil.ToFloat64(opsExecutedTotal.WithLabelValues("cons")), 0)

	before = testutil.ToFloat64(scriptsEvaluatedTotal)
	AddScriptsEvaluated(3)
	assert.InDelta(t, before+3, testutil.ToFloat64(scriptsEvaluatedTotal), 0)

	SetStoredLists(4)
	assert.InDelta(t, 4, testutil.ToFloat64(storedLists), 0)

	const want = `
# HELP functils_last_list_length Length of the list produced by the last evaluated script.
# TYPE functils_last_list_length gauge
functils_last_list_length 8
`
	SetLastListLength(8)
	require.NoError(t, testutil.CollectAndCompare(lastListLength, strings.NewReader(want)))
}
