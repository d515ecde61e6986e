package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordToolCall(t *testing.T) {
	before := testutil.ToFloat64(ToolCallsTotal.WithLabelValues("metrics_test_tool", StatusError))

	RecordToolCall("metrics_test_tool", true, 0.2)
	RecordToolCall("metrics_test_tool", false, 0.1)

	assert.Equal(t, before+1, testutil.ToFloat64(ToolCallsTotal.WithLabelValues("metrics_test_tool", StatusError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(ToolCallsTotal.WithLabelValues("metrics_test_tool", StatusSuccess)))
}
