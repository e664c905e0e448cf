package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordLinkMatched_IncrementsCounter(t *testing.T) {
	initial := testutil.ToFloat64(linksMatched.WithLabelValues("short"))

	RecordLinkMatched("short")

	assert.Equal(t, initial+1, testutil.ToFloat64(linksMatched.WithLabelValues("short")))
}

func TestRecordReembed_DefaultsEmptyStage(t *testing.T) {
	initial := testutil.ToFloat64(reembeds.WithLabelValues(ResultSuccess, "none"))

	RecordReembed(ResultSuccess, "")

	assert.Equal(t, initial+1, testutil.ToFloat64(reembeds.WithLabelValues(ResultSuccess, "none")))
}

func TestObserveStage_RecordsSample(t *testing.T) {
	before := testutil.CollectAndCount(stageDuration)

	ObserveStage("metadata_test", time.Now().Add(-time.Second))

	assert.Equal(t, before+1, testutil.CollectAndCount(stageDuration))
}
