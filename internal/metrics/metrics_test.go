package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordExtraction(t *testing.T) {
	before := testutil.ToFloat64(extractions.WithLabelValues("pdf", "failure"))
	RecordExtraction("pdf", errors.New("bad xref"))
	assert.Equal(t, before+1, testutil.ToFloat64(extractions.WithLabelValues("pdf", "failure")))

	before = testutil.ToFloat64(extractions.WithLabelValues("txt", "success"))
	RecordExtraction("txt", nil)
	assert.Equal(t, before+1, testutil.ToFloat64(extractions.WithLabelValues("txt", "success")))
}

func TestObserveUpstream_CountsErrors(t *testing.T) {
	before := testutil.ToFloat64(upstreamErrors.WithLabelValues(ModeStream))
	ObserveUpstream(ModeStream, time.Second, nil)
	ObserveUpstream(ModeStream, time.Second, errors.New("eof"))
	assert.Equal(t, before+1, testutil.ToFloat64(upstreamErrors.WithLabelValues(ModeStream)))
}
