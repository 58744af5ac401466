package metrics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBuckets(t *testing.T) {
	for code := 100; code < 400; code++ {
		assert.Equal(t, TypeInfo, Classify(code), "code %d", code)
	}
	for code := 400; code < 500; code++ {
		assert.Equal(t, TypeWarning, Classify(code), "code %d", code)
	}
	for code := 500; code < 600; code++ {
		assert.Equal(t, TypeError, Classify(code), "code %d", code)
	}
}

func TestReporterCounters(t *testing.T) {
	Register()
	r := NewErrorReporter()

	r.Report("orders.create", 500, "db down")
	r.Report("orders.create", 404, "not found")
	r.Report("products.get", 404, "not found")

	snap := r.Metrics()
	assert.Equal(t, int64(3), snap.Total)
	assert.Equal(t, int64(1), snap.ByType[TypeError])
	assert.Equal(t, int64(2), snap.ByType[TypeWarning])
	assert.Equal(t, int64(2), snap.ByStatus["404"])
	assert.Equal(t, int64(2), snap.ByContext["orders.create"])
	assert.Len(t, snap.Recent, 3)
}

func TestReporterRingBufferCap(t *testing.T) {
	Register()
	r := NewErrorReporter()

	for i := 0; i < 55; i++ {
		r.Report("ctx", 500, fmt.Sprintf("event %d", i))
	}

	snap := r.Metrics()
	assert.Equal(t, int64(55), snap.Total)
	assert.Len(t, snap.Recent, 50)
	// oldest entries fell out, newest kept
	assert.Equal(t, "event 5", snap.Recent[0].Message)
	assert.Equal(t, "event 54", snap.Recent[49].Message)
}

func TestReporterReset(t *testing.T) {
	Register()
	r := NewErrorReporter()
	r.Report("ctx", 500, "boom")
	r.Reset()

	snap := r.Metrics()
	assert.Equal(t, int64(0), snap.Total)
	assert.Empty(t, snap.Recent)
	assert.Empty(t, snap.ByType)
}
