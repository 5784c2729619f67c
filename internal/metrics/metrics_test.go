package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	kind   string
	name   string
	value  float64
	labels Labels
}

type fakeBackend struct {
	calls    []call
	flushErr error
	flushed  int
}

func (f *fakeBackend) IncCounter(name string, delta float64, labels Labels) {
	f.calls = append(f.calls, call{"counter", name, delta, labels})
}
func (f *fakeBackend) ObserveHistogram(name string, value float64, labels Labels) {
	f.calls = append(f.calls, call{"histogram", name, value, labels})
}
func (f *fakeBackend) Flush() error { f.flushed++; return f.flushErr }

func TestRecordStep_SuccessAndFailure(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{}
	r := NewRecorder("tariffnorm", fb)

	r.RecordStep("sort_rows", nil, 1500*time.Millisecond)
	r.RecordStep("parse_dates", errors.New("bad"), time.Second)

	require.Len(t, fb.calls, 4)
	assert.Equal(t, call{"counter", StepTotal, 1, Labels{"job": "tariffnorm", "step": "sort_rows", "status": "success"}}, fb.calls[0])
	assert.Equal(t, "histogram", fb.calls[1].kind)
	assert.InDelta(t, 1.5, fb.calls[1].value, 1e-9)
	assert.Equal(t, "failure", fb.calls[2].labels["status"])
}

func TestRecordRows_IgnoresNonPositive(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{}
	r := NewRecorder("tariffnorm", fb)
	r.RecordRows("read", 0)
	r.RecordRows("read", -3)
	r.RecordRows("written", 12)

	require.Len(t, fb.calls, 1)
	assert.Equal(t, RecordsTotal, fb.calls[0].name)
	assert.Equal(t, 12.0, fb.calls[0].value)
	assert.Equal(t, "written", fb.calls[0].labels["kind"])
}

func TestFlush_Delegates(t *testing.T) {
	t.Parallel()

	boom := errors.New("push failed")
	fb := &fakeBackend{flushErr: boom}
	require.ErrorIs(t, NewRecorder("j", fb).Flush(), boom)
	assert.Equal(t, 1, fb.flushed)
}

// TestNilRecorderIsNoop ensures optional metrics never panic.
func TestNilRecorderIsNoop(t *testing.T) {
	t.Parallel()

	var r *Recorder
	r.RecordStep("x", nil, time.Second)
	r.RecordRows("read", 1)
	assert.NoError(t, r.Flush())

	assert.NoError(t, NewRecorder("j", nil).Flush())
}
