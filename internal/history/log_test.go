package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/credit-risk-console/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(i int) model.PredictionRecord {
	return model.PredictionRecord{
		ID:        fmt.Sprintf("rec-%02d", i),
		Status:    model.StatusSuccess,
		Timestamp: time.Date(2025, 1, 1, 0, i, 0, 0, time.UTC),
	}
}

func ids(l Log) []string {
	var out []string
	for _, r := range l.Records() {
		out = append(out, r.ID)
	}
	return out
}

func TestLog_ZeroValue(t *testing.T) {
	var l Log
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Records())

	_, ok := l.Latest()
	assert.False(t, ok)
}

func TestLog_PushNewestFirst(t *testing.T) {
	var l Log
	l = l.Push(record(1))
	l = l.Push(record(2))
	l = l.Push(record(3))

	assert.Equal(t, []string{"rec-03", "rec-02", "rec-01"}, ids(l))

	latest, ok := l.Latest()
	require.True(t, ok)
	assert.Equal(t, "rec-03", latest.ID)
}

func TestLog_NeverExceedsCapacity(t *testing.T) {
	var l Log
	for i := 1; i <= 25; i++ {
		l = l.Push(record(i))
		assert.LessOrEqual(t, l.Len(), MaxEntries)
	}

	want := make([]string, 0, MaxEntries)
	for i := 25; i > 15; i-- {
		want = append(want, fmt.Sprintf("rec-%02d", i))
	}
	assert.Equal(t, want, ids(l))
}

func TestLog_EleventhPushEvictsOldest(t *testing.T) {
	var l Log
	for i := 1; i <= MaxEntries; i++ {
		l = l.Push(record(i))
	}
	require.Equal(t, MaxEntries, l.Len())
	oldest := l.Records()[MaxEntries-1]
	assert.Equal(t, "rec-01", oldest.ID)

	l = l.Push(record(11))

	assert.Equal(t, MaxEntries, l.Len())
	assert.NotContains(t, ids(l), "rec-01")
	assert.Equal(t, "rec-11", ids(l)[0])
}

func TestLog_PushDoesNotMutateOriginal(t *testing.T) {
	var l Log
	l = l.Push(record(1))
	before := l.Records()

	_ = l.Push(record(2))

	assert.Equal(t, before, l.Records())
}

func TestLog_RecordsIsACopy(t *testing.T) {
	l := New([]model.PredictionRecord{record(1)})
	recs := l.Records()
	recs[0].ID = "tampered"

	assert.Equal(t, "rec-01", l.Records()[0].ID)
}

func TestNew_TruncatesToNewest(t *testing.T) {
	var in []model.PredictionRecord
	for i := 20; i > 0; i-- {
		in = append(in, record(i))
	}

	l := New(in)
	assert.Equal(t, MaxEntries, l.Len())
	assert.Equal(t, "rec-20", ids(l)[0])
	assert.Equal(t, "rec-11", ids(l)[MaxEntries-1])
}
