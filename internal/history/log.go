// Package history holds the bounded, newest-first log of past predictions.
package history

import "github.com/Veraticus/credit-risk-console/internal/model"

// MaxEntries is the capacity of the log. Pushing onto a full log drops the
// oldest record.
const MaxEntries = 10

// Log is an ordered sequence of prediction records, newest first.
// The zero value is an empty log ready for use.
type Log struct {
	records []model.PredictionRecord
}

// New builds a log from records already ordered newest first, keeping at most
// MaxEntries of them.
func New(records []model.PredictionRecord) Log {
	n := min(len(records), MaxEntries)
	out := make([]model.PredictionRecord, n)
	copy(out, records[:n])
	return Log{records: out}
}

// Push returns a new log with rec at the front. Eviction follows creation
// order, not access.
func (l Log) Push(rec model.PredictionRecord) Log {
	n := min(len(l.records), MaxEntries-1)
	out := make([]model.PredictionRecord, 0, n+1)
	out = append(out, rec)
	out = append(out, l.records[:n]...)
	return Log{records: out}
}

// Len returns the number of records.
func (l Log) Len() int {
	return len(l.records)
}

// Records returns a copy of the records, newest first.
func (l Log) Records() []model.PredictionRecord {
	out := make([]model.PredictionRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Latest returns the newest record, if any.
func (l Log) Latest() (model.PredictionRecord, bool) {
	if len(l.records) == 0 {
		return model.PredictionRecord{}, false
	}
	return l.records[0], true
}
