package stats

import (
	"fmt"

	"go.uber.org/zap"
)

// Record is one variant record as seen by the tally engine: the raw
// fields the classifier needs, already extracted from whatever format
// the source reads.
type Record struct {
	Type        string   // SV type label (e.g. "DEL"); anything goes
	Length      int64    // signed variant length
	Call        []Allele // genotype call for the designated sample
	Qual        float64  // quality score
	QualMissing bool     // true when the source had no quality value
}

// RecordSource is a finite ordered sequence of records. Next returns
// nil, nil when the sequence is exhausted; an error means the source
// itself failed, not that a record was malformed.
type RecordSource interface {
	Next() (*Record, error)
}

// Aggregator classifies records and accumulates them into a tensor.
// Every record it sees is counted exactly once; malformed fields are
// absorbed by the classifier's fallback bins, never skipped.
type Aggregator struct {
	tensor *Tensor
	scale  QualScale
	logger *zap.Logger
}

// NewAggregator creates an aggregator with a fresh zeroed tensor.
func NewAggregator(scale QualScale) *Aggregator {
	return &Aggregator{
		tensor: NewTensor(scale.BucketCount() + 1),
		scale:  scale,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for per-record debug output.
func (a *Aggregator) SetLogger(l *zap.Logger) {
	a.logger = l
}

// Tensor returns the accumulated tally. Read-only once aggregation is
// done; the caller must not increment it concurrently with Add.
func (a *Aggregator) Tensor() *Tensor {
	return a.tensor
}

// Scale returns the quality scale the aggregator bins with.
func (a *Aggregator) Scale() QualScale {
	return a.scale
}

// Add classifies one record and increments its cell.
func (a *Aggregator) Add(rec *Record) {
	sv := SVTypeFromLabel(rec.Type)
	size := SizeBin(rec.Length)
	gt := GenotypeFromCall(rec.Call)

	// A missing quality score is pinned to the scale minimum, so such
	// records land in the lowest bucket.
	q := rec.Qual
	if rec.QualMissing {
		q = a.scale.RMin
	}
	qual := a.scale.Bin(q)

	a.tensor.Increment(sv, size, gt, qual)
	a.logger.Debug("classified record",
		zap.Stringer("sv", sv),
		zap.String("size", SizeBinName(size)),
		zap.Stringer("gt", gt),
		zap.Int("qualbin", qual))
}

// Run drains one source into the tensor.
func (a *Aggregator) Run(src RecordSource) error {
	for {
		rec, err := src.Next()
		if err != nil {
			return fmt.Errorf("read record: %w", err)
		}
		if rec == nil {
			return nil
		}
		a.Add(rec)
	}
}

// RunAll drains the sources in order into the same tensor, with no
// reset in between.
func (a *Aggregator) RunAll(srcs ...RecordSource) error {
	for _, src := range srcs {
		if err := a.Run(src); err != nil {
			return err
		}
	}
	return nil
}
