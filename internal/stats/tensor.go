package stats

import "fmt"

// Axis identifies one dimension of the tally tensor.
type Axis int

const (
	AxisSV Axis = iota
	AxisSize
	AxisGT
	AxisQual
)

// Tensor is the dense four-dimensional count accumulator, indexed by
// (SV type, size bucket, genotype class, quality bucket). Cells only
// ever grow; the total over all cells equals the number of records
// classified into it.
type Tensor struct {
	dims  [4]int
	cells []uint64
}

// NewTensor creates a zeroed tensor. qualBuckets must include the
// overflow bucket (QualScale.BucketCount()+1).
func NewTensor(qualBuckets int) *Tensor {
	t := &Tensor{dims: [4]int{NumSVTypes, NumSizeBins, NumGenotypes, qualBuckets}}
	t.cells = make([]uint64, NumSVTypes*NumSizeBins*NumGenotypes*qualBuckets)
	return t
}

// Dim returns the size of an axis.
func (t *Tensor) Dim(a Axis) int {
	return t.dims[a]
}

func (t *Tensor) offset(sv SVType, size int, gt Genotype, qual int) int {
	if int(sv) < 0 || int(sv) >= t.dims[0] ||
		size < 0 || size >= t.dims[1] ||
		int(gt) < 0 || int(gt) >= t.dims[2] ||
		qual < 0 || qual >= t.dims[3] {
		panic(fmt.Sprintf("stats: tally index out of range (%d,%d,%d,%d)", sv, size, gt, qual))
	}
	return ((int(sv)*t.dims[1]+size)*t.dims[2]+int(gt))*t.dims[3] + qual
}

// Increment adds one to a cell. Keys come from the classifier, which
// only produces in-range values; an out-of-range key is a bug and
// panics.
func (t *Tensor) Increment(sv SVType, size int, gt Genotype, qual int) {
	t.cells[t.offset(sv, size, gt, qual)]++
}

// Add adds n to a cell. Used when reloading a persisted tensor.
func (t *Tensor) Add(sv SVType, size int, gt Genotype, qual int, n uint64) {
	t.cells[t.offset(sv, size, gt, qual)] += n
}

// Cell returns a single count.
func (t *Tensor) Cell(sv SVType, size int, gt Genotype, qual int) uint64 {
	return t.cells[t.offset(sv, size, gt, qual)]
}

// Sum returns the total over all cells.
func (t *Tensor) Sum() uint64 {
	var total uint64
	for _, c := range t.cells {
		total += c
	}
	return total
}

// Marginal collapses the tensor over every axis not in keep and returns
// the resulting counts flattened in row-major order of the kept axes,
// each in its enumeration order. Marginal() with no axes returns the
// one-element full sum.
func (t *Tensor) Marginal(keep ...Axis) []uint64 {
	size := 1
	for _, a := range keep {
		size *= t.dims[a]
	}
	out := make([]uint64, size)

	strides := [4]int{
		t.dims[1] * t.dims[2] * t.dims[3],
		t.dims[2] * t.dims[3],
		t.dims[3],
		1,
	}

	for i, c := range t.cells {
		if c == 0 {
			continue
		}
		pos := 0
		for _, a := range keep {
			pos = pos*t.dims[a] + (i/strides[a])%t.dims[a]
		}
		out[pos] += c
	}
	return out
}

// MarginalPair returns a two-axis cross tab with rows indexed by a and
// columns by b.
func (t *Tensor) MarginalPair(a, b Axis) [][]uint64 {
	flat := t.Marginal(a, b)
	rows := make([][]uint64, t.dims[a])
	for i := range rows {
		rows[i] = flat[i*t.dims[b] : (i+1)*t.dims[b]]
	}
	return rows
}

// Merge adds every cell of other into t. Merge order never matters, so
// independently aggregated tensors can be combined in any sequence.
func (t *Tensor) Merge(other *Tensor) error {
	if t.dims != other.dims {
		return fmt.Errorf("stats: merge dimension mismatch %v vs %v", t.dims, other.dims)
	}
	for i, c := range other.cells {
		t.cells[i] += c
	}
	return nil
}
