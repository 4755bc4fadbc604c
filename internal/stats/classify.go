// Package stats implements the SV tally engine: classification of
// variant records into categorical bins, the four-dimensional count
// tensor, and the summary report built from it.
package stats

import (
	"fmt"
	"math"
)

// SVType is the structural variant type axis.
type SVType int

const (
	SVDel SVType = iota
	SVIns
	SVDup
	SVInv
	SVNon // not a structural variant
	SVUnk // unrecognized SVTYPE

	NumSVTypes = 6
)

var svTypeNames = [NumSVTypes]string{"DEL", "INS", "DUP", "INV", "NON", "UNK"}

func (s SVType) String() string {
	if s < 0 || int(s) >= NumSVTypes {
		return "UNK"
	}
	return svTypeNames[s]
}

var svTypeByLabel = map[string]SVType{
	"DEL": SVDel,
	"INS": SVIns,
	"DUP": SVDup,
	"INV": SVInv,
	"NON": SVNon,
	"UNK": SVUnk,
}

// SVTypeFromLabel maps a type label to its SVType. Labels outside the
// closed set fall back to SVUnk; this never fails.
func SVTypeFromLabel(label string) SVType {
	if t, ok := svTypeByLabel[label]; ok {
		return t
	}
	return SVUnk
}

// Size bins over absolute variant length. A length belongs to the first
// bin whose max is >= the length, scanning in ascending order, so a
// length of exactly 50 lands in "[0,50)" and 5001 in ">=5k".
var (
	sizeBinNames = []string{
		"[0,50)", "[50,100)", "[100,200)", "[200,300)", "[300,400)",
		"[400,600)", "[600,800)", "[800,1k)", "[1k,2.5k)",
		"[2.5k,5k)", ">=5k",
	}
	sizeBinMax = []int64{
		50, 100, 200, 300, 400, 600, 800, 1000, 2500, 5000,
		math.MaxInt64,
	}
)

// NumSizeBins is the number of size buckets.
const NumSizeBins = 11

// SizeBin returns the size bucket index for a signed length. The sign
// is discarded, so SizeBin(-120) == SizeBin(120).
func SizeBin(length int64) int {
	if length == math.MinInt64 {
		// abs would overflow; it belongs in the open-ended bin anyway.
		return NumSizeBins - 1
	}
	if length < 0 {
		length = -length
	}
	for i, max := range sizeBinMax {
		if length <= max {
			return i
		}
	}
	return NumSizeBins - 1
}

// SizeBinName returns the display name of a size bucket.
func SizeBinName(i int) string {
	return sizeBinNames[i]
}

// Genotype is the genotype class axis.
type Genotype int

const (
	GTRef Genotype = iota
	GTHet
	GTHom
	GTNon // call contains a missing allele
	GTUnk // call arity is not 2

	NumGenotypes = 5
)

var genotypeNames = [NumGenotypes]string{"REF", "HET", "HOM", "NON", "UNK"}

func (g Genotype) String() string {
	if g < 0 || int(g) >= NumGenotypes {
		return "UNK"
	}
	return genotypeNames[g]
}

// Allele is a single allele index in a genotype call.
type Allele int

// MissingAllele marks an uncalled allele ("." in a VCF genotype).
const MissingAllele Allele = -1

// GenotypeFromCall classifies a genotype call. The checks are ordered:
// any missing allele wins over the arity check, so a call like
// (., 0, 0) is GTNon rather than GTUnk.
func GenotypeFromCall(call []Allele) Genotype {
	for _, a := range call {
		if a == MissingAllele {
			return GTNon
		}
	}
	if len(call) != 2 {
		return GTUnk
	}
	switch {
	case call[0] == 0 && call[1] == 0:
		return GTRef
	case call[0] != call[1]:
		return GTHet
	default:
		return GTHom
	}
}

// QualScale maps a continuous quality score onto equal-width buckets.
// Scores are linearly rescaled from [RMin,RMax) to [TMin,TMax) and
// binned by Step; scores at or beyond TMax go to the overflow bucket.
type QualScale struct {
	RMin, RMax float64
	TMin, TMax float64
	Step       float64
}

// DefaultQualScale is the identity 0-100 scale in steps of 10.
func DefaultQualScale() QualScale {
	return QualScale{RMin: 0, RMax: 100, TMin: 0, TMax: 100, Step: 10}
}

// BucketCount returns the number of finite buckets. The overflow bucket
// has index BucketCount().
func (s QualScale) BucketCount() int {
	return int((s.TMax - s.TMin) / s.Step)
}

// Bin returns the bucket index for a score. Bucket edges are half-open:
// a score landing exactly on an interior boundary belongs to the higher
// bucket. Scores below the scale minimum land in bucket 0.
func (s QualScale) Bin(x float64) int {
	scaled := (x-s.RMin)/(s.RMax-s.RMin)*(s.TMax-s.TMin) + s.TMin
	n := s.BucketCount()
	for pos := 0; pos < n; pos++ {
		upper := s.TMin + float64(pos+1)*s.Step
		if scaled < upper {
			return pos
		}
	}
	return n
}

// BucketNames returns the display names of all buckets, overflow last.
func (s QualScale) BucketNames() []string {
	n := s.BucketCount()
	names := make([]string, 0, n+1)
	for pos := 0; pos < n; pos++ {
		lo := s.TMin + float64(pos)*s.Step
		names = append(names, fmt.Sprintf("[%d,%d)", int(lo), int(lo+s.Step)))
	}
	names = append(names, fmt.Sprintf(">=%d", int(s.TMax)))
	return names
}
