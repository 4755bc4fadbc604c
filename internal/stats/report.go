package stats

// Ratio is a HET/HOM count pair. The quotient is undefined when the
// homozygous count is zero (including the 0/0 case); callers check the
// ok result of Value rather than dividing themselves.
type Ratio struct {
	Het uint64
	Hom uint64
}

// Value returns the ratio and whether it is defined.
func (r Ratio) Value() (float64, bool) {
	if r.Hom == 0 {
		return 0, false
	}
	return float64(r.Het) / float64(r.Hom), true
}

// Report is the structured summary built from a finished tensor. Field
// order mirrors the order the views are rendered in. All counts are
// totals in enumeration order; cross tabs are indexed [row][column].
type Report struct {
	Total uint64

	SVTotals []uint64   // by SVType
	SVBySize [][]uint64 // [size bucket][SVType]
	GTTotals []uint64   // by Genotype
	SVByGT   [][]uint64 // [Genotype][SVType]

	HetHom       Ratio     // overall, marginal over everything else
	SVSizeHetHom [][]Ratio // [size bucket][SVType]

	QualDist  []uint64 // per quality bucket, overflow last
	QualNames []string
}

// BuildReport computes all summary views from a finished tensor. The
// tensor is only read; aggregation must be complete before calling.
func BuildReport(t *Tensor, scale QualScale) *Report {
	rep := &Report{
		Total:     t.Sum(),
		SVTotals:  t.Marginal(AxisSV),
		SVBySize:  t.MarginalPair(AxisSize, AxisSV),
		GTTotals:  t.Marginal(AxisGT),
		SVByGT:    t.MarginalPair(AxisGT, AxisSV),
		QualDist:  t.Marginal(AxisQual),
		QualNames: scale.BucketNames(),
	}

	rep.HetHom = Ratio{
		Het: rep.GTTotals[GTHet],
		Hom: rep.GTTotals[GTHom],
	}

	// One HET/HOM pair per SV x size cell, qual collapsed.
	byGT := t.Marginal(AxisSize, AxisSV, AxisGT)
	rep.SVSizeHetHom = make([][]Ratio, NumSizeBins)
	for size := 0; size < NumSizeBins; size++ {
		row := make([]Ratio, NumSVTypes)
		for sv := 0; sv < NumSVTypes; sv++ {
			base := (size*NumSVTypes + sv) * NumGenotypes
			row[sv] = Ratio{
				Het: byGT[base+int(GTHet)],
				Hom: byGT[base+int(GTHom)],
			}
		}
		rep.SVSizeHetHom[size] = row
	}

	return rep
}

// SVTypeNames returns the SV axis labels in report order.
func SVTypeNames() []string {
	return svTypeNames[:]
}

// GenotypeNames returns the genotype axis labels in report order.
func GenotypeNames() []string {
	return genotypeNames[:]
}

// SizeBinNames returns the size axis labels in report order.
func SizeBinNames() []string {
	return sizeBinNames
}
