package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatio_Value(t *testing.T) {
	tests := []struct {
		name   string
		ratio  Ratio
		want   float64
		wantOK bool
	}{
		{"defined", Ratio{Het: 3, Hom: 2}, 1.5, true},
		{"zero het", Ratio{Het: 0, Hom: 4}, 0, true},
		{"zero hom", Ratio{Het: 5, Hom: 0}, 0, false},
		{"zero over zero", Ratio{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := tt.ratio.Value()
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.InDelta(t, tt.want, v, 1e-9)
			}
		})
	}
}

func scenarioReport(t *testing.T) *Report {
	t.Helper()
	agg := NewAggregator(DefaultQualScale())
	require.NoError(t, agg.Run(&sliceSource{recs: scenarioRecords()}))
	return BuildReport(agg.Tensor(), agg.Scale())
}

func TestBuildReport_Totals(t *testing.T) {
	rep := scenarioReport(t)

	assert.Equal(t, uint64(3), rep.Total)

	require.Len(t, rep.SVTotals, NumSVTypes)
	assert.Equal(t, uint64(1), rep.SVTotals[SVDel])
	assert.Equal(t, uint64(1), rep.SVTotals[SVIns])
	assert.Equal(t, uint64(0), rep.SVTotals[SVDup])
	assert.Equal(t, uint64(1), rep.SVTotals[SVUnk])

	require.Len(t, rep.GTTotals, NumGenotypes)
	assert.Equal(t, uint64(1), rep.GTTotals[GTRef])
	assert.Equal(t, uint64(1), rep.GTTotals[GTHet])
	assert.Equal(t, uint64(0), rep.GTTotals[GTHom])
	assert.Equal(t, uint64(1), rep.GTTotals[GTNon])
}

func TestBuildReport_CrossTabs(t *testing.T) {
	rep := scenarioReport(t)

	assert.Equal(t, uint64(1), rep.SVBySize[0][SVDel])
	assert.Equal(t, uint64(1), rep.SVBySize[2][SVIns])
	assert.Equal(t, uint64(1), rep.SVBySize[NumSizeBins-1][SVUnk])

	assert.Equal(t, uint64(1), rep.SVByGT[GTHet][SVDel])
	assert.Equal(t, uint64(1), rep.SVByGT[GTRef][SVIns])
	assert.Equal(t, uint64(1), rep.SVByGT[GTNon][SVUnk])
}

func TestBuildReport_RatioGuard(t *testing.T) {
	rep := scenarioReport(t)

	// One het, zero hom: overall ratio is undefined, not a crash, and
	// the rest of the report is still populated.
	_, ok := rep.HetHom.Value()
	assert.False(t, ok)
	assert.NotEmpty(t, rep.QualDist)

	_, ok = rep.SVSizeHetHom[0][SVDel].Value()
	assert.False(t, ok)
}

func TestBuildReport_DefinedRatios(t *testing.T) {
	agg := NewAggregator(DefaultQualScale())
	recs := []*Record{
		{Type: "DEL", Length: 40, Call: []Allele{0, 1}, Qual: 30},
		{Type: "DEL", Length: 45, Call: []Allele{0, 1}, Qual: 30},
		{Type: "DEL", Length: 48, Call: []Allele{1, 1}, Qual: 30},
		{Type: "INS", Length: 700, Call: []Allele{1, 1}, Qual: 30},
	}
	for _, r := range recs {
		agg.Add(r)
	}
	rep := BuildReport(agg.Tensor(), agg.Scale())

	v, ok := rep.HetHom.Value()
	require.True(t, ok)
	assert.InDelta(t, 1.0, v, 1e-9)

	v, ok = rep.SVSizeHetHom[0][SVDel].Value()
	require.True(t, ok)
	assert.InDelta(t, 2.0, v, 1e-9)

	// INS cell has hom but no het: defined, zero.
	v, ok = rep.SVSizeHetHom[6][SVIns].Value()
	require.True(t, ok)
	assert.Zero(t, v)

	// Untouched cell is 0/0: undefined.
	_, ok = rep.SVSizeHetHom[3][SVInv].Value()
	assert.False(t, ok)
}

func TestBuildReport_QualDist(t *testing.T) {
	agg := NewAggregator(DefaultQualScale())
	agg.Add(&Record{Type: "DEL", Length: 10, Call: []Allele{0, 1}, Qual: 5})
	agg.Add(&Record{Type: "DEL", Length: 10, Call: []Allele{0, 1}, Qual: 250})
	rep := BuildReport(agg.Tensor(), agg.Scale())

	require.Len(t, rep.QualDist, 11)
	require.Len(t, rep.QualNames, 11)
	assert.Equal(t, uint64(1), rep.QualDist[0])
	assert.Equal(t, uint64(1), rep.QualDist[10], "overflow bucket is last")
	assert.Equal(t, ">=100", rep.QualNames[10])
}
