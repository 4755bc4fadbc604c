package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/svstats/internal/stats"
)

func buildReport(t *testing.T, recs []*stats.Record) *stats.Report {
	t.Helper()
	agg := stats.NewAggregator(stats.DefaultQualScale())
	for _, r := range recs {
		agg.Add(r)
	}
	return stats.BuildReport(agg.Tensor(), agg.Scale())
}

func TestTextWriter_SectionOrder(t *testing.T) {
	rep := buildReport(t, []*stats.Record{
		{Type: "DEL", Length: -30, Call: []stats.Allele{0, 1}, Qual: 15},
	})

	var buf bytes.Buffer
	require.NoError(t, NewTextWriter(&buf).Write(rep))
	out := buf.String()

	sections := []string{
		"# SV counts",
		"# SVxSZ counts",
		"# GT counts",
		"# SVxGT counts",
		"# Het/Hom ratio",
		"# SVxSZ Het/Hom ratios",
		"# QUAL distribution",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		require.NotEqual(t, -1, idx, "missing section %q", s)
		assert.Greater(t, idx, last, "section %q out of order", s)
		last = idx
	}
}

func TestTextWriter_Counts(t *testing.T) {
	rep := buildReport(t, []*stats.Record{
		{Type: "DEL", Length: -30, Call: []stats.Allele{0, 1}, Qual: 15},
		{Type: "INS", Length: 120, Call: []stats.Allele{0, 0}, Qual: 95},
	})

	var buf bytes.Buffer
	require.NoError(t, NewTextWriter(&buf).Write(rep))
	out := buf.String()

	assert.Contains(t, out, "DEL\t1\n")
	assert.Contains(t, out, "INS\t1\n")
	assert.Contains(t, out, "DUP\t0\n")
	assert.Contains(t, out, "REF\t1\n")
	assert.Contains(t, out, "HET\t1\n")
	assert.Contains(t, out, "\tDEL\tINS\tDUP\tINV\tNON\tUNK\n")
	assert.Contains(t, out, "[10,20)\t1\n")
	assert.Contains(t, out, ">=100\t0\n")
}

func TestTextWriter_UndefinedRatioMarker(t *testing.T) {
	// One het, no hom: every ratio is undefined but the report still
	// renders every section.
	rep := buildReport(t, []*stats.Record{
		{Type: "DEL", Length: -30, Call: []stats.Allele{0, 1}, Qual: 15},
	})

	var buf bytes.Buffer
	require.NoError(t, NewTextWriter(&buf).Write(rep))
	out := buf.String()

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if line == "# Het/Hom ratio" {
			assert.Equal(t, UndefinedRatio, lines[i+1])
		}
	}
	assert.Contains(t, out, "# QUAL distribution")
	assert.Contains(t, out, "[0,50)\t.\t.\t.\t.\t.\t.\n")
}

func TestTextWriter_DefinedRatios(t *testing.T) {
	rep := buildReport(t, []*stats.Record{
		{Type: "DEL", Length: 40, Call: []stats.Allele{0, 1}, Qual: 30},
		{Type: "DEL", Length: 45, Call: []stats.Allele{0, 1}, Qual: 30},
		{Type: "DEL", Length: 48, Call: []stats.Allele{1, 1}, Qual: 30},
	})

	var buf bytes.Buffer
	require.NoError(t, NewTextWriter(&buf).Write(rep))
	out := buf.String()

	assert.Contains(t, out, "2.000000\n", "overall het/hom")
	assert.Contains(t, out, "[0,50)\t2.00\t.\t.\t.\t.\t.\n", "per-cell het/hom")
}
