// Package output renders tally reports as text.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/inodb/svstats/internal/stats"
)

// UndefinedRatio is printed where a HET/HOM quotient has no value.
const UndefinedRatio = "."

// TextWriter renders a report as tab-delimited sections.
type TextWriter struct {
	w *bufio.Writer
}

// NewTextWriter creates a writer rendering to w.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// Write renders the full report and flushes.
func (tw *TextWriter) Write(rep *stats.Report) error {
	svNames := stats.SVTypeNames()
	gtNames := stats.GenotypeNames()
	szNames := stats.SizeBinNames()

	tw.section("# SV counts")
	for i, name := range svNames {
		fmt.Fprintf(tw.w, "%s\t%d\n", name, rep.SVTotals[i])
	}

	tw.section("# SVxSZ counts")
	tw.axisHeader(svNames)
	for size, name := range szNames {
		tw.w.WriteString(name)
		for sv := range svNames {
			fmt.Fprintf(tw.w, "\t%d", rep.SVBySize[size][sv])
		}
		tw.w.WriteByte('\n')
	}

	tw.section("# GT counts")
	for i, name := range gtNames {
		fmt.Fprintf(tw.w, "%s\t%d\n", name, rep.GTTotals[i])
	}

	tw.section("# SVxGT counts")
	tw.axisHeader(svNames)
	for gt, name := range gtNames {
		tw.w.WriteString(name)
		for sv := range svNames {
			fmt.Fprintf(tw.w, "\t%d", rep.SVByGT[gt][sv])
		}
		tw.w.WriteByte('\n')
	}

	tw.section("# Het/Hom ratio")
	tw.w.WriteString(formatRatio(rep.HetHom, "%f"))
	tw.w.WriteByte('\n')

	tw.section("# SVxSZ Het/Hom ratios")
	tw.axisHeader(svNames)
	for size, name := range szNames {
		tw.w.WriteString(name)
		for sv := range svNames {
			tw.w.WriteByte('\t')
			tw.w.WriteString(formatRatio(rep.SVSizeHetHom[size][sv], "%.2f"))
		}
		tw.w.WriteByte('\n')
	}

	tw.section("# QUAL distribution")
	for i, name := range rep.QualNames {
		fmt.Fprintf(tw.w, "%s\t%d\n", name, rep.QualDist[i])
	}

	return tw.w.Flush()
}

func (tw *TextWriter) section(header string) {
	tw.w.WriteString(header)
	tw.w.WriteByte('\n')
}

func (tw *TextWriter) axisHeader(names []string) {
	tw.w.WriteByte('\t')
	tw.w.WriteString(strings.Join(names, "\t"))
	tw.w.WriteByte('\n')
}

func formatRatio(r stats.Ratio, format string) string {
	v, ok := r.Value()
	if !ok {
		return UndefinedRatio
	}
	return fmt.Sprintf(format, v)
}
