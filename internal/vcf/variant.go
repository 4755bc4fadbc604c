// Package vcf provides VCF file parsing for the tally engine.
package vcf

import (
	"strconv"
	"strings"

	"github.com/inodb/svstats/internal/stats"
)

// Variant represents a single record from a VCF file.
type Variant struct {
	Chrom       string            // Chromosome name (e.g., "12", "chr12")
	Pos         int64             // 1-based genomic position
	ID          string            // Variant identifier
	Ref         string            // Reference allele
	Alt         string            // Alternate allele column, unsplit
	Qual        float64           // Quality score; zero when missing
	QualMissing bool              // True when the QUAL column was "."
	Filter      string            // Filter status (PASS or filter name)
	Info        map[string]string // INFO key-value pairs; flags map to ""
	Format      []string          // FORMAT column keys, nil without samples
	Samples     []string          // raw per-sample columns
}

// SVType returns the record's type label. The INFO SVTYPE key wins; a
// symbolic ALT like <DUP:TANDEM> supplies its leading token; for plain
// alleles the REF/ALT length difference decides DEL vs INS, and equal
// lengths mean the record is not a structural variant ("NON").
func (v *Variant) SVType() string {
	if t, ok := v.Info["SVTYPE"]; ok && t != "" {
		return t
	}
	if sym, ok := symbolicAlt(v.Alt); ok {
		return sym
	}
	switch {
	case len(v.Ref) > len(v.Alt):
		return "DEL"
	case len(v.Ref) < len(v.Alt):
		return "INS"
	default:
		return "NON"
	}
}

// SVLen returns the record's signed length: INFO SVLEN if present
// (first value for multi-allelic records), else INFO END minus POS,
// else the ALT/REF length difference.
func (v *Variant) SVLen() int64 {
	if raw, ok := v.Info["SVLEN"]; ok {
		first := raw
		if i := strings.IndexByte(raw, ','); i >= 0 {
			first = raw[:i]
		}
		if n, err := strconv.ParseInt(first, 10, 64); err == nil {
			return n
		}
	}
	if raw, ok := v.Info["END"]; ok {
		if end, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return end - v.Pos
		}
	}
	return int64(len(v.Alt)) - int64(len(v.Ref))
}

// Genotype returns the allele call for one sample, preserving arity.
// Uncalled alleles come back as stats.MissingAllele. A record without
// genotype data for the sample returns nil.
func (v *Variant) Genotype(sample int) []stats.Allele {
	if sample < 0 || sample >= len(v.Samples) {
		return nil
	}
	gtIdx := -1
	for i, key := range v.Format {
		if key == "GT" {
			gtIdx = i
			break
		}
	}
	if gtIdx < 0 {
		return nil
	}
	fields := strings.Split(v.Samples[sample], ":")
	if gtIdx >= len(fields) {
		return nil
	}

	raw := strings.FieldsFunc(fields[gtIdx], func(r rune) bool {
		return r == '/' || r == '|'
	})
	call := make([]stats.Allele, 0, len(raw))
	for _, tok := range raw {
		n, err := strconv.Atoi(tok)
		if err != nil {
			call = append(call, stats.MissingAllele)
			continue
		}
		call = append(call, stats.Allele(n))
	}
	return call
}

// symbolicAlt extracts the type token from a symbolic ALT allele,
// e.g. "<DUP:TANDEM>" -> "DUP".
func symbolicAlt(alt string) (string, bool) {
	if len(alt) < 3 || alt[0] != '<' || alt[len(alt)-1] != '>' {
		return "", false
	}
	inner := alt[1 : len(alt)-1]
	if i := strings.IndexByte(inner, ':'); i >= 0 {
		inner = inner[:i]
	}
	return inner, true
}

// NormalizeChrom returns the chromosome name without "chr" prefix.
func (v *Variant) NormalizeChrom() string {
	if len(v.Chrom) > 3 && v.Chrom[:3] == "chr" {
		return v.Chrom[3:]
	}
	return v.Chrom
}
