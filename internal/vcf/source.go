package vcf

import "github.com/inodb/svstats/internal/stats"

// Source adapts a Parser to the tally engine's record interface,
// extracting the fields the classifier needs for one designated sample.
type Source struct {
	parser *Parser
	sample int
}

// NewSource wraps a parser for the given sample index (usually 0).
func NewSource(p *Parser, sample int) *Source {
	return &Source{parser: p, sample: sample}
}

// Next returns the next record, or nil, nil at end of file.
func (s *Source) Next() (*stats.Record, error) {
	v, err := s.parser.Next()
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return &stats.Record{
		Type:        v.SVType(),
		Length:      v.SVLen(),
		Call:        v.Genotype(s.sample),
		Qual:        v.Qual,
		QualMissing: v.QualMissing,
	}, nil
}

// Close closes the underlying parser.
func (s *Source) Close() error {
	return s.parser.Close()
}
