package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/svstats/internal/output"
	"github.com/inodb/svstats/internal/stats"
	"github.com/inodb/svstats/internal/tallydb"
	"github.com/inodb/svstats/internal/vcf"
)

func newStatsCmd() *cobra.Command {
	var (
		outPath string
		dbPath  string
		sample  int
		workers int
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "stats [flags] VCF...",
		Short: "Tally SVs in one or more VCF files and print a report",
		Long: `Tally structural variants by SV type, size bin, genotype and quality
bin, then print per-axis counts, cross tabs and Het/Hom ratios.
Multiple VCFs are accumulated into a single tally. Use '-' for stdin.`,
		Example: `  svstats stats calls.vcf.gz
  svstats stats --db tally.duckdb -o report.txt *.vcf
  svstats stats --workers 4 sample1.vcf sample2.vcf sample3.vcf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args, outPath, dbPath, sample, workers, verbose)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "report output file (default: stdout)")
	cmd.Flags().StringVar(&dbPath, "db", "", "write the raw tally to a DuckDB file for later reuse")
	cmd.Flags().IntVar(&sample, "sample", 0, "sample column index to read genotypes from")
	cmd.Flags().IntVar(&workers, "workers", 1, "aggregate input files in parallel (0 = NumCPU)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-record classification")

	return cmd
}

func runStats(paths []string, outPath, dbPath string, sample, workers int, verbose bool) error {
	scale := scaleFromConfig()

	logger := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer l.Sync()
		logger = l
	}

	sources := make([]stats.RecordSource, 0, len(paths))
	for _, path := range paths {
		parser, err := vcf.NewParser(path)
		if err != nil {
			return err
		}
		src := vcf.NewSource(parser, sample)
		defer src.Close()
		sources = append(sources, src)
	}

	var tensor *stats.Tensor
	if workers != 1 && len(sources) > 1 {
		t, err := stats.AggregateParallel(sources, scale, workers, logger)
		if err != nil {
			return err
		}
		tensor = t
	} else {
		agg := stats.NewAggregator(scale)
		agg.SetLogger(logger)
		if err := agg.RunAll(sources...); err != nil {
			return err
		}
		tensor = agg.Tensor()
	}

	report := stats.BuildReport(tensor, scale)
	logger.Info("aggregation complete", zap.Uint64("records", report.Total))

	if dbPath != "" {
		store, err := tallydb.Open(dbPath)
		if err != nil {
			return err
		}
		if err := store.Save(tensor); err != nil {
			store.Close()
			return fmt.Errorf("save tally: %w", err)
		}
		if err := store.Close(); err != nil {
			return err
		}
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create report file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return output.NewTextWriter(out).Write(report)
}

// scaleFromConfig builds the quality scale from viper settings
// (qual.min, qual.max, qual.step). Bad settings fall back to the
// default 0-100/10 scale.
func scaleFromConfig() stats.QualScale {
	min := viper.GetFloat64("qual.min")
	max := viper.GetFloat64("qual.max")
	step := viper.GetFloat64("qual.step")
	if step <= 0 || max <= min {
		return stats.DefaultQualScale()
	}
	return stats.QualScale{RMin: min, RMax: max, TMin: min, TMax: max, Step: step}
}
