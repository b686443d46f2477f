package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/KilimcininKorOglu/tuplemap/benchmarks"
	"github.com/KilimcininKorOglu/tuplemap/internal/logging"
)

type reportOptions struct {
	format   string
	output   string
	strict   bool
	logLevel string
}

func newRootCmd(stdin io.Reader) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "benchreport [file]",
		Short: "Report map benchmark results against performance targets",
		Long: "benchreport reads `go test -bench` output from a file or standard input\n" +
			"and writes a text, markdown or JSON report, checking each result that\n" +
			"has a target.\n\n" +
			"  go test -run=^$ -bench=. -benchmem ./btree | benchreport -f md",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := stdin
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(err, "opening benchmark output")
				}
				defer f.Close()
				in = f
			}
			return runReport(cmd, in, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "report format: text, markdown or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the report to a file instead of standard output")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit with status 2 when a target is missed")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func runReport(cmd *cobra.Command, in io.Reader, opts *reportOptions) error {
	log := logging.NewWriter(cmd.ErrOrStderr(), logging.ParseLevel(opts.logLevel), logging.FormatText)

	results, err := benchmarks.Parse(in)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		log.Warn("no benchmark results found in input")
	}

	report := benchmarks.NewReport()
	report.SetSystemInfo(runtime.Version(), runtime.GOOS, runtime.GOARCH)
	report.AddResults(results)

	out := cmd.OutOrStdout()
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return errors.Wrap(err, "creating report file")
		}
		defer f.Close()
		out = f
	}

	if err := report.Write(out, opts.format); err != nil {
		return err
	}
	log.Info("report written", "results", len(results), "format", opts.format, "output", opts.output)

	if opts.strict {
		for _, check := range report.CheckTargets() {
			if !check.Passed {
				log.Error("target missed", "benchmark", check.Benchmark, "ns_per_op", check.ActualNsPerOp)
				return &exitError{code: 2, msg: fmt.Sprintf("target missed: %s", check.Benchmark)}
			}
		}
	}
	return nil
}
