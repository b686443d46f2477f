// Package benchmarks parses `go test -bench` output for the map benchmarks
// and reports it against the performance targets.
package benchmarks

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrUnknownFormat is returned by Write for an unsupported report format.
var ErrUnknownFormat = errors.New("unknown report format")

// Result is a single benchmark result.
type Result struct {
	// Name is the benchmark name without the GOMAXPROCS suffix
	// (e.g., "BenchmarkFind").
	Name        string  `json:"name"`
	Package     string  `json:"package"`
	Iterations  int     `json:"iterations"`
	NsPerOp     float64 `json:"nsPerOp"`
	MBPerSec    float64 `json:"mbPerSec,omitempty"`
	BytesPerOp  int64   `json:"bytesPerOp"`
	AllocsPerOp int64   `json:"allocsPerOp"`
}

// Target is a performance target for one benchmark. Exactly one of
// MaxNsPerOp and MinOpsPerSec is set.
type Target struct {
	Description  string
	MaxNsPerOp   float64
	MinOpsPerSec float64
}

// TargetCheck is the outcome of comparing a result with its target.
type TargetCheck struct {
	Benchmark       string  `json:"benchmark"`
	Description     string  `json:"description"`
	Passed          bool    `json:"passed"`
	ActualNsPerOp   float64 `json:"actualNsPerOp"`
	TargetNsPerOp   float64 `json:"targetNsPerOp,omitempty"`
	ActualOpsPerSec float64 `json:"actualOpsPerSec,omitempty"`
	TargetOpsPerSec float64 `json:"targetOpsPerSec,omitempty"`
}

// Report is a set of results with the system they ran on.
type Report struct {
	Timestamp time.Time
	GoVersion string
	OS        string
	Arch      string
	Results   []Result
	// Targets maps benchmark names to their targets.
	Targets map[string]Target
}

// DefaultTargets returns the targets for the btree package benchmarks.
func DefaultTargets() map[string]Target {
	return map[string]Target{
		"BenchmarkFind": {
			Description: "Point lookup",
			MaxNsPerOp:  1000,
		},
		"BenchmarkInsertRandom": {
			Description:  "Random-order insert throughput",
			MinOpsPerSec: 1000000,
		},
		"BenchmarkNext": {
			Description: "Forward scan step",
			MaxNsPerOp:  100,
		},
	}
}

// NewReport creates an empty report with the default targets.
func NewReport() *Report {
	return &Report{
		Timestamp: time.Now(),
		Targets:   DefaultTargets(),
	}
}

// BenchmarkName-N  iterations  ns/op  [MB/s]  [B/op]  [allocs/op]
var benchLine = regexp.MustCompile(
	`^(Benchmark[\w/]+?)(?:-\d+)?\s+(\d+)\s+([\d.]+)\s+ns/op` +
		`(?:\s+([\d.]+)\s+MB/s)?(?:\s+(\d+)\s+B/op)?(?:\s+(\d+)\s+allocs/op)?`)

// Parse reads `go test -bench` output and returns the results it contains.
// Lines that are not benchmark results are skipped.
func Parse(r io.Reader) ([]Result, error) {
	var results []Result
	pkg := ""

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if rest, ok := strings.CutPrefix(line, "pkg:"); ok {
			pkg = strings.TrimSpace(rest)
			continue
		}

		m := benchLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		res := Result{Name: m[1], Package: pkg}
		res.Iterations, _ = strconv.Atoi(m[2])
		res.NsPerOp, _ = strconv.ParseFloat(m[3], 64)
		if m[4] != "" {
			res.MBPerSec, _ = strconv.ParseFloat(m[4], 64)
		}
		if m[5] != "" {
			res.BytesPerOp, _ = strconv.ParseInt(m[5], 10, 64)
		}
		if m[6] != "" {
			res.AllocsPerOp, _ = strconv.ParseInt(m[6], 10, 64)
		}
		results = append(results, res)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading benchmark output")
	}
	return results, nil
}

// AddResults appends results to the report.
func (r *Report) AddResults(results []Result) {
	r.Results = append(r.Results, results...)
}

// SetSystemInfo records the environment the benchmarks ran in.
func (r *Report) SetSystemInfo(goVersion, os, arch string) {
	r.GoVersion = goVersion
	r.OS = os
	r.Arch = arch
}

// CheckTargets compares every result that has a target with it.
func (r *Report) CheckTargets() []TargetCheck {
	var checks []TargetCheck
	for _, res := range r.Results {
		target, ok := r.Targets[res.Name]
		if !ok {
			continue
		}

		check := TargetCheck{
			Benchmark:     res.Name,
			Description:   target.Description,
			ActualNsPerOp: res.NsPerOp,
		}
		if target.MaxNsPerOp > 0 {
			check.TargetNsPerOp = target.MaxNsPerOp
			check.Passed = res.NsPerOp <= target.MaxNsPerOp
		} else if target.MinOpsPerSec > 0 && res.NsPerOp > 0 {
			check.ActualOpsPerSec = 1e9 / res.NsPerOp
			check.TargetOpsPerSec = target.MinOpsPerSec
			check.Passed = check.ActualOpsPerSec >= target.MinOpsPerSec
		}
		checks = append(checks, check)
	}
	return checks
}

// byPackage groups results by package, each group sorted by name.
func (r *Report) byPackage() ([]string, map[string][]Result) {
	groups := make(map[string][]Result)
	for _, res := range r.Results {
		pkg := res.Package
		if pkg == "" {
			pkg = "unknown"
		}
		groups[pkg] = append(groups[pkg], res)
	}

	pkgs := make([]string, 0, len(groups))
	for pkg, results := range groups {
		pkgs = append(pkgs, pkg)
		sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	}
	sort.Strings(pkgs)
	return pkgs, groups
}

func (c TargetCheck) columns() (actual, target string) {
	if c.TargetNsPerOp > 0 {
		return formatDuration(c.ActualNsPerOp), "< " + formatDuration(c.TargetNsPerOp)
	}
	return formatOpsPerSec(c.ActualOpsPerSec), ">= " + formatOpsPerSec(c.TargetOpsPerSec)
}

// Write renders the report to w as "text", "markdown" or "json".
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case "text", "txt":
		return r.WriteText(w)
	case "markdown", "md":
		return r.WriteMarkdown(w)
	case "json":
		return r.WriteJSON(w)
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

// WriteText renders the report as aligned plain text.
func (r *Report) WriteText(w io.Writer) error {
	var b strings.Builder
	b.WriteString("=== tuplemap Benchmark Report ===\n\n")
	fmt.Fprintf(&b, "Generated: %s\n", r.Timestamp.Format(time.RFC3339))
	if r.GoVersion != "" {
		fmt.Fprintf(&b, "Go Version: %s\n", r.GoVersion)
	}
	if r.OS != "" && r.Arch != "" {
		fmt.Fprintf(&b, "Platform: %s/%s\n", r.OS, r.Arch)
	}
	b.WriteByte('\n')

	pkgs, groups := r.byPackage()
	for _, pkg := range pkgs {
		fmt.Fprintf(&b, "--- Package: %s ---\n\n", pkg)
		fmt.Fprintf(&b, "%-40s %12s %12s %12s %12s\n", "Benchmark", "Iterations", "ns/op", "B/op", "allocs/op")
		b.WriteString(strings.Repeat("-", 92) + "\n")
		for _, res := range groups[pkg] {
			fmt.Fprintf(&b, "%-40s %12d %12.2f %12d %12d\n",
				res.Name, res.Iterations, res.NsPerOp, res.BytesPerOp, res.AllocsPerOp)
		}
		b.WriteByte('\n')
	}

	if checks := r.CheckTargets(); len(checks) > 0 {
		b.WriteString("=== Targets ===\n\n")
		fmt.Fprintf(&b, "%-32s %-24s %12s %14s %6s\n", "Target", "Benchmark", "Actual", "Target", "Status")
		b.WriteString(strings.Repeat("-", 92) + "\n")
		for _, c := range checks {
			actual, target := c.columns()
			fmt.Fprintf(&b, "%-32s %-24s %12s %14s %6s\n", c.Description, c.Benchmark, actual, target, status(c.Passed))
		}
	}

	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "writing text report")
}

// WriteMarkdown renders the report as Markdown tables.
func (r *Report) WriteMarkdown(w io.Writer) error {
	var b strings.Builder
	b.WriteString("# tuplemap Benchmark Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", r.Timestamp.Format(time.RFC3339))
	if r.GoVersion != "" && r.OS != "" && r.Arch != "" {
		fmt.Fprintf(&b, "%s on %s/%s\n\n", r.GoVersion, r.OS, r.Arch)
	}

	pkgs, groups := r.byPackage()
	for _, pkg := range pkgs {
		fmt.Fprintf(&b, "## %s\n\n", pkg)
		b.WriteString("| Benchmark | Iterations | ns/op | B/op | allocs/op |\n")
		b.WriteString("|-----------|------------|-------|------|-----------|\n")
		for _, res := range groups[pkg] {
			fmt.Fprintf(&b, "| %s | %d | %.2f | %d | %d |\n",
				res.Name, res.Iterations, res.NsPerOp, res.BytesPerOp, res.AllocsPerOp)
		}
		b.WriteByte('\n')
	}

	if checks := r.CheckTargets(); len(checks) > 0 {
		b.WriteString("## Targets\n\n")
		b.WriteString("| Target | Benchmark | Actual | Target | Status |\n")
		b.WriteString("|--------|-----------|--------|--------|--------|\n")
		for _, c := range checks {
			actual, target := c.columns()
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", c.Description, c.Benchmark, actual, target, status(c.Passed))
		}
	}

	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "writing markdown report")
}

// WriteJSON renders the report as an indented JSON document.
func (r *Report) WriteJSON(w io.Writer) error {
	doc := struct {
		Timestamp string        `json:"timestamp"`
		GoVersion string        `json:"goVersion,omitempty"`
		OS        string        `json:"os,omitempty"`
		Arch      string        `json:"arch,omitempty"`
		Results   []Result      `json:"results"`
		Checks    []TargetCheck `json:"checks"`
	}{
		Timestamp: r.Timestamp.Format(time.RFC3339),
		GoVersion: r.GoVersion,
		OS:        r.OS,
		Arch:      r.Arch,
		Results:   r.Results,
		Checks:    r.CheckTargets(),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(doc), "writing json report")
}

// Summary returns a short multi-line summary of the report.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total benchmarks: %d\n", len(r.Results))

	if n := len(r.Results); n > 0 {
		var ns float64
		var allocs int64
		for _, res := range r.Results {
			ns += res.NsPerOp
			allocs += res.AllocsPerOp
		}
		fmt.Fprintf(&b, "Average ns/op: %.2f\n", ns/float64(n))
		fmt.Fprintf(&b, "Average allocs/op: %.2f\n", float64(allocs)/float64(n))
	}

	checks := r.CheckTargets()
	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}
	fmt.Fprintf(&b, "Targets: %d/%d passed\n", passed, len(checks))
	return b.String()
}

func status(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}

func formatDuration(ns float64) string {
	switch {
	case ns < 1e3:
		return fmt.Sprintf("%.2f ns", ns)
	case ns < 1e6:
		return fmt.Sprintf("%.2f us", ns/1e3)
	case ns < 1e9:
		return fmt.Sprintf("%.2f ms", ns/1e6)
	}
	return fmt.Sprintf("%.2f s", ns/1e9)
}

func formatOpsPerSec(ops float64) string {
	switch {
	case ops >= 1e6:
		return fmt.Sprintf("%.2fM/s", ops/1e6)
	case ops >= 1e3:
		return fmt.Sprintf("%.2fK/s", ops/1e3)
	}
	return fmt.Sprintf("%.2f/s", ops)
}
