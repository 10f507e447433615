package benchreport

import (
	"fmt"
	"sort"
	"strings"
)

const (
	reportHeader = "## 📊 Benchmark Results\n\n"
	emptyNotice  = "No benchmark comparisons found. Benchmarks may not be set up yet.\n"

	regressionWarning = "⚠️ **Warning:** Performance regressions detected (>5% slower with 95% confidence)!\n\n"

	interpretationNote = `<details>
<summary>How to interpret these results</summary>

- **Change**: Estimated performance difference (negative = faster, positive = slower)
- **Confidence Interval**: 95% confidence bounds for the change
- **Regression**: Lower bound > +5% (confidently slower)
- **Improvement**: Upper bound < -5% (confidently faster)

Criterion uses statistical analysis to account for noise and provide reliable comparisons.
</details>
`
)

// Render produces the markdown comment body and reports whether any
// benchmark is a confident regression. One section per package in
// lexicographic order, worst changes first within a section.
func Render(results []Estimate) (string, bool) {
	var b strings.Builder
	b.WriteString(reportHeader)

	if len(results) == 0 {
		b.WriteString(emptyNotice)
		return b.String(), false
	}

	byPackage := make(map[string][]Estimate)
	for _, r := range results {
		byPackage[r.Package] = append(byPackage[r.Package], r)
	}
	pkgs := make([]string, 0, len(byPackage))
	for pkg := range byPackage {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)

	hasRegression := false
	for _, pkg := range pkgs {
		rows := byPackage[pkg]
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Change > rows[j].Change
		})

		fmt.Fprintf(&b, "### %s\n\n", pkg)
		b.WriteString("| Benchmark | Change | Confidence Interval | Status |\n")
		b.WriteString("|-----------|--------|---------------------|--------|\n")
		for _, r := range rows {
			status := r.Classify()
			if status == StatusRegression {
				hasRegression = true
			}
			fmt.Fprintf(&b, "| `%s` | **%+.2f%%** | [%+.2f%%, %+.2f%%] | %s |\n",
				r.Name, r.Change*100, r.Lower*100, r.Upper*100, status)
		}
		b.WriteString("\n")
	}

	if hasRegression {
		b.WriteString(regressionWarning)
	}
	b.WriteString(interpretationNote)
	return b.String(), hasRegression
}
