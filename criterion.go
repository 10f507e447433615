package benchreport

import (
	"encoding/json"
	"io/fs"
	"os"
	"path"
)

// Source is one directory tree of criterion output, tagged with the package
// label its benchmarks are reported under.
type Source struct {
	Dir     string
	Package string
}

// estimatesFile mirrors the part of criterion's change/estimates.json we
// read. Pointer fields so a missing key rejects the record instead of
// defaulting to zero.
type estimatesFile struct {
	Mean *struct {
		PointEstimate      *float64 `json:"point_estimate"`
		ConfidenceInterval *struct {
			LowerBound *float64 `json:"lower_bound"`
			UpperBound *float64 `json:"upper_bound"`
		} `json:"confidence_interval"`
	} `json:"mean"`
}

// ScanAll collects change estimates from every source. A source whose
// directory does not exist contributes nothing.
func ScanAll(sources []Source) []Estimate {
	var all []Estimate
	for _, src := range sources {
		all = append(all, ScanFS(os.DirFS(src.Dir), src.Package)...)
	}
	return all
}

// ScanFS walks fsys for */change/estimates.json files. The benchmark name is
// the path segment two levels above the file. Unreadable or malformed files
// are skipped so one corrupt benchmark cannot abort the whole report.
func ScanFS(fsys fs.FS, pkg string) []Estimate {
	var res []Estimate
	fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if d.Name() != "estimates.json" || path.Base(path.Dir(p)) != "change" {
			return nil
		}
		e, ok := parseEstimates(fsys, p)
		if !ok {
			return nil
		}
		e.Name = path.Base(path.Dir(path.Dir(p)))
		e.Package = pkg
		res = append(res, e)
		return nil
	})
	return res
}

func parseEstimates(fsys fs.FS, p string) (Estimate, bool) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return Estimate{}, false
	}

	var f estimatesFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Estimate{}, false
	}
	m := f.Mean
	if m == nil || m.PointEstimate == nil || m.ConfidenceInterval == nil ||
		m.ConfidenceInterval.LowerBound == nil || m.ConfidenceInterval.UpperBound == nil {
		return Estimate{}, false
	}
	return Estimate{
		Change: *m.PointEstimate,
		Lower:  *m.ConfidenceInterval.LowerBound,
		Upper:  *m.ConfidenceInterval.UpperBound,
	}, true
}
