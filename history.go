package benchreport

import (
	"encoding/json"
	"os"
	"path"
	"strconv"
	"strings"
	"time"
)

// Run is one CI run's worth of classified estimates, archived so trends and
// first-regression searches can look back across runs. Date is unix seconds
// as a string, matching what CI hands us.
type Run struct {
	Date    string     `json:"date"`
	Commit  string     `json:"commit"`
	Results []Estimate `json:"results"`
}

// LoadRuns reads every run file in dir. Non-json entries are ignored.
func LoadRuns(dir string) ([]Run, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	res := make([]Run, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}

		f, err := os.Open(path.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}

		var r Run
		err = json.NewDecoder(f).Decode(&r)
		f.Close()
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

// SaveRun writes r into dir under its date_commit name, replacing any
// earlier snapshot of the same run.
func SaveRun(dir string, r Run) error {
	tm, err := UnixDateToTime(r.Date)
	if err != nil {
		return err
	}
	return WriteJSONFile(path.Join(dir, RunFileName(tm, r.Commit)), r)
}

// MergeRuns copies every run in src into dst, cmd-backfill style: a run with
// the same date and commit replaces the archived one.
func MergeRuns(dst, src string) (int, error) {
	runs, err := LoadRuns(src)
	if err != nil {
		return 0, err
	}
	for i, r := range runs {
		if err := SaveRun(dst, r); err != nil {
			return i, err
		}
	}
	return len(runs), nil
}

func WriteJSONFile(outputFile string, data interface{}) error {
	out, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	return enc.Encode(data)
}

func RunFileName(date time.Time, commit string) string {
	return date.Format("2006-01-02") + "_" + commit + ".json"
}

func UnixDateToTime(date string) (t time.Time, err error) {
	var v int64
	v, err = strconv.ParseInt(date, 10, 64)
	if err != nil {
		return
	}
	t = time.Unix(v, 0)
	return
}
