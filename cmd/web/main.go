package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"sort"
	"sync"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/sirupsen/logrus"

	"github.com/perfci/benchreport"
)

var (
	dataDir string
	dsn     string
	addr    string
)

func init() {
	flag.StringVar(&dataDir, "data", "data", "run archive dir")
	flag.StringVar(&dsn, "dsn", "", "mysql dsn, overrides -data when set")
	flag.StringVar(&addr, "addr", ":18081", "listen address")
}

type runStore interface {
	SaveRun(benchreport.Run) error
	LoadRuns() ([]benchreport.Run, error)
}

type fileStore struct {
	dir string
}

func (s fileStore) SaveRun(r benchreport.Run) error {
	return benchreport.SaveRun(s.dir, r)
}

func (s fileStore) LoadRuns() ([]benchreport.Run, error) {
	return benchreport.LoadRuns(s.dir)
}

type dbStore struct {
	db *benchreport.DB
}

func (s dbStore) SaveRun(r benchreport.Run) error {
	return s.db.SaveRun(context.Background(), r)
}

func (s dbStore) LoadRuns() ([]benchreport.Run, error) {
	return s.db.LoadRuns(context.Background())
}

var (
	store      runStore
	data       []benchreport.Run
	changePage *components.Page
	spreadPage *components.Page
	mu         sync.RWMutex
)

type benchPoint struct {
	Date string
	Sort time.Time
	benchreport.Estimate
}

type benchPointSlice []benchPoint

func (s benchPointSlice) Len() int {
	return len(s)
}

func (s benchPointSlice) Less(i, j int) bool {
	return s[i].Sort.Before(s[j].Sort)
}

func (s benchPointSlice) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

func changeHandle(w http.ResponseWriter, _ *http.Request) {
	mu.RLock()
	defer mu.RUnlock()
	changePage.Render(w)
}

func spreadHandle(w http.ResponseWriter, _ *http.Request) {
	mu.RLock()
	defer mu.RUnlock()
	spreadPage.Render(w)
}

func uploadHandle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method should be POST", http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	var run benchreport.Run
	if err := dec.Decode(&run); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := benchreport.UnixDateToTime(run.Date); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := store.SaveRun(run); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	mu.Lock()
	data = append(data, run)
	snapshot := data
	mu.Unlock()
	reGeneratePage(snapshot)
}

func groupByBench(runs []benchreport.Run) map[string][]benchPoint {
	final := make(map[string][]benchPoint, len(runs))
	for _, r := range runs {
		date, err := benchreport.UnixDateToTime(r.Date)
		if err != nil {
			continue
		}
		for _, e := range r.Results {
			final[e.Name] = append(final[e.Name], benchPoint{
				Date:     date.Format("2006-01-02"),
				Sort:     date,
				Estimate: e,
			})
		}
	}
	for _, v := range final {
		sort.Sort(benchPointSlice(v))
	}
	return final
}

func sortedNames(final map[string][]benchPoint) []string {
	names := make([]string, 0, len(final))
	for name := range final {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func makeChangePage(final map[string][]benchPoint) *components.Page {
	page := components.NewPage()
	for _, name := range sortedNames(final) {
		oneCase := final[name]
		bar := charts.NewBar()
		bar.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: name}))

		dates := make([]string, 0, len(oneCase))
		change := make([]opts.BarData, 0, len(oneCase))
		for _, v := range oneCase {
			dates = append(dates, v.Date)
			change = append(change, opts.BarData{Value: v.Change * 100})
		}

		bar.SetXAxis(dates)
		bar.AddSeries("change %", change)

		page.AddCharts(bar)
	}
	return page
}

func makeSpreadPage(final map[string][]benchPoint) *components.Page {
	page := components.NewPage()
	for _, name := range sortedNames(final) {
		oneCase := final[name]
		bar := charts.NewBar()
		bar.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: name}))

		dates := make([]string, 0, len(oneCase))
		spread := make([]opts.BarData, 0, len(oneCase))
		for _, v := range oneCase {
			dates = append(dates, v.Date)
			spread = append(spread, opts.BarData{Value: (v.Upper - v.Lower) * 100})
		}

		bar.SetXAxis(dates)
		bar.AddSeries("interval width %", spread)

		page.AddCharts(bar)
	}
	return page
}

func reGeneratePage(data []benchreport.Run) {
	final := groupByBench(data)
	tmpChangePage := makeChangePage(final)
	tmpSpreadPage := makeSpreadPage(final)

	mu.Lock()
	defer mu.Unlock()
	changePage = tmpChangePage
	spreadPage = tmpSpreadPage
}

func main() {
	flag.Parse()

	if dsn != "" {
		db, err := benchreport.OpenDB(dsn)
		if err != nil {
			logrus.WithError(err).Fatal("open db")
		}
		defer db.Close()
		store = dbStore{db: db}
	} else {
		store = fileStore{dir: dataDir}
	}

	var err error
	data, err = store.LoadRuns()
	if err != nil {
		logrus.WithError(err).Fatal("load runs")
	}
	reGeneratePage(data)

	http.HandleFunc("/", changeHandle)
	http.HandleFunc("/spread", spreadHandle)
	http.HandleFunc("/upload", uploadHandle)
	logrus.WithField("addr", addr).Info("serving benchmark trends")
	if err := http.ListenAndServe(addr, nil); err != nil {
		logrus.WithError(err).Fatal("listen")
	}
}
