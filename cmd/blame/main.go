package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/perfci/benchreport"
)

var (
	dataDir   string
	benchName string
)

func usage() {
	fmt.Println(`Usage:
    blame -bench <benchmark-name> [-data dir]
Finds the earliest archived run where the benchmark regressed.`)
	os.Exit(-1)
}

func init() {
	flag.StringVar(&dataDir, "data", "data", "archive dir to search")
	flag.StringVar(&benchName, "bench", "", "benchmark name to search for")
}

func runTime(r benchreport.Run) time.Time {
	tm, err := benchreport.UnixDateToTime(r.Date)
	if err != nil {
		return time.Time{}
	}
	return tm
}

func main() {
	flag.Parse()

	if benchName == "" {
		usage()
	}

	runs, err := benchreport.LoadRuns(dataDir)
	if err != nil {
		fmt.Println("load runs:", err)
		os.Exit(1)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runTime(runs[i]).Before(runTime(runs[j]))
	})

	for _, r := range runs {
		for _, e := range r.Results {
			if e.Name != benchName || e.Classify() != benchreport.StatusRegression {
				continue
			}
			fmt.Printf("first regression at %s commit %s: %+.2f%% [%+.2f%%, %+.2f%%]\n",
				runTime(r).Format("2006-01-02"), r.Commit,
				e.Change*100, e.Lower*100, e.Upper*100)
			return
		}
	}
	fmt.Println("no regression found for", benchName)
}
