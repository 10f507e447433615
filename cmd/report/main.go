package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/perfci/benchreport"
)

type sourceList []benchreport.Source

func (s *sourceList) String() string {
	parts := make([]string, 0, len(*s))
	for _, src := range *s {
		parts = append(parts, src.Package+"="+src.Dir)
	}
	return strings.Join(parts, ",")
}

func (s *sourceList) Set(v string) error {
	label, dir, ok := strings.Cut(v, "=")
	if !ok || label == "" || dir == "" {
		return fmt.Errorf("expect label=dir, got %q", v)
	}
	*s = append(*s, benchreport.Source{Package: label, Dir: dir})
	return nil
}

var (
	sources sourceList
	archive string
	date    string
	commit  string
)

func init() {
	flag.Var(&sources, "pkg", "criterion source as label=dir, repeatable")
	flag.StringVar(&archive, "archive", "", "also snapshot this run into the archive dir")
	flag.StringVar(&date, "date", "", "unix timestamp of this run, used with -archive")
	flag.StringVar(&commit, "commit", "", "brief git commit hash, used with -archive")
}

func main() {
	flag.Parse()

	if len(sources) == 0 {
		sources = sourceList{{Package: "core", Dir: "target/criterion"}}
	}

	results := benchreport.ScanAll(sources)
	comment, hasRegression := benchreport.Render(results)

	outPath := os.Getenv("GITHUB_OUTPUT")
	if outPath == "" {
		logrus.Fatal("GITHUB_OUTPUT is not set")
	}
	if err := benchreport.WriteGitHubOutput(outPath, comment, hasRegression); err != nil {
		logrus.WithError(err).Fatal("write github output")
	}

	if archive != "" {
		run := benchreport.Run{Date: date, Commit: commit, Results: results}
		if err := benchreport.SaveRun(archive, run); err != nil {
			logrus.WithError(err).Fatal("archive run")
		}
	}

	logrus.WithFields(logrus.Fields{
		"benchmarks":     len(results),
		"has_regression": hasRegression,
	}).Info("report written")
}
