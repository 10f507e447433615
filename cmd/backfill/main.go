package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/perfci/benchreport"
)

var (
	dataDir  string
	patchDir string
)

func init() {
	flag.StringVar(&dataDir, "data", "data", "archive dir to merge into")
	flag.StringVar(&patchDir, "patch", "patch", "dir of run files to merge")
}

func main() {
	flag.Parse()

	n, err := benchreport.MergeRuns(dataDir, patchDir)
	if err != nil {
		logrus.WithError(err).Fatal("merge runs")
	}
	logrus.WithField("runs", n).Info("backfill done")
}
