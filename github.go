package benchreport

import (
	"fmt"
	"os"
)

// WriteGitHubOutput appends the report to a GITHUB_OUTPUT-style key/value
// file. The comment goes through a heredoc so embedded newlines survive.
func WriteGitHubOutput(path, comment string, hasRegression bool) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(f, "comment<<EOF\n%s\nEOF\n", comment); err != nil {
		f.Close()
		return err
	}
	if _, err := fmt.Fprintf(f, "has_regression=%t\n", hasRegression); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
