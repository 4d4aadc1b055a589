package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Wladim1r/xoconf/internal/engine"
)

// writeReport prints rep in the requested format. The default text format
// lists one problem per line followed by a summary.
func writeReport(w io.Writer, reporter string, rep *engine.Report) error {
	switch reporter {
	case "json":
		return writeJSON(w, rep)
	case "", "text":
	default:
		return fmt.Errorf("xoconf: unknown reporter %q", reporter)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, res := range rep.Results {
		for _, m := range res.Messages {
			fmt.Fprintf(tw, "%s:%d:%d:\t%s\t%s\t%s\n",
				res.FilePath, m.Line, m.Column, severity(m), m.Message, m.RuleID)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if rep.ErrorCount+rep.WarningCount == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "\n%d %s, %d %s\n",
		rep.ErrorCount, plural(rep.ErrorCount, "error"),
		rep.WarningCount, plural(rep.WarningCount, "warning"))
	return err
}

func severity(m engine.Message) string {
	if m.Fatal || m.Severity >= 2 {
		return "error"
	}
	return "warning"
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
