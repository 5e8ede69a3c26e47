package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/ynastt/course-admin/internal/view"
)

type printNotifier struct {
	w io.Writer
}

func (p printNotifier) Notify(n view.Notice) {
	mark := "ok"
	if n.Level == view.LevelError {
		mark = "error"
	}
	fmt.Fprintf(p.w, "[%s] %s\n", mark, n.Message)
}

type printer struct {
	w      io.Writer
	format string
}

// yaml prints v and reports whether the yaml format was selected.
func (p printer) yaml(v any) (bool, error) {
	if p.format != "yaml" {
		return false, nil
	}
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return true, fmt.Errorf("encode yaml: %w", err)
	}
	return true, enc.Close()
}

// table writes rows under header as aligned columns.
func (p printer) table(header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
