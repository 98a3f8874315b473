package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/pinionworks/pinion/internal/filings"
)

// Report writes a human-readable summary of an ingestion result. When w is
// a TTY the markdown is rendered with glamour; otherwise the raw markdown
// is written as-is (pipelines, logs).
func Report(w io.Writer, ing filings.Ingestion) {
	md := buildMarkdown(ing)

	if isTerminal(w) {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
		if err == nil {
			if out, err := r.Render(md); err == nil {
				fmt.Fprint(w, out)
				return
			}
		}
	}

	fmt.Fprintln(w, md)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func buildMarkdown(ing filings.Ingestion) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Filing CIK %s\n\n", ing.CIK)
	if ing.RecordID != "" {
		fmt.Fprintf(&b, "Record `%s` stored.\n\n", ing.RecordID)
	}

	if len(ing.Facts) == 0 {
		b.WriteString("No facts extracted.\n")
		return b.String()
	}

	b.WriteString("| Field | Value |\n|---|---|\n")

	fields := make([]string, 0, len(ing.Facts))
	for field := range ing.Facts {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		fmt.Fprintf(&b, "| %s | %s |\n", field, ing.Facts[field])
	}

	return b.String()
}
