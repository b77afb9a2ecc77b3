// # internal/output/text.go
package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"logshift/internal/lint"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	cleanStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B"))
)

// RenderText produces the human-readable run report: one line per
// diagnostic grouped by file, then a summary.
func RenderText(reportsByFile map[string][]lint.Report, filesScanned int) string {
	paths := make([]string, 0, len(reportsByFile))
	total := 0
	for path, reports := range reportsByFile {
		if len(reports) == 0 {
			continue
		}
		paths = append(paths, path)
		total += len(reports)
	}
	sort.Strings(paths)

	var b strings.Builder
	b.WriteString(headerStyle.Render("logshift"))
	b.WriteString("\n\n")

	for _, path := range paths {
		b.WriteString(pathStyle.Render(path))
		b.WriteByte('\n')
		for _, report := range reportsByFile[path] {
			b.WriteString(fmt.Sprintf("  %d:%d  %s  %s\n",
				report.Location.Line,
				report.Location.Column,
				warnStyle.Render("warning"),
				report.Message,
			))
		}
		b.WriteByte('\n')
	}

	if total == 0 {
		b.WriteString(cleanStyle.Render(fmt.Sprintf("No console calls found (%d files scanned)", filesScanned)))
	} else {
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d console call(s) in %d file(s)", total, len(paths))))
		b.WriteString(pathStyle.Render(fmt.Sprintf("  (%d files scanned, all fixable)", filesScanned)))
	}
	b.WriteByte('\n')

	return b.String()
}
