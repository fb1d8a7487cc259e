package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"resolveprobe/internal/probe"
	"resolveprobe/internal/textutil"
)

// Output formats.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiBold   = "\x1b[1m"
)

const (
	statusLabelWidth = 26
	statusIndent     = "  "
	detailLimit      = 160
)

// Render writes rep in the named format.
func Render(w io.Writer, rep Report, format string, colorize bool) error {
	switch format {
	case FormatText, "":
		return RenderText(w, rep, colorize)
	case FormatTable:
		return RenderTable(w, rep)
	case FormatJSON:
		return RenderJSON(w, rep)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// ShouldColorize resolves a color mode ("auto", "always", "never") for w.
// Auto colors only terminals.
func ShouldColorize(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// RenderText writes one status line per outcome followed by a summary block.
func RenderText(w io.Writer, rep Report, colorize bool) error {
	var b strings.Builder
	for _, line := range renderSectionHeader("DaVinci Resolve scripting diagnostics", colorize) {
		b.WriteString(line + "\n")
	}
	for _, o := range rep.Outcomes {
		b.WriteString(StatusLine(o.Stage, o.Kind, o.Detail, colorize) + "\n")
	}
	b.WriteString("\n")
	for _, line := range renderSectionHeader("Summary", colorize) {
		b.WriteString(line + "\n")
	}
	if !rep.Blocked() {
		fmt.Fprintf(&b, "%s%-*s %s\n", statusIndent, statusLabelWidth, "Stages:", countsLine(rep.Counts))
	}
	verdict := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Verdict:", rep.Summary)
	if colorize {
		verdict = ansiBold + kindColor(rep.Verdict) + verdict + ansiReset
	}
	b.WriteString(verdict + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderTable writes the outcomes as a rounded table followed by the verdict.
func RenderTable(w io.Writer, rep Report) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Stage", "Depends On", "Status", "Detail"})
	for _, o := range rep.Outcomes {
		tw.AppendRow(table.Row{o.Stage, o.DependsOn, kindLabel(o.Kind), detailText(o.Detail)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft, WidthMax: 72},
	})
	_, err := fmt.Fprintf(w, "%s\nVerdict: [%s] %s\n", tw.Render(), kindLabel(rep.Verdict), rep.Summary)
	return err
}

// RenderJSON writes rep as indented JSON.
func RenderJSON(w io.Writer, rep Report) error {
	return WriteJSON(w, rep)
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// StatusLine renders one aligned "label: [KIND] detail" line. Details are
// flattened to a single line and truncated.
func StatusLine(label string, kind probe.Kind, detail string, colorize bool) string {
	status := fmt.Sprintf("[%s]", kindLabel(kind))
	if detail = detailText(detail); detail != "" {
		status += " " + detail
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", status)
	if colorize {
		return kindColor(kind) + base + ansiReset
	}
	return base
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func countsLine(c Counts) string {
	return fmt.Sprintf("%d total, %d ok, %d warn, %d fail", c.Total(), c.Success, c.Warning, c.Failure)
}

func detailText(detail string) string {
	return textutil.Truncate(textutil.SingleLine(detail), detailLimit)
}

func kindLabel(kind probe.Kind) string {
	switch kind {
	case probe.Success:
		return "OK"
	case probe.Warning:
		return "WARN"
	case probe.Failure:
		return "FAIL"
	case probe.Fatal:
		return "FATAL"
	default:
		return "INFO"
	}
}

func kindColor(kind probe.Kind) string {
	switch kind {
	case probe.Success:
		return ansiGreen
	case probe.Warning:
		return ansiYellow
	case probe.Failure, probe.Fatal:
		return ansiRed
	default:
		return ""
	}
}
