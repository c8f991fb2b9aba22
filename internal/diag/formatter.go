package diag

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode selects whether the formatter emits ANSI styling.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

type styles struct {
	severity  map[Severity]lipgloss.Style
	message   lipgloss.Style
	gutter    lipgloss.Style
	primary   lipgloss.Style
	secondary lipgloss.Style
	help      lipgloss.Style
	note      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		severity: map[Severity]lipgloss.Style{
			SeverityError:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			SeverityWarning: r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
			SeverityNote:    r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		},
		message:   r.NewStyle().Bold(true),
		gutter:    r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		primary:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		secondary: r.NewStyle().Foreground(lipgloss.Color("12")),
		help:      r.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		note:      r.NewStyle().Bold(true),
	}
}

// Formatter formats diagnostics in a Rust-style format with source code snippets.
type Formatter struct {
	out          io.Writer
	color        bool
	contextLines int
	styles       styles
	sources      map[string]string // source text by filename
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter, *lipgloss.Renderer)

// WithColor sets the color mode. ColorAuto styles output only when the
// writer is a terminal that supports it.
func WithColor(mode ColorMode) FormatterOption {
	return func(f *Formatter, r *lipgloss.Renderer) {
		switch mode {
		case ColorAlways:
			r.SetColorProfile(termenv.ANSI256)
			f.color = true
		case ColorNever:
			f.color = false
		default:
			f.color = r.ColorProfile() != termenv.Ascii
		}
	}
}

// WithContextLines shows n lines of source before and after the reported lines.
func WithContextLines(n int) FormatterOption {
	return func(f *Formatter, _ *lipgloss.Renderer) {
		f.contextLines = max(0, n)
	}
}

// NewFormatter creates a new diagnostic formatter writing to w.
func NewFormatter(w io.Writer, opts ...FormatterOption) *Formatter {
	r := lipgloss.NewRenderer(w)
	f := &Formatter{
		out:     w,
		color:   r.ColorProfile() != termenv.Ascii,
		sources: make(map[string]string),
	}
	for _, opt := range opts {
		opt(f, r)
	}
	f.styles = newStyles(r)
	return f
}

// AddSource registers the text of filename so snippets can be shown.
func (f *Formatter) AddSource(filename, src string) {
	f.sources[filename] = src
}

// FormatAll formats every diagnostic, separated by blank lines.
func (f *Formatter) FormatAll(ds []Diagnostic) {
	for i, d := range ds {
		if i > 0 {
			fmt.Fprintln(f.out)
		}
		f.Format(d)
	}
}

// Format formats and prints a diagnostic in Rust-style format.
func (f *Formatter) Format(d Diagnostic) {
	f.printHeader(d)

	spans := collectSpans(d)
	src, ok := f.sources[d.Span.Filename]
	if len(spans) == 0 || !ok {
		if d.Span.IsValid() {
			fmt.Fprintf(f.out, "  %s %s\n", f.paint(f.styles.gutter, "-->"), d.Span)
		}
		f.printFooter(" ", d)
		return
	}

	gutter := f.printSnippet(d.Span, src, spans)
	f.printFooter(gutter, d)
}

func (f *Formatter) paint(style lipgloss.Style, s string) string {
	if !f.color {
		return s
	}
	return style.Render(s)
}

// collectSpans returns the spans to underline, the diagnostic's own span first.
func collectSpans(d Diagnostic) []LabeledSpan {
	var spans []LabeledSpan
	hasPrimary := false
	for _, ls := range d.LabeledSpans {
		if ls.Style == "primary" {
			hasPrimary = true
		}
	}
	if !hasPrimary && d.Span.IsValid() {
		spans = append(spans, LabeledSpan{Span: d.Span, Style: "primary"})
	}
	for _, ls := range d.LabeledSpans {
		if ls.Span.IsValid() {
			spans = append(spans, ls)
		}
	}
	return spans
}

// printHeader prints the error header (error[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := d.Severity
	if severity == "" {
		severity = SeverityError
	}

	label := string(severity)
	if d.Code != "" {
		label = fmt.Sprintf("%s[%s]", severity, d.Code)
	}
	fmt.Fprintf(f.out, "%s: %s\n", f.paint(f.styles.severity[severity], label), f.paint(f.styles.message, d.Message))
}

// printSnippet prints the source lines touched by spans with underlines and
// returns the blank gutter used, so the footer lines up with it.
func (f *Formatter) printSnippet(loc Span, src string, spans []LabeledSpan) string {
	lines := strings.Split(src, "\n")

	byLine := make(map[int][]LabeledSpan)
	for _, ls := range spans {
		if n := ls.Span.Line; n >= 1 && n <= len(lines) {
			byLine[n] = append(byLine[n], ls)
		}
	}
	if len(byLine) == 0 {
		fmt.Fprintf(f.out, "  %s %s\n", f.paint(f.styles.gutter, "-->"), loc)
		return " "
	}

	lineNumbers := make([]int, 0, len(byLine))
	for n := range byLine {
		lineNumbers = append(lineNumbers, n)
	}
	sort.Ints(lineNumbers)

	from := max(1, lineNumbers[0]-f.contextLines)
	to := min(len(lines), lineNumbers[len(lineNumbers)-1]+f.contextLines)
	width := len(strconv.Itoa(to))
	gutter := strings.Repeat(" ", width)
	bar := f.paint(f.styles.gutter, "|")

	fmt.Fprintf(f.out, "%s%s %s\n", gutter, f.paint(f.styles.gutter, "-->"), loc)
	fmt.Fprintf(f.out, "%s %s\n", gutter, bar)
	for n := from; n <= to; n++ {
		text := strings.TrimRight(lines[n-1], "\r")
		number := f.paint(f.styles.gutter, fmt.Sprintf("%*d", width, n))
		fmt.Fprintf(f.out, "%s %s %s\n", number, bar, text)
		if lineSpans := byLine[n]; len(lineSpans) > 0 {
			f.printUnderlines(gutter, bar, text, lineSpans)
		}
	}
	fmt.Fprintf(f.out, "%s %s\n", gutter, bar)
	return gutter
}

// printUnderlines prints ^ under primary spans and ~ under secondary ones.
// Tabs in the source line are mirrored so the marks stay aligned.
func (f *Formatter) printUnderlines(gutter, bar, text string, spans []LabeledSpan) {
	marks := make([]byte, len(text)+1)
	for i := range marks {
		marks[i] = ' '
		if i < len(text) && text[i] == '\t' {
			marks[i] = '\t'
		}
	}

	mark := func(ls LabeledSpan, c byte) {
		start := min(max(0, ls.Span.Column-1), len(marks)-1)
		end := min(len(marks), start+max(1, ls.Span.End-ls.Span.Start))
		for i := start; i < end; i++ {
			if c == '^' || marks[i] == ' ' || marks[i] == '\t' {
				marks[i] = c
			}
		}
	}

	var primaryLabels, secondaryLabels []string
	hasPrimary := false
	for _, ls := range spans {
		if ls.Style == "primary" {
			continue
		}
		mark(ls, '~')
		if ls.Label != "" {
			secondaryLabels = append(secondaryLabels, ls.Label)
		}
	}
	for _, ls := range spans {
		if ls.Style != "primary" {
			continue
		}
		hasPrimary = true
		mark(ls, '^')
		if ls.Label != "" {
			primaryLabels = append(primaryLabels, ls.Label)
		}
	}

	underline := strings.TrimRight(string(marks), " \t")
	if underline == "" {
		return
	}

	style := f.styles.secondary
	if hasPrimary {
		style = f.styles.primary
	}
	line := fmt.Sprintf("%s %s %s", gutter, bar, f.paint(style, underline))
	if len(primaryLabels) > 0 {
		line += " " + f.paint(style, strings.Join(primaryLabels, "; "))
	}
	fmt.Fprintln(f.out, line)

	for _, label := range secondaryLabels {
		fmt.Fprintf(f.out, "%s %s %s\n", gutter, bar, f.paint(f.styles.secondary, label))
	}
}

// printFooter prints notes and help text.
func (f *Formatter) printFooter(gutter string, d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(f.out, "%s %s %s\n", gutter, f.paint(f.styles.note, "= note:"), note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.out, "%s %s %s\n", gutter, f.paint(f.styles.help, "= help:"), d.Help)
	}
}
