// Package output formats CLI results for terminals and for scripts.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"
)

// Writer prints CLI output. Colors are used only when writing to a terminal
// and NO_COLOR is unset.
type Writer struct {
	out    io.Writer
	styles Styles
}

// New creates a Writer for out.
func New(out io.Writer) *Writer {
	return &Writer{out: out, styles: GetStyles(!ColorEnabled(out))}
}

// NewPlain creates a Writer that never colors.
func NewPlain(out io.Writer) *Writer {
	return &Writer{out: out, styles: NoColorStyles()}
}

// ColorEnabled reports whether out is a terminal that accepts color.
func ColorEnabled(out io.Writer) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Status prints a message with an icon. Write errors are ignored for
// console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf is Status with formatting.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints a success message.
func (w *Writer) Success(msg string) {
	w.Status(w.styles.Success.Render("✓"), msg)
}

// Successf is Success with formatting.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status(w.styles.Warning.Render("!"), msg)
}

// Warningf is Warning with formatting.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status(w.styles.Error.Render("✗"), msg)
}

// Errorf is Error with formatting.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Header prints a section title.
func (w *Writer) Header(title string) {
	_, _ = fmt.Fprintln(w.out, w.styles.Header.Render(title))
}

// KeyValue prints one aligned "key: value" line.
func (w *Writer) KeyValue(key string, value any) {
	_, _ = fmt.Fprintf(w.out, "  %s %s\n",
		w.styles.Label.Render(fmt.Sprintf("%-20s", key+":")),
		w.styles.Value.Render(fmt.Sprint(value)))
}

// Map prints m as key/value lines sorted by key. Nested maps are indented
// under their key.
func (w *Writer) Map(m map[string]any) {
	w.printMap(m, "")
}

func (w *Writer) printMap(m map[string]any, indent string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if nested, ok := m[k].(map[string]any); ok {
			_, _ = fmt.Fprintf(w.out, "%s  %s\n", indent, w.styles.Label.Render(k+":"))
			w.printMap(nested, indent+"  ")
			continue
		}
		_, _ = fmt.Fprintf(w.out, "%s  %s %s\n", indent,
			w.styles.Label.Render(fmt.Sprintf("%-20s", k+":")),
			w.styles.Value.Render(fmt.Sprint(m[k])))
	}
}

// Code prints an indented block surrounded by blank lines.
func (w *Writer) Code(content string) {
	_, _ = fmt.Fprintln(w.out)
	for line := range strings.SplitSeq(content, "\n") {
		_, _ = fmt.Fprintf(w.out, "  %s\n", line)
	}
	_, _ = fmt.Fprintln(w.out)
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

// Println prints a plain line.
func (w *Writer) Println(a ...any) {
	_, _ = fmt.Fprintln(w.out, a...)
}

// JSON prints v as indented JSON.
func (w *Writer) JSON(v any) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Bar renders a fixed-width bar for a value in [0, 1], used for scores.
func Bar(value float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(value * float64(width))
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
