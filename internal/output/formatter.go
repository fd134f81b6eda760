// Package output renders analysis reports as terminal text, JSON,
// Markdown, or TOON. Rendering is presentation only; the structured
// payload attached to each report is emitted untouched by the data
// formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	toon "github.com/toon-format/toon-go"
)

// Format selects how reports are rendered.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatTOON     Format = "toon"
)

// ParseFormat maps a flag or config value to a Format. Unrecognized
// values fall back to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "markdown", "md":
		return FormatMarkdown
	case "toon":
		return FormatTOON
	default:
		return FormatText
	}
}

// Formatter writes rendered reports to stdout or a file.
type Formatter struct {
	format  Format
	writer  io.Writer
	file    *os.File
	colored bool
}

// NewFormatter creates a formatter. A non-empty output path redirects
// everything to that file and disables color.
func NewFormatter(format Format, output string, colored bool) (*Formatter, error) {
	f := &Formatter{
		format:  format,
		writer:  os.Stdout,
		colored: colored,
	}

	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", output, err)
		}
		f.writer = file
		f.file = file
		f.colored = false
	}
	return f, nil
}

// Close flushes and closes the output file, if any. Closing twice is
// safe; the commands defer it and also close before reading back.
func (f *Formatter) Close() error {
	if f.file == nil {
		return nil
	}
	file := f.file
	f.file = nil
	return file.Close()
}

// Writer exposes the underlying writer for commands that print extra
// lines around a report (cycle lists, mermaid output).
func (f *Formatter) Writer() io.Writer {
	return f.writer
}

// Format returns the configured format.
func (f *Formatter) Format() Format {
	return f.format
}

// Colored reports whether color is enabled for text output.
func (f *Formatter) Colored() bool {
	return f.colored
}

// Output renders data in the configured format. Renderable values pick
// their own text and markdown shapes; anything else is emitted as data.
func (f *Formatter) Output(data any) error {
	r, ok := data.(Renderable)
	if !ok {
		return f.writeData(data)
	}

	switch f.format {
	case FormatText:
		return r.Text(f.writer, f.colored)
	case FormatMarkdown:
		return r.Markdown(f.writer)
	default:
		return f.writeData(r.Body())
	}
}

// writeData serializes data in the configured format. Text has no
// generic rendering for arbitrary values, so it degrades to JSON;
// markdown fences it.
func (f *Formatter) writeData(data any) error {
	switch f.format {
	case FormatTOON:
		out, err := toon.Marshal(data, toon.WithIndent(2))
		if err != nil {
			return err
		}
		if _, err := f.writer.Write(out); err != nil {
			return err
		}
		_, err = fmt.Fprintln(f.writer)
		return err
	case FormatMarkdown:
		fmt.Fprintln(f.writer, "```json")
		if err := f.writeJSON(data); err != nil {
			return err
		}
		fmt.Fprintln(f.writer, "```")
		return nil
	default:
		return f.writeJSON(data)
	}
}

func (f *Formatter) writeJSON(data any) error {
	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Success prints a green status line in text mode.
func (f *Formatter) Success(format string, args ...any) {
	if f.colored {
		color.Green(format, args...)
	} else {
		fmt.Fprintf(f.writer, format+"\n", args...)
	}
}

// Warning prints a yellow status line, prefixed when color is off.
func (f *Formatter) Warning(format string, args ...any) {
	if f.colored {
		color.Yellow(format, args...)
	} else {
		fmt.Fprintf(f.writer, "WARNING: "+format+"\n", args...)
	}
}

// Error prints a red status line, prefixed when color is off.
func (f *Formatter) Error(format string, args ...any) {
	if f.colored {
		color.Red(format, args...)
	} else {
		fmt.Fprintf(f.writer, "ERROR: "+format+"\n", args...)
	}
}
