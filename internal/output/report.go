package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Renderable is a report element that knows its own text and markdown
// shapes. Body returns the structured payload the data formats emit.
type Renderable interface {
	Text(w io.Writer, colored bool) error
	Markdown(w io.Writer) error
	Body() any
}

var (
	_ Renderable = (*Table)(nil)
	_ Renderable = (*Section)(nil)
	_ Renderable = (*Report)(nil)
)

// writeTitle prints a title underlined with rule, bold when colored.
func writeTitle(w io.Writer, title string, colored bool, rule string) {
	if title == "" {
		return
	}
	if colored {
		color.New(color.Bold).Fprintln(w, title)
	} else {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w, strings.Repeat(rule, len(title)))
	fmt.Fprintln(w)
}

// mdRow writes one markdown table row.
func mdRow(w io.Writer, cells []string) {
	fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
}

// Table renders issue or metric rows under a header, with an optional
// summary footer. Data carries the analyzer's structured result for the
// data formats; rows exist only for presentation.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Footer  []string
	Data    any
}

// NewTable builds a table whose Body is data.
func NewTable(title string, headers []string, rows [][]string, footer []string, data any) *Table {
	return &Table{
		Title:   title,
		Headers: headers,
		Rows:    rows,
		Footer:  footer,
		Data:    data,
	}
}

func (t *Table) Body() any {
	if t.Data != nil {
		return t.Data
	}
	return t.Rows
}

func (t *Table) Text(w io.Writer, colored bool) error {
	writeTitle(w, t.Title, colored, "-")

	tbl := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
			Footer: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenColumns: tw.Off,
				},
			},
		}),
	)

	tbl.Header(t.Headers)
	for _, row := range t.Rows {
		tbl.Append(row)
	}
	if len(t.Footer) > 0 {
		cells := make([]any, len(t.Footer))
		for i, cell := range t.Footer {
			cells[i] = cell
		}
		tbl.Footer(cells...)
	}
	tbl.Render()
	fmt.Fprintln(w)
	return nil
}

func (t *Table) Markdown(w io.Writer) error {
	if t.Title != "" {
		fmt.Fprintf(w, "## %s\n\n", t.Title)
	}

	mdRow(w, t.Headers)
	seps := make([]string, len(t.Headers))
	for i := range seps {
		seps[i] = "---"
	}
	mdRow(w, seps)
	for _, row := range t.Rows {
		mdRow(w, row)
	}
	if len(t.Footer) > 0 {
		mdRow(w, t.Footer)
	}
	fmt.Fprintln(w)
	return nil
}

// Section is one analyzer's block in the combined report: a title, a
// preformatted summary, and the analyzer's structured result.
type Section struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (s *Section) Body() any {
	if s.Data != nil {
		return s.Data
	}
	return s
}

func (s *Section) Text(w io.Writer, colored bool) error {
	writeTitle(w, s.Title, colored, "-")
	if s.Content != "" {
		fmt.Fprintln(w, s.Content)
	}
	return nil
}

func (s *Section) Markdown(w io.Writer) error {
	if s.Title != "" {
		fmt.Fprintf(w, "## %s\n\n", s.Title)
	}
	if s.Content != "" {
		fmt.Fprintln(w, s.Content)
		fmt.Fprintln(w)
	}
	return nil
}

// Report stitches per-analyzer sections into one document. Data is the
// full aggregated result; when set, the data formats emit it instead of
// the section list.
type Report struct {
	Title    string
	Sections []Renderable
	Data     any
}

func (r *Report) Body() any {
	if r.Data != nil {
		return r.Data
	}
	parts := make([]any, len(r.Sections))
	for i, s := range r.Sections {
		parts[i] = s.Body()
	}
	return parts
}

func (r *Report) Text(w io.Writer, colored bool) error {
	writeTitle(w, r.Title, colored, "=")

	for i, s := range r.Sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := s.Text(w, colored); err != nil {
			return err
		}
	}
	return nil
}

func (r *Report) Markdown(w io.Writer) error {
	if r.Title != "" {
		fmt.Fprintf(w, "# %s\n\n", r.Title)
	}
	for _, s := range r.Sections {
		if err := s.Markdown(w); err != nil {
			return err
		}
	}
	return nil
}
