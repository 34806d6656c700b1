package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	chorederrors "github.com/chored-dev/chored/internal/errors"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Output prints messages and tables for one output format.
type Output interface {
	Success(msg string)
	// Error prints err, with its suggested action when it is an ActionableError.
	Error(err error)
	Warning(msg string)
	Info(msg string)
	// Table prints rows under headers with aligned columns.
	Table(headers []string, rows [][]string)
	// JSON prints v as indented JSON.
	JSON(v any) error
}

// NewOutput returns the Output for format ("text" or "json"; empty means text).
func NewOutput(w io.Writer, format string) (Output, error) {
	switch format {
	case "", FormatText:
		return NewTTYOutput(w), nil
	case FormatJSON:
		return NewJSONOutput(w), nil
	}
	return nil, fmt.Errorf("%w: %q (want text or json)", chorederrors.ErrInvalidOutputFormat, format)
}

// TTYOutput prints styled text.
type TTYOutput struct {
	w      io.Writer
	styles *OutputStyles
	table  *TableStyles
}

// NewTTYOutput creates a TTYOutput. It respects NO_COLOR.
func NewTTYOutput(w io.Writer) *TTYOutput {
	CheckNoColor()
	return &TTYOutput{
		w:      w,
		styles: NewOutputStyles(),
		table:  NewTableStyles(),
	}
}

// Success prints "✓ msg".
func (o *TTYOutput) Success(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Success.Render("✓ "+msg))
}

// Error prints "✗ message" and, for actionable errors, "▸ Try: action".
func (o *TTYOutput) Error(err error) {
	var ae *ActionableError
	if errors.As(err, &ae) {
		_, _ = fmt.Fprintln(o.w, o.styles.Error.Render("✗ "+ae.Error()))
		if ae.Suggestion != "" {
			_, _ = fmt.Fprintln(o.w, o.styles.Dim.Render("  ▸ Try: "+ae.Suggestion))
		}
		return
	}
	_, _ = fmt.Fprintln(o.w, o.styles.Error.Render("✗ "+err.Error()))
}

// Warning prints "⚠ msg".
func (o *TTYOutput) Warning(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Warning.Render("⚠ "+msg))
}

// Info prints msg in the primary color.
func (o *TTYOutput) Info(msg string) {
	_, _ = fmt.Fprintln(o.w, o.styles.Info.Render(msg))
}

// Table prints rows with columns padded to their widest cell. The first
// column is highlighted as the row key.
func (o *TTYOutput) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = displayWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && displayWidth(cell) > widths[i] {
				widths[i] = displayWidth(cell)
			}
		}
	}

	parts := make([]string, len(headers))
	for i, h := range headers {
		parts[i] = o.table.Header.Render(padRight(h, widths[i]))
	}
	_, _ = fmt.Fprintln(o.w, strings.TrimRight(strings.Join(parts, "  "), " "))

	for _, row := range rows {
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			style := o.table.Cell
			switch {
			case i == 0:
				style = o.table.Key
			case i == len(headers)-1:
				style = o.table.Dim
			}
			parts[i] = style.Render(padRight(cell, widths[i]))
		}
		_, _ = fmt.Fprintln(o.w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
}

// JSON prints v as indented JSON.
func (o *TTYOutput) JSON(v any) error {
	return encodeJSON(o.w, v)
}

// JSONOutput prints one JSON object per message, for scripts and CI logs.
type JSONOutput struct {
	w io.Writer
}

// NewJSONOutput creates a JSONOutput.
func NewJSONOutput(w io.Writer) *JSONOutput {
	return &JSONOutput{w: w}
}

type jsonMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type jsonError struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Context    string `json:"context,omitempty"`
}

// Success prints {"type":"success","message":...}.
func (o *JSONOutput) Success(msg string) { o.message("success", msg) }

// Warning prints {"type":"warning","message":...}.
func (o *JSONOutput) Warning(msg string) { o.message("warning", msg) }

// Info prints {"type":"info","message":...}.
func (o *JSONOutput) Info(msg string) { o.message("info", msg) }

// Error prints the error with its suggestion and context when available.
func (o *JSONOutput) Error(err error) {
	out := jsonError{Type: "error", Message: err.Error()}
	var ae *ActionableError
	if errors.As(err, &ae) {
		out.Message = ae.Message
		out.Suggestion = ae.Suggestion
		out.Context = ae.Context
	}
	//nolint:errchkjson // Output methods have no error return
	_ = json.NewEncoder(o.w).Encode(out)
}

// Table prints rows as an array of header-keyed objects.
func (o *JSONOutput) Table(headers []string, rows [][]string) {
	objects := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				obj[strings.ToLower(h)] = row[i]
			}
		}
		objects = append(objects, obj)
	}
	_ = encodeJSON(o.w, objects)
}

// JSON prints v as indented JSON.
func (o *JSONOutput) JSON(v any) error {
	return encodeJSON(o.w, v)
}

func (o *JSONOutput) message(kind, msg string) {
	//nolint:errchkjson // Output methods have no error return
	_ = json.NewEncoder(o.w).Encode(jsonMessage{Type: kind, Message: msg})
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
