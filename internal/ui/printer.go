package ui

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Printer centralizes output formatting for commands.
// - Respects --output (text|json|yaml)
// - Uses ColorConfig for styling when printing text
type Printer struct {
	format string
	Colors *ColorConfig
}

func NewPrinter(format string) Printer {
	return Printer{format: format, Colors: NewColorConfig()}
}

// Format returns the selected output format.
func (p Printer) Format() string { return p.format }

// Textf prints formatted text to stdout (always text path).
func (p Printer) Textf(format string, a ...any) { fmt.Printf(format, a...) }

// JSON pretty-prints a JSON value to stdout.
func (p Printer) JSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// YAML prints a YAML rendering of v to stdout.
func (p Printer) YAML(v any) {
	data, err := yaml.Marshal(v)
	if err != nil {
		p.Error(err.Error())
		return
	}
	fmt.Print(string(data))
}

// Render prints v in the selected format; text output goes through fallback.
func (p Printer) Render(v any, fallback func()) {
	switch p.format {
	case "json":
		p.JSON(v)
	case "yaml":
		p.YAML(v)
	default:
		fallback()
	}
}

// Success prints a success line with themed prefix.
func (p Printer) Success(msg string) {
	fmt.Printf("%s %s\n", p.Colors.Success("✓"), msg)
}

// Info prints an informational line.
func (p Printer) Info(msg string) {
	fmt.Println(p.Colors.Info("ℹ"), msg)
}

// Warn prints a warning line.
func (p Printer) Warn(msg string) {
	fmt.Println(p.Colors.Warning("⚠"), msg)
}

// Error prints an error line to stderr.
func (p Printer) Error(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", p.Colors.Error("✗"), msg)
}
