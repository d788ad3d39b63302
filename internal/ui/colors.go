package ui

import (
	"os"
	"strings"
)

// Color codes for terminal output
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"

	BrightBlack  = "\033[90m"
	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightCyan   = "\033[96m"
)

// Theme defines the color scheme for UI elements
type Theme struct {
	Success  string
	Warning  string
	Error    string
	Info     string
	Header   string
	Label    string
	Dimmed   string
	Progress string
	Complete string
}

// DefaultTheme returns the default color theme
func DefaultTheme() *Theme {
	return &Theme{
		Success:  BrightGreen,
		Warning:  BrightYellow,
		Error:    BrightRed,
		Info:     BrightCyan,
		Header:   Bold + BrightCyan,
		Label:    Bold,
		Dimmed:   BrightBlack,
		Progress: BrightYellow,
		Complete: BrightGreen,
	}
}

// ColorConfig manages color output settings
type ColorConfig struct {
	Enabled bool
	Theme   *Theme
}

// NewColorConfig creates a configuration honoring NO_COLOR and dumb terminals
func NewColorConfig() *ColorConfig {
	noColor := os.Getenv("NO_COLOR") != ""
	term := os.Getenv("TERM")
	enabled := !noColor && term != "dumb" && term != ""

	return &ColorConfig{
		Enabled: enabled,
		Theme:   DefaultTheme(),
	}
}

// Apply applies a color to text if colors are enabled
func (c *ColorConfig) Apply(color, text string) string {
	if !c.Enabled {
		return text
	}
	return color + text + Reset
}

func (c *ColorConfig) Success(text string) string { return c.Apply(c.Theme.Success, text) }
func (c *ColorConfig) Warning(text string) string { return c.Apply(c.Theme.Warning, text) }
func (c *ColorConfig) Error(text string) string   { return c.Apply(c.Theme.Error, text) }
func (c *ColorConfig) Info(text string) string    { return c.Apply(c.Theme.Info, text) }
func (c *ColorConfig) Header(text string) string  { return c.Apply(c.Theme.Header, text) }
func (c *ColorConfig) Label(text string) string   { return c.Apply(c.Theme.Label, text) }
func (c *ColorConfig) Dimmed(text string) string  { return c.Apply(c.Theme.Dimmed, text) }

// StatusIcon returns a colored status glyph for a result status
func (c *ColorConfig) StatusIcon(status string) string {
	switch strings.ToLower(status) {
	case "updated", "success", "has_update":
		return c.Success("✓")
	case "skipped":
		return c.Dimmed("○")
	case "failed", "error":
		return c.Error("✗")
	default:
		return c.Dimmed("·")
	}
}
