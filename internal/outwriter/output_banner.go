package outwriter

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/huangsam/aiready/internal/contract"
)

// printer writes formatted lines and keeps the first error it sees.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(s string) {
	p.printf("%s\n", s)
}

// renderBanner frames a title and optional subtitle in a rounded box.
func renderBanner(title, subtitle string, cfg *contract.Config) string {
	style := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())
	if cfg.UseColors {
		style = style.Foreground(lipgloss.Color("12")).BorderForeground(lipgloss.Color("8"))
	}
	body := title
	if subtitle != "" {
		body += "\n" + lipgloss.NewStyle().Bold(false).Render(subtitle)
	}
	return style.Render(body)
}

// heading returns a section heading, prefixed with an emoji when enabled.
func heading(cfg *contract.Config, emoji, title string) string {
	if cfg.UseEmojis && emoji != "" {
		return emoji + " " + title
	}
	return title
}

// colorizers returns the red, green and yellow formatters, or plain ones when colors are off.
func colorizers(cfg *contract.Config) (red, green, yellow func(...any) string) {
	if !cfg.UseColors {
		return fmt.Sprint, fmt.Sprint, fmt.Sprint
	}
	return color.New(color.FgRed).SprintFunc(),
		color.New(color.FgGreen).SprintFunc(),
		color.New(color.FgYellow).SprintFunc()
}

// checkMark renders a presence check.
func checkMark(present bool, cfg *contract.Config) string {
	red, green, _ := colorizers(cfg)
	if present {
		return green("✓")
	}
	return red("✗")
}
