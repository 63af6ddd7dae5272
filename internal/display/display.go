// Package display renders cookbook data for the terminal using lipgloss.
//
// A [Printer] writes styled lines to any io.Writer. Colours are dropped
// automatically when the writer is not a terminal.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	// BannerStyle: muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// Recipe names: soft mint.
	recipeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	// Ingredient names: soft sky blue.
	ingredientStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	numberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))
)

// ── Printer ──────────────────────────────────────────────────────

// Printer writes styled output. Safe for concurrent use.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Println writes one line.
func (p *Printer) Println(a ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, a...)
}

// PrintInfo prints a primary line.
func (p *Printer) PrintInfo(text string) {
	p.Println(primaryStyle.Render(text))
}

// PrintHint prints a dimmed line.
func (p *Printer) PrintHint(text string) {
	p.Println(secondaryStyle.Render(text))
}

// PrintUrgent prints an error line.
func (p *Printer) PrintUrgent(text string) {
	p.Println(urgentStyle.Render(text))
}

// PrintSummary prints a recipe summary.
func (p *Printer) PrintSummary(s *domain.Summary) {
	p.Println(RenderSummary(s))
}

// PrintEntry prints one stored entry.
func (p *Printer) PrintEntry(e domain.Entry) {
	p.Println(RenderEntry(e))
}

// PrintList prints a listing of entries.
func (p *Printer) PrintList(entries []domain.Entry) {
	p.Println(RenderList(entries))
}

// ── Renderers ────────────────────────────────────────────────────

// RenderSummary formats a summary as a header line followed by one line per
// ingredient, in the order the summary lists them.
func RenderSummary(s *domain.Summary) string {
	var b strings.Builder
	b.WriteString(recipeStyle.Render(s.Name))
	b.WriteString(secondaryStyle.Render("  cook time "))
	b.WriteString(numberStyle.Render(formatNumber(s.CookTime)))

	width := 0
	for _, ing := range s.Ingredients {
		width = max(width, len(ing.Name))
	}
	for _, ing := range s.Ingredients {
		b.WriteString("\n  ")
		b.WriteString(ingredientStyle.Render(ing.Name + strings.Repeat(" ", width-len(ing.Name))))
		b.WriteString(sepStyle.Render("  x "))
		b.WriteString(numberStyle.Render(formatNumber(ing.Quantity)))
	}
	if len(s.Ingredients) == 0 {
		b.WriteString("\n  ")
		b.WriteString(secondaryStyle.Render("(no ingredients)"))
	}
	return b.String()
}

// RenderEntry formats one entry with its cook time or requirements.
func RenderEntry(e domain.Entry) string {
	var b strings.Builder
	switch domain.ItemType(e.Type) {
	case domain.TypeIngredient:
		b.WriteString(ingredientStyle.Render(e.Name))
		b.WriteString(secondaryStyle.Render("  ingredient, cook time "))
		if e.CookTime != nil {
			b.WriteString(numberStyle.Render(formatNumber(*e.CookTime)))
		}
	default:
		b.WriteString(recipeStyle.Render(e.Name))
		b.WriteString(secondaryStyle.Render("  recipe"))
		for _, req := range e.RequiredItems {
			b.WriteString("\n  ")
			b.WriteString(primaryStyle.Render(req.Name))
			b.WriteString(sepStyle.Render(" x "))
			b.WriteString(numberStyle.Render(formatNumber(req.Quantity)))
		}
	}
	return b.String()
}

// RenderList formats entries as a two-column listing.
func RenderList(entries []domain.Entry) string {
	if len(entries) == 0 {
		return secondaryStyle.Render("no entries")
	}

	width := 0
	for _, e := range entries {
		width = max(width, len(e.Name))
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name + strings.Repeat(" ", width-len(e.Name))
		if domain.ItemType(e.Type) == domain.TypeRecipe {
			lines = append(lines, recipeStyle.Render(name)+"  "+secondaryStyle.Render(fmt.Sprintf("recipe (%d items)", len(e.RequiredItems))))
			continue
		}
		detail := "ingredient"
		if e.CookTime != nil {
			detail += " " + formatNumber(*e.CookTime)
		}
		lines = append(lines, ingredientStyle.Render(name)+"  "+secondaryStyle.Render(detail))
	}
	return strings.Join(lines, "\n")
}

// formatNumber prints whole numbers without a fraction and others with the
// shortest exact representation.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
