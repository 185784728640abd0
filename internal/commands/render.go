package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/fintrack-dev/fintrack/internal/evaluate"
	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/money"
)

// Catppuccin Mocha accents.
const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorPeach    lipgloss.Color = "#fab387"
	colorLavender lipgloss.Color = "#b4befe"
	colorOverlay1 lipgloss.Color = "#7f849c"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	labelStyle   = lipgloss.NewStyle().Foreground(colorOverlay1)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	incomeStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	expenseStyle = lipgloss.NewStyle().Foreground(colorRed)
)

const barWidth = 20

// printer writes styled report sections to a command's output.
type printer struct {
	w      io.Writer
	symbol string
}

func newPrinter(w io.Writer, symbol string) *printer {
	return &printer{w: w, symbol: symbol}
}

func (p *printer) title(s string) {
	fmt.Fprintln(p.w, titleStyle.Render(s))
}

func (p *printer) field(label, value string) {
	fmt.Fprintf(p.w, "%s %s\n", labelStyle.Render(label+":"), value)
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) money(m money.Money) string {
	return m.Format(p.symbol)
}

// signed colors an amount green when positive and red when negative.
func (p *printer) signed(m money.Money) string {
	s := p.money(m)
	switch {
	case m.IsPositive():
		return incomeStyle.Render(s)
	case m.IsNegative():
		return expenseStyle.Render(s)
	}
	return s
}

func (p *printer) table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(p.w, t.Render())
}

func (p *printer) transactions(txns []model.Transaction) {
	rows := make([][]string, 0, len(txns))
	for _, t := range txns {
		amount := p.money(t.Amount)
		if t.Kind == model.KindExpense {
			amount = expenseStyle.Render(amount)
		} else {
			amount = incomeStyle.Render(amount)
		}
		rows = append(rows, []string{t.Date.String(), t.Kind.String(), t.Category, amount, t.Description})
	}
	p.table([]string{"Date", "Type", "Category", "Amount", "Description"}, rows)
}

func (p *printer) budgetReport(r evaluate.Report) {
	rows := make([][]string, 0, len(r.Lines))
	for _, l := range r.Lines {
		rows = append(rows, []string{
			l.Category,
			p.money(l.Budgeted),
			p.money(l.Spent),
			p.signed(l.Remaining),
			percent(l.Utilization),
			statusStyle(l.Status).Render(l.Status.String()),
		})
	}
	p.table([]string{"Category", "Budget", "Spent", "Remaining", "Used", "Status"}, rows)
	p.field("Total budget", p.money(r.TotalBudget))
	p.field("Total spent", p.money(r.TotalSpent))
	p.field("Remaining", p.signed(r.TotalRemaining))
	p.field("Overall utilization", percent(r.OverallUtilization))
}

func statusStyle(s evaluate.Status) lipgloss.Style {
	switch s {
	case evaluate.StatusOver:
		return lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	case evaluate.StatusWarning:
		return lipgloss.NewStyle().Foreground(colorYellow)
	case evaluate.StatusNoBudget:
		return lipgloss.NewStyle().Foreground(colorPeach)
	}
	return lipgloss.NewStyle().Foreground(colorGreen)
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// bar draws pct (0-100) as a fixed-width gauge.
func bar(pct float64) string {
	filled := int(pct / 100 * barWidth)
	filled = max(0, min(filled, barWidth))
	return strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)
}

func humanCount(n int) string {
	return humanize.Comma(int64(n))
}
