package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Simplici0/pricecalc/internal/money"
	"github.com/Simplici0/pricecalc/internal/pricing"
)

var (
	colorPrimary = lipgloss.Color("#8B5CF6")
	colorWarning = lipgloss.Color("#F59E0B")
	colorMuted   = lipgloss.Color("#6B7280")
	colorText    = lipgloss.Color("#94A3B8")

	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorText).
			PaddingLeft(2).
			Width(30)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			PaddingLeft(2)

	headerCellStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Align(lipgloss.Center)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Align(lipgloss.Right)
)

// view writes labelled results to a terminal.
type view struct {
	w io.Writer
}

func (v view) title(s string) {
	fmt.Fprintln(v.w, titleStyle.Render(s))
}

func (v view) row(label, value string) {
	fmt.Fprintln(v.w, labelStyle.Render(label)+valueStyle.Render(value))
}

func (v view) warn(s string) {
	fmt.Fprintln(v.w, warnStyle.Render(s))
}

func (v view) blank() {
	fmt.Fprintln(v.w)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		})
}

// projectionTable renders the month rows followed by a totals row.
func projectionTable(p pricing.Projection, f *money.Formatter) string {
	t := newTable("Month", "Units", "Revenue", "Variable cost", "Gross profit", "Margin", "Fixed", "Operating")
	for _, r := range p.Rows {
		t.Row(
			strconv.Itoa(r.Month),
			money.Fixed(r.Units, 2),
			f.Format(r.RevenueExcl),
			f.Format(r.VariableCost),
			f.Format(r.GrossProfit),
			money.Percent(r.MarginPct),
			f.Format(r.FixedCosts),
			f.Format(r.OperatingProfit),
		)
	}

	tot := p.Totals
	t.Row(
		"Total",
		"",
		f.Format(tot.RevenueExcl),
		f.Format(tot.VariableCost),
		f.Format(tot.GrossProfit),
		money.Percent(pricing.MarginPctFrom(tot.RevenueExcl, tot.VariableCost)),
		f.Format(tot.FixedCosts),
		f.Format(tot.OperatingProfit),
	)
	return t.String()
}
