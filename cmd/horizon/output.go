package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/aristath/horizon/internal/modules/projection"
	"github.com/aristath/horizon/internal/modules/universe"
)

// Palette shared by every table.
var (
	colorBorder  = lipgloss.Color("#4D4C57")
	colorHeader  = lipgloss.Color("#6B50FF")
	colorMuted   = lipgloss.Color("#858392")
	colorMedian  = lipgloss.Color("#00CED1")
	headerStyle  = lipgloss.NewStyle().Foreground(colorHeader).Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numericStyle = cellStyle.Align(lipgloss.Right)
	summaryStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// newTable builds a bordered table whose first textColumns columns are
// left-aligned text and the rest right-aligned numbers. A highlight column of
// -1 highlights nothing.
func newTable(textColumns, highlight int, headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col < textColumns:
				return cellStyle
			case col == highlight:
				return numericStyle.Foreground(colorMedian).Bold(true)
			default:
				return numericStyle
			}
		})
}

func renderProjection(w io.Writer, p *projection.Projection) error {
	summary := fmt.Sprintf("run %s: %d paths over %d years in %s",
		p.RunID, p.Parameters.Simulations, p.Parameters.Years, p.Duration.Round(time.Millisecond))

	t := newTable(1, 4, "year", "contributed", "p5", "p25", "p50", "p75", "p95", "mean")
	for _, y := range p.Years {
		t.Row(
			fmt.Sprintf("%d", y.Year),
			money(y.Contributed),
			money(y.Percentile5),
			money(y.Percentile25),
			money(y.Percentile50),
			money(y.Percentile75),
			money(y.Percentile95),
			money(y.Mean),
		)
	}

	_, err := fmt.Fprintf(w, "%s\n\n%s\n", summaryStyle.Render(summary), t.Render())
	return err
}

func renderMetrics(w io.Writer, m projection.PortfolioMetrics) error {
	sharpe := "n/a"
	if m.SharpeRatio != nil {
		sharpe = fmt.Sprintf("%.3f", *m.SharpeRatio)
	}

	t := newTable(1, -1, "metric", "value").
		Row("expected return", fmt.Sprintf("%.2f%%", m.ExpectedReturn*100)).
		Row("volatility", fmt.Sprintf("%.2f%%", m.Volatility*100)).
		Row("return/volatility", sharpe)

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func renderAssets(w io.Writer, assets []universe.Asset) error {
	t := newTable(2, -1, "key", "name", "return", "volatility")
	for _, a := range assets {
		t.Row(a.Key, a.Name,
			fmt.Sprintf("%.1f%%", a.AnnualReturn*100),
			fmt.Sprintf("%.1f%%", a.AnnualVolatility*100))
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func money(v float64) string {
	return fmt.Sprintf("%.0f", v)
}
