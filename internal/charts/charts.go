// Package charts renders the expense breakdown as a PNG pie chart.
package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"expenseflow/internal/core"
)

// RenderExpensePie renders the category breakdown as a pie chart. Returns
// nil bytes when there is nothing to draw.
func RenderExpensePie(breakdown []core.CategoryShare) ([]byte, error) {
	if len(breakdown) == 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(breakdown))
	for _, share := range breakdown {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: $%s (%.1f%%)", share.Category, share.Amount, share.Percentage),
			Value: share.Amount.Dollars(),
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}

	pie := chart.PieChart{
		Title:  "Expense Breakdown",
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render expense pie chart: %w", err)
	}

	return buffer.Bytes(), nil
}
