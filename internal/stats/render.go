package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

const barWidth = 40

// RenderText draws the chart as horizontal bars, one per category row.
// Multi-series rows are stacked.
func RenderText(w io.Writer, chart Chart) error {
	if _, err := fmt.Fprintf(w, "%s\n", chart.Title); err != nil {
		return err
	}
	if len(chart.Table) < 2 {
		_, err := fmt.Fprintln(w, "  (no data)")
		return err
	}

	type bar struct {
		label string
		total float64
	}

	bars := make([]bar, 0, len(chart.Table)-1)
	labelWidth := 0
	peak := 0.0
	for _, row := range chart.Table[1:] {
		if len(row) == 0 {
			continue
		}
		b := bar{label: fmt.Sprint(row[0])}
		for _, cell := range row[1:] {
			if v, ok := cell.(float64); ok {
				b.total += v
			}
		}
		if len(b.label) > labelWidth {
			labelWidth = len(b.label)
		}
		peak = math.Max(peak, b.total)
		bars = append(bars, b)
	}

	for _, b := range bars {
		n := 0
		if peak > 0 {
			n = int(math.Round(b.total / peak * barWidth))
		}
		if _, err := fmt.Fprintf(w, "  %-*s |%s %s\n", labelWidth, b.label, strings.Repeat("#", n), humanize.Commaf(b.total)); err != nil {
			return err
		}
	}
	return nil
}
