package sim

import (
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var clearNames = []string{"no clear", "single", "double", "triple", "tetris"}

// WriteTo prints the report as a two-column table.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	p := message.NewPrinter(language.English)

	keys := []string{"Games", "Elapsed", "Mean score", "Std dev", "Median score", "Max score", "Total lines", "Spins"}
	vals := map[string]string{
		"Games":        p.Sprintf("%d", len(r.Games)),
		"Elapsed":      r.Elapsed.Round(time.Millisecond).String(),
		"Mean score":   p.Sprintf("%.1f", r.MeanScore),
		"Std dev":      p.Sprintf("%.1f", r.StdDevScore),
		"Median score": p.Sprintf("%.0f", r.MedianScore),
		"Max score":    p.Sprintf("%d", r.MaxScore),
		"Total lines":  p.Sprintf("%d", r.TotalLines),
		"Spins":        p.Sprintf("%d", r.Spins),
	}
	for n, name := range clearNames {
		k := "Locks: " + name
		keys = append(keys, k)
		vals[k] = p.Sprintf("%d", r.Clears(n))
	}

	n, err := io.WriteString(w, formatTable("blockfall simulation", keys, vals))
	return int64(n), err
}

// formatTable lays out keys and values in a boxed table, measuring cell
// widths in terminal columns.
func formatTable(title string, keys []string, vals map[string]string) string {
	keyW, valW := 0, 0
	for _, k := range keys {
		keyW = max(keyW, runewidth.StringWidth(k))
		valW = max(valW, runewidth.StringWidth(vals[k]))
	}
	keyW += 2
	valW += 2

	inner := keyW + valW + 1
	titleW := runewidth.StringWidth(title)
	if titleW > inner {
		valW += titleW - inner
		inner = titleW
	}
	left := (inner - titleW) / 2

	var b strings.Builder
	top := "+" + strings.Repeat("-", inner) + "+\n"
	divider := "+" + strings.Repeat("-", keyW) + "+" + strings.Repeat("-", valW) + "+\n"

	b.WriteString(top)
	b.WriteString("|" + pad(left) + title + pad(inner-titleW-left) + "|\n")
	b.WriteString(divider)
	for _, k := range keys {
		v := vals[k]
		b.WriteString("| " + k + pad(keyW-2-runewidth.StringWidth(k)) +
			" | " + pad(valW-2-runewidth.StringWidth(v)) + v + " |\n")
	}
	b.WriteString(divider)
	return b.String()
}

func pad(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
