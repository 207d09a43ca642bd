package termhost

import (
	"math"
	"strings"

	"github.com/michaelquigley/dbfader"
)

const columnWidth = 12

type column struct {
	name     string
	selected bool
	hidden   bool
	readout  dbfader.Readout
}

// render draws the console as text, rows high, one column per strip
func render(columns []column, rows int) string {
	var sb strings.Builder
	for _, c := range columns {
		marker := " "
		if c.selected {
			marker = ">"
		}
		sb.WriteString(pad(marker+c.name, columnWidth))
	}
	sb.WriteString("\r\n")

	for row := 0; row < rows; row++ {
		for _, c := range columns {
			if c.hidden {
				sb.WriteString(pad("   ~", columnWidth))
				continue
			}
			sb.WriteString(pad(cell(c.readout, row, rows), columnWidth))
		}
		sb.WriteString("\r\n")
	}

	for _, c := range columns {
		level := ""
		if !c.hidden {
			level = dbfader.FormatLevel(c.readout.Level)
		}
		sb.WriteString(pad(level, columnWidth))
	}
	sb.WriteString("\r\n")
	return sb.String()
}

func cell(r dbfader.Readout, row, rows int) string {
	var sb strings.Builder
	sb.WriteString("  ")
	if int(math.Floor(float64(r.HandlePosition))) == row {
		sb.WriteString("=O=")
	} else {
		sb.WriteString(" | ")
	}
	sb.WriteString(" ")
	for ch := range r.Signal {
		sb.WriteString(bar(r.Signal[ch], r.PeakPositions[ch], row, rows))
	}
	return sb.String()
}

// bar returns the glyph of one meter channel at row, counting rows from the top
func bar(signal, peak float32, row, rows int) string {
	fromBottom := rows - 1 - row
	if peak > 0 && fromBottom == heightOf(peak, rows)-1 {
		return "-"
	}
	if fromBottom < heightOf(signal, rows) {
		return "#"
	}
	return "."
}

func heightOf(normalized float32, rows int) int {
	return int(math.Ceil(float64(normalized) * float64(rows)))
}

func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return string([]rune(s)[:width])
	}
	return s + strings.Repeat(" ", width-n)
}

func clearScreen() string {
	return "\x1b[H\x1b[2J"
}
