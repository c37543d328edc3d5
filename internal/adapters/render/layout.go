package render

import (
	"fmt"
	"image/color"
	"strconv"

	"automix-bot/internal/core/domain"

	"golang.org/x/text/unicode/norm"
)

// Layout constants. Column anchors depend only on these, never on content.
const (
	Width        = 1100
	Margin       = 24
	HeaderHeight = 64
	RowHeight    = 48
	FooterHeight = 56

	panelRadius = 18

	titleSize   = 36
	headerSize  = 22
	bodySize    = 22
	minTextSize = 10

	anchorRank   = Margin + 40
	anchorName   = Margin + 120
	anchorPoints = Width - Margin - 340
	anchorKills  = Width - Margin - 240
	anchorDeaths = Width - Margin - 140
	anchorKDR    = Width - Margin - 40

	// NameMaxWidth is the pixel budget of the name column.
	NameMaxWidth = anchorPoints - anchorName - 40

	headerTop    = Margin + 64
	headerBottom = headerTop + HeaderHeight - 18
	rowsTop      = headerBottom + 6
)

// KDRPlaceholder stands in for a missing or non-finite ratio.
const KDRPlaceholder = "\u2014"

// Height returns the canvas height for the given number of rows.
func Height(rows int) int {
	return 2*Margin + HeaderHeight + rows*RowHeight + FooterHeight
}

// FormatKDR renders a ratio with two decimals, or the placeholder.
func FormatKDR(row domain.RankingRow) string {
	if !row.HasKDR() {
		return KDRPlaceholder
	}
	return strconv.FormatFloat(*row.KDR, 'f', 2, 64)
}

// Cell is a piece of text at a fixed position. X is the left edge, Y the
// baseline.
type Cell struct {
	Text  string
	X     int
	Y     int
	Size  int
	Bold  bool
	Color color.RGBA
}

type RowLayout struct {
	Rank      int
	RankCell  Cell
	Name      Cell
	Points    Cell
	Kills     Cell
	Deaths    Cell
	KDR       Cell
	Truncated bool
}

// Frame is the fully positioned leaderboard, ready to paint.
type Frame struct {
	Width   int
	Height  int
	Title   Cell
	Headers []Cell
	GridY   []int
	Rows    []RowLayout
}

type column struct {
	label  string
	anchor int
	right  bool
}

var columns = []column{
	{"#", anchorRank, true},
	{"Name", anchorName, false},
	{"Points", anchorPoints, true},
	{"Kills", anchorKills, true},
	{"Deaths", anchorDeaths, true},
	{"KDR", anchorKDR, true},
}

func (r *Renderer) layout(snapshot domain.RankingSnapshot, title string, topN int) (*Frame, error) {
	rows := snapshot.Top(topN)
	frame := &Frame{
		Width:  Width,
		Height: Height(len(rows)),
	}

	fittedTitle, err := FitText(r.measure(true), title, Width-2*Margin-48, titleSize, minTextSize)
	if err != nil {
		return nil, &domain.RenderError{Op: "layout title", Err: err}
	}
	frame.Title = Cell{
		Text:  fittedTitle.Text,
		X:     Margin + 24,
		Y:     Margin + 14 + 32,
		Size:  fittedTitle.Size,
		Bold:  true,
		Color: colorText,
	}

	for _, col := range columns {
		cell, err := r.anchored(col.label, col.anchor, headerTop+38, headerSize, true, colorMuted, col.right)
		if err != nil {
			return nil, &domain.RenderError{Op: "layout header", Err: err}
		}
		frame.Headers = append(frame.Headers, cell)
	}

	for i := 0; i <= len(rows); i++ {
		frame.GridY = append(frame.GridY, rowsTop+i*RowHeight)
	}

	for i, row := range rows {
		rl, err := r.layoutRow(i, row)
		if err != nil {
			return nil, &domain.RenderError{Op: fmt.Sprintf("layout row %d", i+1), Err: err}
		}
		frame.Rows = append(frame.Rows, rl)
	}

	return frame, nil
}

func (r *Renderer) layoutRow(index int, row domain.RankingRow) (RowLayout, error) {
	rank := index + 1
	baseline := rowsTop + index*RowHeight + 10 + 22
	rl := RowLayout{Rank: rank}

	var err error
	if rl.RankCell, err = r.anchored(strconv.Itoa(rank), anchorRank, baseline, bodySize, true, RankColor(rank), true); err != nil {
		return rl, err
	}

	name := norm.NFC.String(row.Name)
	fitted, err := FitText(r.measure(false), name, NameMaxWidth, bodySize, minTextSize)
	if err != nil {
		return rl, err
	}
	rl.Name = Cell{Text: fitted.Text, X: anchorName, Y: baseline, Size: fitted.Size, Color: colorText}
	rl.Truncated = fitted.Truncated

	numeric := []struct {
		dst    *Cell
		text   string
		anchor int
	}{
		{&rl.Points, strconv.Itoa(row.Points), anchorPoints},
		{&rl.Kills, strconv.Itoa(row.Kills), anchorKills},
		{&rl.Deaths, strconv.Itoa(row.Deaths), anchorDeaths},
		{&rl.KDR, FormatKDR(row), anchorKDR},
	}
	for _, n := range numeric {
		if *n.dst, err = r.anchored(n.text, n.anchor, baseline, bodySize, false, colorText, true); err != nil {
			return rl, err
		}
	}

	return rl, nil
}

func (r *Renderer) anchored(text string, anchor, baseline, size int, bold bool, c color.RGBA, right bool) (Cell, error) {
	x := anchor
	if right {
		w, err := r.fonts.width(bold, size, text)
		if err != nil {
			return Cell{}, err
		}
		x = anchor - w
	}
	return Cell{Text: text, X: x, Y: baseline, Size: size, Bold: bold, Color: c}, nil
}

func (r *Renderer) measure(bold bool) MeasureFunc {
	return func(size int, s string) (int, error) {
		return r.fonts.width(bold, size, s)
	}
}
