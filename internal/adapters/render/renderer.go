package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sync"

	"automix-bot/internal/core/domain"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// FileName is the attachment name the image is uploaded under.
const FileName = "leaderboard.png"

type Renderer struct {
	mu    sync.Mutex
	fonts *fontSet
}

func NewRenderer() (*Renderer, error) {
	fonts, err := newFontSet()
	if err != nil {
		return nil, &domain.RenderError{Op: "load fonts", Err: err}
	}
	return &Renderer{fonts: fonts}, nil
}

// Layout positions every piece of text without painting anything.
func (r *Renderer) Layout(snapshot domain.RankingSnapshot, title string, topN int) (*Frame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.layout(snapshot, title, topN)
}

// Render draws the leaderboard and encodes it as PNG.
func (r *Renderer) Render(snapshot domain.RankingSnapshot, title string, topN int) (out []byte, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			out = nil
			err = &domain.RenderError{Op: "paint", Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	frame, err := r.layout(snapshot, title, topN)
	if err != nil {
		return nil, err
	}

	img, err := r.paint(frame)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &domain.RenderError{Op: "encode", Err: err}
	}
	return buf.Bytes(), nil
}

func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fonts.close()
}

func (r *Renderer) paint(frame *Frame) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	fillRoundedRect(img, image.Rect(Margin, Margin, frame.Width-Margin, frame.Height-Margin), panelRadius, colorPanel)

	header := image.Rect(Margin+12, headerTop, frame.Width-Margin-12, headerBottom)
	draw.Draw(img, header, image.NewUniform(colorPanelAlt), image.Point{}, draw.Src)

	grid := image.NewUniform(colorGrid)
	for _, y := range frame.GridY {
		draw.Draw(img, image.Rect(header.Min.X, y, header.Max.X, y+1), grid, image.Point{}, draw.Over)
	}

	cells := []Cell{frame.Title}
	cells = append(cells, frame.Headers...)
	for _, row := range frame.Rows {
		cells = append(cells, row.RankCell, row.Name, row.Points, row.Kills, row.Deaths, row.KDR)
	}

	for _, c := range cells {
		if err := r.drawCell(img, c); err != nil {
			return nil, &domain.RenderError{Op: "draw text", Err: err}
		}
	}

	return img, nil
}

func (r *Renderer) drawCell(dst draw.Image, c Cell) error {
	face, err := r.fonts.face(c.Bold, c.Size)
	if err != nil {
		return err
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c.Color),
		Face: face,
		Dot:  fixed.P(c.X, c.Y),
	}
	d.DrawString(c.Text)
	return nil
}

func fillRoundedRect(dst *image.RGBA, rect image.Rectangle, radius float32, c color.Color) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())

	x0, y0 := float32(rect.Min.X), float32(rect.Min.Y)
	x1, y1 := float32(rect.Max.X), float32(rect.Max.Y)

	z.MoveTo(x0+radius, y0)
	z.LineTo(x1-radius, y0)
	z.QuadTo(x1, y0, x1, y0+radius)
	z.LineTo(x1, y1-radius)
	z.QuadTo(x1, y1, x1-radius, y1)
	z.LineTo(x0+radius, y1)
	z.QuadTo(x0, y1, x0, y1-radius)
	z.LineTo(x0, y0+radius)
	z.QuadTo(x0, y0, x0+radius, y0)
	z.ClosePath()

	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}
