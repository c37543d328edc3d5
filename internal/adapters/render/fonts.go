package render

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Faces are built at 72 DPI so that a face size equals its pixel height.
const fontDPI = 72

type faceKey struct {
	bold bool
	size int
}

// fontSet owns parsed fonts and a face per (weight, size). Faces are not safe
// for concurrent use; callers serialise through Renderer.mu.
type fontSet struct {
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

func newFontSet() (*fontSet, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &fontSet{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

func (f *fontSet) face(bold bool, size int) (font.Face, error) {
	k := faceKey{bold: bold, size: size}
	if face, ok := f.faces[k]; ok {
		return face, nil
	}

	src := f.regular
	if bold {
		src = f.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     fontDPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face %dpx: %w", size, err)
	}
	f.faces[k] = face
	return face, nil
}

// width returns the advance of s in whole pixels, rounded up.
func (f *fontSet) width(bold bool, size int, s string) (int, error) {
	face, err := f.face(bold, size)
	if err != nil {
		return 0, err
	}
	return font.MeasureString(face, s).Ceil(), nil
}

func (f *fontSet) close() {
	for k, face := range f.faces {
		_ = face.Close()
		delete(f.faces, k)
	}
}
