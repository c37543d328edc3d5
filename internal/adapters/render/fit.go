package render

// Ellipsis is appended to names that had to be cut to fit their column.
const Ellipsis = "…"

// MeasureFunc returns the pixel width of s at the given font size.
type MeasureFunc func(size int, s string) (int, error)

// Fitted is the outcome of fitting a string into a pixel budget.
type Fitted struct {
	Text      string
	Size      int
	Truncated bool
}

// FitText shrinks text one pixel size at a time from baseSize down to
// minSize until it fits maxPx. If it still does not fit at minSize, trailing
// runes are dropped and Ellipsis appended until the result fits or a single
// rune remains.
func FitText(measure MeasureFunc, text string, maxPx, baseSize, minSize int) (Fitted, error) {
	if minSize > baseSize {
		minSize = baseSize
	}

	for size := baseSize; size >= minSize; size-- {
		w, err := measure(size, text)
		if err != nil {
			return Fitted{}, err
		}
		if w <= maxPx {
			return Fitted{Text: text, Size: size}, nil
		}
	}

	runes := []rune(text)
	for len(runes) > 1 {
		w, err := measure(minSize, string(runes)+Ellipsis)
		if err != nil {
			return Fitted{}, err
		}
		if w <= maxPx {
			break
		}
		runes = runes[:len(runes)-1]
	}

	return Fitted{Text: string(runes) + Ellipsis, Size: minSize, Truncated: true}, nil
}
