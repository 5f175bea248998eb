package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontFamily selects the typeface used for marker text.
type FontFamily string

const (
	// FontGo renders with the scalable Go fonts (regular, or bold for weight >= 2).
	FontGo FontFamily = "go"

	// FontBasic renders with the fixed 7x13 bitmap face; scale and weight are ignored.
	FontBasic FontFamily = "basic"
)

// PointsPerScale converts a font scale into a point size at 72 DPI.
// Scale 1.0 yields glyphs roughly 22px tall for capitals.
const PointsPerScale = 30.0

var (
	fontsOnce   sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font
	fontsErr    error
)

func parseFonts() error {
	fontsOnce.Do(func() {
		regularFont, fontsErr = opentype.Parse(goregular.TTF)
		if fontsErr != nil {
			return
		}
		boldFont, fontsErr = opentype.Parse(gobold.TTF)
	})
	return fontsErr
}

// Face returns a font face for the family at the given scale and weight.
//
// Weight 1 is regular and weight 2 or more is bold. The caller should Close
// the returned face when done.
func Face(family FontFamily, scale float64, weight int) (font.Face, error) {
	switch family {
	case FontBasic:
		return basicfont.Face7x13, nil
	case FontGo, "":
	default:
		return nil, fmt.Errorf("unknown font family: %s", family)
	}

	if scale <= 0 {
		return nil, fmt.Errorf("font scale must be positive, got %g", scale)
	}
	if err := parseFonts(); err != nil {
		return nil, fmt.Errorf("failed to parse embedded fonts: %w", err)
	}

	f := regularFont
	if weight >= 2 {
		f = boldFont
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    PointsPerScale * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

// MeasureText returns the advance width of text and its height above the
// baseline, both in whole pixels.
//
// The height comes from the inked bounds, so "Click" measures to the cap
// height. Text with no ink above the baseline falls back to the face ascent.
func MeasureText(face font.Face, text string) (width, height int) {
	bounds, advance := font.BoundString(face, text)
	width = advance.Ceil()
	height = (-bounds.Min.Y).Ceil()
	if height <= 0 {
		height = face.Metrics().Ascent.Ceil()
	}
	return width, height
}

// DrawText renders text with its baseline-left corner at origin.
func DrawText(img draw.Image, face font.Face, origin image.Point, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(origin.X, origin.Y),
	}
	d.DrawString(text)
}
