// Package annotate draws a "click happened here" marker onto an image.
//
// A marker dims the whole frame except a circular spotlight around the
// point, then draws a crosshair, two concentric rings, a "Click: <label>"
// callout and an "(x, y)" readout on top. Geometry and colors come from a
// Style; DefaultStyle is the stock look.
package annotate

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/ironsheep/draw-click/internal/imaging"
)

// ErrUnreadableImage is returned when the source image cannot be opened or
// decoded. Nothing is written in that case.
var ErrUnreadableImage = errors.New("cannot read image")

const (
	// labelOffsetX/labelOffsetY place the callout baseline up and to the right of the point.
	labelOffsetX = 60
	labelOffsetY = -40
	// labelRightMargin keeps the callout text this far from the right edge.
	labelRightMargin = 20
	// labelMinY keeps the callout baseline below the top edge.
	labelMinY = 30
)

// coordinate readout box, relative to the point, corners inclusive
const (
	coordBoxLeft   = -40
	coordBoxTop    = 55
	coordBoxRight  = 40
	coordBoxBottom = 80
	coordTextX     = -35
	coordTextY     = 73
)

// Request names one annotation.
type Request struct {
	// ImagePath is the source image.
	ImagePath string `json:"path"`

	// X and Y locate the click in pixels. They are not range checked.
	X int `json:"x"`
	Y int `json:"y"`

	// Label is rendered verbatim after "Click: ".
	Label string `json:"label"`

	// OutputPath is where the result goes. Empty means OutputPath(ImagePath).
	OutputPath string `json:"output_path,omitempty"`
}

// Box is a rectangle with inclusive corners, in image pixels.
type Box struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rect converts b into an image.Rectangle with an exclusive Max.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2+1, b.Y2+1)
}

// Layout records where the text boxes of a marker were placed.
type Layout struct {
	LabelBox Box `json:"label_box"`
	CoordBox Box `json:"coord_box"`
}

// Result describes a written annotation.
type Result struct {
	OutputPath string `json:"output_path"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Layout
}

// Option configures an Annotator.
type Option func(*Annotator)

// WithLogger sends debug output to l. By default the Annotator is silent.
func WithLogger(l *log.Logger) Option {
	return func(a *Annotator) {
		a.log = l
	}
}

// Annotator renders markers and writes them to disk.
type Annotator struct {
	cache *imaging.ImageCache
	style Style
	save  imaging.SaveOptions
	log   *log.Logger
}

// New creates an Annotator that decodes sources through cache.
func New(cache *imaging.ImageCache, style Style, save imaging.SaveOptions, opts ...Option) *Annotator {
	a := &Annotator{
		cache: cache,
		style: style,
		save:  save,
		log:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Style returns the style the Annotator draws with.
func (a *Annotator) Style() Style {
	return a.style
}

// Annotate loads the source image, renders the marker and writes the result.
//
// The source decode is taken from the cache, so the spotlight is restored from
// the same pixels the dimmed frame was built from without a second read.
// After writing, the output path is evicted from the cache so a later Load of
// that path sees the new file.
func (a *Annotator) Annotate(req Request) (*Result, error) {
	src, err := a.cache.Load(req.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadableImage, req.ImagePath, err)
	}

	out := req.OutputPath
	if out == "" {
		out = OutputPath(req.ImagePath)
	}

	canvas, layout, err := a.Render(src, req.X, req.Y, req.Label)
	if err != nil {
		return nil, err
	}

	if err := imaging.Save(canvas, out, a.save); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", out, err)
	}
	a.cache.Evict(out)

	b := canvas.Bounds()
	a.log.Printf("annotated %s at (%d,%d) -> %s (%dx%d)", req.ImagePath, req.X, req.Y, out, b.Dx(), b.Dy())

	return &Result{
		OutputPath: out,
		Width:      b.Dx(),
		Height:     b.Dy(),
		Layout:     layout,
	}, nil
}

// Render draws the marker for (x, y) on a flattened copy of src.
//
// src is not modified. The returned image has the same size as src with
// bounds starting at (0,0).
func (a *Annotator) Render(src image.Image, x, y int, label string) (*image.RGBA, Layout, error) {
	s := a.style
	pal, err := s.palette()
	if err != nil {
		return nil, Layout{}, fmt.Errorf("invalid style: %w", err)
	}

	labelFace, err := imaging.Face(s.Font, s.LabelScale, s.LabelWeight)
	if err != nil {
		return nil, Layout{}, err
	}
	defer labelFace.Close()

	coordFace, err := imaging.Face(s.Font, s.CoordScale, s.CoordWeight)
	if err != nil {
		return nil, Layout{}, err
	}
	defer coordFace.Close()

	original := imaging.Opaque(src)
	canvas := imaging.Dim(original, s.DimOpacity)
	center := image.Pt(x, y)

	// spotlight
	imaging.Restore(canvas, original, imaging.DiscMask(canvas.Bounds(), center, s.SpotlightRadius))

	// Shapes go onto one overlay in paint order and are composited before
	// the text, which is drawn last in both boxes.
	marks := imaging.NewOverlay(canvas.Bounds())

	// crosshair and rings
	arm := s.CrosshairArm
	marks.Line(image.Pt(x-arm, y), image.Pt(x+arm, y), s.CrosshairThickness, pal.crosshair)
	marks.Line(image.Pt(x, y-arm), image.Pt(x, y+arm), s.CrosshairThickness, pal.crosshair)
	marks.Circle(center, s.InnerRing.Radius, s.InnerRing.Thickness, pal.innerRing)
	marks.Circle(center, s.OuterRing.Radius, s.OuterRing.Thickness, pal.outerRing)

	// callout
	text := LabelText(label)
	tw, th := imaging.MeasureText(labelFace, text)
	origin := LabelOrigin(x, y, canvas.Bounds().Dx(), tw)
	pad := s.LabelPadding
	labelBox := Box{
		X1: origin.X - pad,
		Y1: origin.Y - th - pad,
		X2: origin.X + tw + pad,
		Y2: origin.Y + pad,
	}
	marks.Rect(labelBox.Rect(), pal.labelBackground)

	// coordinate readout
	coordBox := Box{
		X1: x + coordBoxLeft,
		Y1: y + coordBoxTop,
		X2: x + coordBoxRight,
		Y2: y + coordBoxBottom,
	}
	marks.Rect(coordBox.Rect(), pal.coordBackground)

	marks.Composite(canvas)
	imaging.DrawText(canvas, labelFace, origin, text, pal.label)
	imaging.DrawText(canvas, coordFace, image.Pt(x+coordTextX, y+coordTextY), CoordText(x, y), pal.coord)

	return canvas, Layout{LabelBox: labelBox, CoordBox: coordBox}, nil
}

// LabelText is the callout text for label.
func LabelText(label string) string {
	return "Click: " + label
}

// CoordText is the readout text for (x, y).
func CoordText(x, y int) string {
	return fmt.Sprintf("(%d, %d)", x, y)
}

// LabelOrigin returns the baseline-left corner of the callout text.
//
// The callout sits 60px right of the point unless that would bring the text
// within 20px of the right edge, in which case it shifts left. Vertically it
// sits 40px above the point but never above y=30. There is no left-edge clamp.
func LabelOrigin(x, y, imageWidth, textWidth int) image.Point {
	return image.Pt(
		min(x+labelOffsetX, imageWidth-textWidth-labelRightMargin),
		max(y+labelOffsetY, labelMinY),
	)
}

// OutputPath derives the default output file from an input path.
//
// A trailing ".png" becomes "-click.png". Any other extension keeps its
// extension with "-click" inserted before it, and a path without an extension
// gets "-click.png" appended, so the source is never overwritten.
func OutputPath(input string) string {
	if strings.HasSuffix(input, ".png") {
		return strings.TrimSuffix(input, ".png") + "-click.png"
	}
	ext := filepath.Ext(input)
	if ext == "" {
		return input + "-click.png"
	}
	return strings.TrimSuffix(input, ext) + "-click" + ext
}
