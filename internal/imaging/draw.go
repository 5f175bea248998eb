package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
)

// Opaque returns an RGBA copy of img with alpha dropped.
//
// Color channels are kept as stored (non-premultiplied) and every pixel is
// made fully opaque, so a screenshot with a transparent background keeps its
// RGB values instead of turning black. The copy's bounds start at (0,0).
func Opaque(img image.Image) *image.RGBA {
	src := imaging.Clone(img)
	dst := image.NewRGBA(src.Bounds())
	for i := 0; i < len(src.Pix); i += 4 {
		dst.Pix[i+0] = src.Pix[i+0]
		dst.Pix[i+1] = src.Pix[i+1]
		dst.Pix[i+2] = src.Pix[i+2]
		dst.Pix[i+3] = 0xff
	}
	return dst
}

// Dim blends a full-frame black overlay over img.
//
// opacity is the overlay's share of the result: 0.3 keeps 70% of every
// channel. The result has the same size as img with bounds at (0,0).
func Dim(img image.Image, opacity float64) *image.RGBA {
	overlay := image.NewRGBA(img.Bounds())
	draw.Draw(overlay, overlay.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return blend.Opacity(img, overlay, opacity)
}

// DiscMask returns an alpha mask the size of bounds that is fully set inside
// the disc of the given radius around center and zero elsewhere.
//
// The disc is filled with gg around the center of the center pixel and then
// thresholded at half coverage, so the mask has hard edges and a pixel is
// set when its center lies inside the circle. Parts of the disc outside
// bounds are dropped.
func DiscMask(bounds image.Rectangle, center image.Point, radius int) *image.Alpha {
	mask := image.NewAlpha(bounds)
	if radius < 0 {
		return mask
	}

	area := image.Rect(center.X-radius-1, center.Y-radius-1, center.X+radius+2, center.Y+radius+2).Intersect(bounds)
	if area.Empty() {
		return mask
	}

	dc := gg.NewContext(area.Dx(), area.Dy())
	dc.SetRGB(1, 1, 1)
	dc.DrawCircle(float64(center.X-area.Min.X)+0.5, float64(center.Y-area.Min.Y)+0.5, float64(radius))
	dc.Fill()

	disc := dc.Image()
	origin := disc.Bounds().Min
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			_, _, _, a := disc.At(origin.X+x-area.Min.X, origin.Y+y-area.Min.Y).RGBA()
			if a >= 0x8000 {
				mask.Pix[mask.PixOffset(x, y)] = 0xff
			}
		}
	}
	return mask
}

// Restore copies src into dst wherever mask is set. Pixels under a zero mask
// are left untouched; under a full mask they become exactly the source pixel.
func Restore(dst *image.RGBA, src image.Image, mask *image.Alpha) {
	draw.DrawMask(dst, dst.Bounds(), src, dst.Bounds().Min, mask, dst.Bounds().Min, draw.Over)
}

// Overlay collects marker shapes on a transparent gg context covering bounds
// and composites them onto an image in one pass.
//
// Shapes are addressed in image pixels. A pixel (x, y) is the unit square
// whose center gg sees at (x+0.5, y+0.5), so odd line widths and integer
// rectangles land on whole pixels. Anything outside bounds is clipped by gg.
// Shapes are painted in the order they are added.
type Overlay struct {
	dc     *gg.Context
	bounds image.Rectangle
}

// NewOverlay creates an empty overlay for an image with the given bounds.
func NewOverlay(bounds image.Rectangle) *Overlay {
	return &Overlay{
		dc:     gg.NewContext(bounds.Dx(), bounds.Dy()),
		bounds: bounds,
	}
}

// Line strokes a line from p0 to p1, both end pixels included.
func (o *Overlay) Line(p0, p1 image.Point, thickness int, c color.Color) {
	x0, y0 := o.center(p0)
	x1, y1 := o.center(p1)

	// stretch half a pixel past each end so the end pixels are fully covered
	dx, dy := x1-x0, y1-y0
	if l := math.Hypot(dx, dy); l > 0 {
		ux, uy := dx/l/2, dy/l/2
		x0, y0, x1, y1 = x0-ux, y0-uy, x1+ux, y1+uy
	} else {
		x0, x1 = x0-0.5, x1+0.5
	}

	o.setColor(c)
	o.dc.SetLineWidth(lineWidth(thickness))
	o.dc.MoveTo(x0, y0)
	o.dc.LineTo(x1, y1)
	o.dc.Stroke()
}

// Circle strokes a ring of the given radius around center. The stroke is
// centered on the radius, so thickness 3 at radius 30 covers 28.5 to 31.5.
func (o *Overlay) Circle(center image.Point, radius, thickness int, c color.Color) {
	if radius < 0 {
		return
	}
	cx, cy := o.center(center)

	o.setColor(c)
	o.dc.SetLineWidth(lineWidth(thickness))
	o.dc.DrawCircle(cx, cy, float64(radius))
	o.dc.Stroke()
}

// Rect fills r with a solid color. Max is exclusive, as everywhere in
// image.Rectangle.
func (o *Overlay) Rect(r image.Rectangle, c color.Color) {
	r = r.Canon()
	if r.Empty() {
		return
	}

	o.setColor(c)
	o.dc.DrawRectangle(float64(r.Min.X-o.bounds.Min.X), float64(r.Min.Y-o.bounds.Min.Y), float64(r.Dx()), float64(r.Dy()))
	o.dc.Fill()
}

// Composite draws the collected shapes over dst.
func (o *Overlay) Composite(dst draw.Image) {
	shapes := o.dc.Image()
	draw.Draw(dst, o.bounds, shapes, shapes.Bounds().Min, draw.Over)
}

func (o *Overlay) center(p image.Point) (float64, float64) {
	return float64(p.X-o.bounds.Min.X) + 0.5, float64(p.Y-o.bounds.Min.Y) + 0.5
}

func (o *Overlay) setColor(c color.Color) {
	r, g, b, _ := c.RGBA()
	o.dc.SetRGB(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff)
}

func lineWidth(thickness int) float64 {
	return float64(max(thickness, 1))
}
