package annotate

import (
	"fmt"
	"image/color"

	"github.com/ironsheep/draw-click/internal/imaging"
)

// Ring describes one of the circles drawn around the click point.
type Ring struct {
	Radius    int    `yaml:"radius" json:"radius"`
	Thickness int    `yaml:"thickness" json:"thickness"`
	Color     string `yaml:"color" json:"color"`
}

// Style holds every tunable of the marker geometry and palette.
//
// Colors are "#RRGGBB" strings. DefaultStyle reproduces the stock marker:
// a 100px spotlight in a frame dimmed to 70%, a red crosshair, red and dark
// red rings, a dark red label callout and a black coordinate readout.
type Style struct {
	SpotlightRadius int     `yaml:"spotlight_radius" json:"spotlight_radius"`
	DimOpacity      float64 `yaml:"dim_opacity" json:"dim_opacity"`

	CrosshairArm       int    `yaml:"crosshair_arm" json:"crosshair_arm"`
	CrosshairThickness int    `yaml:"crosshair_thickness" json:"crosshair_thickness"`
	CrosshairColor     string `yaml:"crosshair_color" json:"crosshair_color"`

	InnerRing Ring `yaml:"inner_ring" json:"inner_ring"`
	OuterRing Ring `yaml:"outer_ring" json:"outer_ring"`

	Font FontFamily `yaml:"font" json:"font"`

	LabelScale      float64 `yaml:"label_scale" json:"label_scale"`
	LabelWeight     int     `yaml:"label_weight" json:"label_weight"`
	LabelPadding    int     `yaml:"label_padding" json:"label_padding"`
	LabelColor      string  `yaml:"label_color" json:"label_color"`
	LabelBackground string  `yaml:"label_background" json:"label_background"`

	CoordScale      float64 `yaml:"coord_scale" json:"coord_scale"`
	CoordWeight     int     `yaml:"coord_weight" json:"coord_weight"`
	CoordColor      string  `yaml:"coord_color" json:"coord_color"`
	CoordBackground string  `yaml:"coord_background" json:"coord_background"`
}

// FontFamily is re-exported so configuration files can name a face without
// importing the imaging package.
type FontFamily = imaging.FontFamily

// DefaultStyle returns the stock marker style.
func DefaultStyle() Style {
	return Style{
		SpotlightRadius: 100,
		DimOpacity:      0.3,

		CrosshairArm:       35,
		CrosshairThickness: 3,
		CrosshairColor:     "#FF0000",

		InnerRing: Ring{Radius: 30, Thickness: 3, Color: "#FF0000"},
		OuterRing: Ring{Radius: 50, Thickness: 2, Color: "#C80000"},

		Font: imaging.FontGo,

		LabelScale:      0.7,
		LabelWeight:     2,
		LabelPadding:    8,
		LabelColor:      "#FFFFFF",
		LabelBackground: "#C80000",

		CoordScale:      0.5,
		CoordWeight:     1,
		CoordColor:      "#FFFFFF",
		CoordBackground: "#000000",
	}
}

// Validate reports a field that cannot produce a marker.
func (s Style) Validate() error {
	if s.SpotlightRadius < 0 {
		return fmt.Errorf("spotlight_radius must not be negative, got %d", s.SpotlightRadius)
	}
	if s.DimOpacity < 0 || s.DimOpacity > 1 {
		return fmt.Errorf("dim_opacity must be between 0 and 1, got %g", s.DimOpacity)
	}
	if s.CrosshairArm < 0 {
		return fmt.Errorf("crosshair_arm must not be negative, got %d", s.CrosshairArm)
	}
	for _, f := range []struct {
		name string
		v    int
	}{
		{"crosshair_thickness", s.CrosshairThickness},
		{"inner_ring.radius", s.InnerRing.Radius},
		{"inner_ring.thickness", s.InnerRing.Thickness},
		{"outer_ring.radius", s.OuterRing.Radius},
		{"outer_ring.thickness", s.OuterRing.Thickness},
		{"label_weight", s.LabelWeight},
		{"coord_weight", s.CoordWeight},
	} {
		if f.v < 1 {
			return fmt.Errorf("%s must be positive, got %d", f.name, f.v)
		}
	}
	if s.LabelPadding < 0 {
		return fmt.Errorf("label_padding must not be negative, got %d", s.LabelPadding)
	}
	if s.LabelScale <= 0 || s.CoordScale <= 0 {
		return fmt.Errorf("label_scale and coord_scale must be positive")
	}
	switch s.Font {
	case imaging.FontGo, imaging.FontBasic:
	default:
		return fmt.Errorf("font must be %q or %q, got %q", imaging.FontGo, imaging.FontBasic, s.Font)
	}
	_, err := s.palette()
	return err
}

type palette struct {
	crosshair       color.RGBA
	innerRing       color.RGBA
	outerRing       color.RGBA
	label           color.RGBA
	labelBackground color.RGBA
	coord           color.RGBA
	coordBackground color.RGBA
}

func (s Style) palette() (palette, error) {
	var p palette
	for _, f := range []struct {
		name string
		hex  string
		dst  *color.RGBA
	}{
		{"crosshair_color", s.CrosshairColor, &p.crosshair},
		{"inner_ring.color", s.InnerRing.Color, &p.innerRing},
		{"outer_ring.color", s.OuterRing.Color, &p.outerRing},
		{"label_color", s.LabelColor, &p.label},
		{"label_background", s.LabelBackground, &p.labelBackground},
		{"coord_color", s.CoordColor, &p.coord},
		{"coord_background", s.CoordBackground, &p.coordBackground},
	} {
		c, err := imaging.ParseHexColor(f.hex)
		if err != nil {
			return palette{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = c
	}
	return p, nil
}
