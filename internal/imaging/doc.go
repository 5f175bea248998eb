// Package imaging provides the raster building blocks for click markers.
//
// It covers decoding and caching source images, encoding results by file
// extension, and the small set of drawing primitives a marker is made of:
// dimming, spotlight masks, thick lines, rings, filled rectangles and text.
// All operations work with standard Go image types and use a coordinate system
// where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Clipping
//
// Drawing primitives never validate coordinates. Lines, rings and boxes are
// drawn with gogpu/gg on an Overlay, which clips them to the image bounds;
// geometry entirely outside is a no-op, so callers may pass any point.
//
// # Color Representation
//
// Sources are flattened to opaque 8-bit RGB with Opaque before drawing.
// Marker colors are configured as hex strings ("#RRGGBB") and parsed with
// ParseHexColor.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Drawing functions mutate the
// image passed to them and must not run concurrently on the same image.
package imaging
