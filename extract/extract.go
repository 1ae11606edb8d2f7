// Package extract rebuilds standalone sprite images out of a packed atlas.
//
// All work is done on *image.NRGBA so that partially transparent pixels
// come out of the atlas exactly as they went in; the image/draw fast paths
// go through premultiplied alpha and would round them.
package extract

import (
	"fmt"
	"image"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-spritesplit/atlas"
)

// MaxCanvasPixels bounds the area of an untrimmed canvas, 8192x8192. Larger
// source sizes are rejected as a GeometryError instead of being allocated.
const MaxCanvasPixels = 8192 * 8192

// ErrEmptyFrame is returned for frames which would produce an image with no
// pixels. Callers should skip such frames rather than write them out.
var ErrEmptyFrame = errors.New("extract: frame has zero area")

// GeometryError reports a rectangle that does not fit where it must.
type GeometryError struct {
	Name   string
	Reason string
	Rect   image.Rectangle
	Bounds image.Rectangle
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("extract: frame %q: %s: %v does not fit in %v", e.Name, e.Reason, e.Rect, e.Bounds)
}

// Frame produces the final image for one frame: crop, then undo rotation,
// then undo trimming. src is only read, so one atlas can serve many
// concurrent calls.
func Frame(src *image.NRGBA, fd atlas.FrameDescriptor) (*image.NRGBA, error) {
	if fd.Frame.Empty() {
		return nil, ErrEmptyFrame
	}

	// Frame coordinates are relative to the atlas' top-left corner.
	r := fd.Frame.Rectangle().Add(src.Rect.Min)
	if !r.In(src.Rect) {
		return nil, &GeometryError{
			Name:   fd.Name,
			Reason: "frame outside atlas",
			Rect:   fd.Frame.Rectangle(),
			Bounds: src.Rect.Sub(src.Rect.Min),
		}
	}

	img := Crop(src, r)
	if fd.Rotated {
		img = RotateCCW(img)
	}
	if !fd.Trimmed {
		return img, nil
	}

	if fd.SourceSize.W <= 0 || fd.SourceSize.H <= 0 {
		return nil, ErrEmptyFrame
	}
	out, err := Untrim(img, image.Pt(fd.SpriteSource.X, fd.SpriteSource.Y), fd.SourceSize.Point())
	if err != nil {
		if ge, ok := err.(*GeometryError); ok {
			ge.Name = fd.Name
		}
		return nil, err
	}
	return out, nil
}

// Crop copies r out of src into a new image whose bounds start at (0,0).
// r must lie within src's bounds.
func Crop(src *image.NRGBA, r image.Rectangle) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	blit(dst, image.Point{}, src, r)
	return dst
}

// RotateCCW turns img a quarter turn counter-clockwise. A w x h image
// becomes h x w. This undoes the clockwise turn packers apply to frames
// they mark as rotated.
func RotateCCW(img *image.NRGBA) *image.NRGBA {
	b := img.Rect
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			di := dst.PixOffset(y, w-1-x)
			copy(dst.Pix[di:di+4], img.Pix[si:si+4])
		}
	}
	return dst
}

// RotateCW turns img a quarter turn clockwise, the way packers store
// rotated frames.
func RotateCW(img *image.NRGBA) *image.NRGBA {
	b := img.Rect
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			di := dst.PixOffset(h-1-y, x)
			copy(dst.Pix[di:di+4], img.Pix[si:si+4])
		}
	}
	return dst
}

// Untrim places img at offset on a fully transparent canvas of the given
// size. Pixels of img replace the canvas, alpha included.
func Untrim(img *image.NRGBA, offset, size image.Point) (*image.NRGBA, error) {
	canvas := image.Rectangle{Max: size}
	if size.X <= 0 || size.Y <= 0 || int64(size.X)*int64(size.Y) > MaxCanvasPixels {
		return nil, &GeometryError{
			Reason: "source size exceeds pixel limit",
			Rect:   canvas,
			Bounds: image.Rect(0, 0, 8192, 8192),
		}
	}
	placed := image.Rectangle{Min: offset, Max: offset.Add(img.Rect.Size())}
	if !placed.In(canvas) {
		return nil, &GeometryError{
			Reason: "trimmed region outside source size",
			Rect:   placed,
			Bounds: canvas,
		}
	}

	dst := image.NewNRGBA(canvas)
	blit(dst, offset, img, img.Rect)
	return dst, nil
}

// blit copies the r region of src into dst with its top-left corner at at.
// Both regions must be in bounds.
func blit(dst *image.NRGBA, at image.Point, src *image.NRGBA, r image.Rectangle) {
	n := r.Dx() * 4
	for y := 0; y < r.Dy(); y++ {
		si := src.PixOffset(r.Min.X, r.Min.Y+y)
		di := dst.PixOffset(at.X, at.Y+y)
		copy(dst.Pix[di:di+n], src.Pix[si:si+n])
	}
}
