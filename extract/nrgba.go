package extract

import (
	"image"
	"image/color"
)

// NRGBA converts any decoded image to *image.NRGBA with bounds starting at
// (0,0). Images that already are NRGBA at the origin are returned as is.
//
// Conversion goes through color.NRGBAModel pixel by pixel, so colors that
// are already non-premultiplied (as in paletted PNGs) keep their exact
// values.
func NRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok {
		if b.Min == (image.Point{}) {
			return n
		}
		return Crop(n, b)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			i := dst.PixOffset(x-b.Min.X, y-b.Min.Y)
			dst.Pix[i+0] = c.R
			dst.Pix[i+1] = c.G
			dst.Pix[i+2] = c.B
			dst.Pix[i+3] = c.A
		}
	}
	return dst
}
