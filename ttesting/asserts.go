// Package ttesting holds assertions shared by the package tests.
package ttesting

import (
	"image"
	"testing"

	"github.com/bradfitz/iter"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualString(t *testing.T, name string, got, want string) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %q; want %q", got, want)
		}
	})
}

// AssertEqualImage compares two images pixel by pixel, in non-premultiplied
// form. Only the first mismatching pixel is reported.
func AssertEqualImage(t *testing.T, name string, got, want *image.NRGBA) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		gs, ws := got.Bounds().Size(), want.Bounds().Size()
		if gs != ws {
			t.Fatalf("got size %v; want %v", gs, ws)
		}
		for y := range iter.N(ws.Y) {
			for x := range iter.N(ws.X) {
				g := got.NRGBAAt(got.Rect.Min.X+x, got.Rect.Min.Y+y)
				w := want.NRGBAAt(want.Rect.Min.X+x, want.Rect.Min.Y+y)
				if g != w {
					t.Fatalf("pixel (%d,%d): got %v; want %v", x, y, g, w)
				}
			}
		}
	})
}

// AssertTransparentOutside checks that every pixel of img outside r has
// zero alpha.
func AssertTransparentOutside(t *testing.T, name string, img *image.NRGBA, r image.Rectangle) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		b := img.Bounds()
		for y := range iter.N(b.Dy()) {
			for x := range iter.N(b.Dx()) {
				p := image.Pt(b.Min.X+x, b.Min.Y+y)
				if p.In(r) {
					continue
				}
				if a := img.NRGBAAt(p.X, p.Y).A; a != 0 {
					t.Fatalf("pixel %v: got alpha %d; want 0", p, a)
				}
			}
		}
	})
}
