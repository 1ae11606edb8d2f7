package extract

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"badc0de.net/pkg/go-spritesplit/atlas"
	"badc0de.net/pkg/go-spritesplit/ttesting"
)

// testAtlas returns a w x h atlas in which every pixel is distinct and most
// are partially transparent.
func testAtlas(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x),
				G: uint8(y),
				B: uint8(x ^ y),
				A: uint8(1 + (x*7+y*3)%255),
			})
		}
	}
	return img
}

func TestFrameUnrotatedUntrimmedIsExactCrop(t *testing.T) {
	src := testAtlas(64, 64)
	fd := atlas.FrameDescriptor{Name: "plain", Frame: atlas.Rect{X: 5, Y: 7, W: 11, H: 13}}

	got, err := Frame(src, fd)
	if err != nil {
		t.Fatalf("failed to extract: %v", err)
	}

	want := src.SubImage(image.Rect(5, 7, 16, 20)).(*image.NRGBA)
	ttesting.AssertEqualImage(t, "crop", got, want)
	if got.Rect.Min != (image.Point{}) {
		t.Errorf("got bounds %v; want origin at (0,0)", got.Rect)
	}
}

func TestFrameRotatedRoundTrip(t *testing.T) {
	src := testAtlas(64, 64)
	fd := atlas.FrameDescriptor{Name: "rot", Frame: atlas.Rect{X: 3, Y: 4, W: 9, H: 5}, Rotated: true}

	got, err := Frame(src, fd)
	if err != nil {
		t.Fatalf("failed to extract: %v", err)
	}

	ttesting.AssertEqualInt(t, "width is frame height", got.Rect.Dx(), 5)
	ttesting.AssertEqualInt(t, "height is frame width", got.Rect.Dy(), 9)

	crop := Crop(src, image.Rect(3, 4, 12, 9))
	ttesting.AssertEqualImage(t, "clockwise turn restores crop", RotateCW(got), crop)

	// The stored top-right corner is the restored image's top-left.
	if got, want := got.NRGBAAt(0, 0), src.NRGBAAt(11, 4); got != want {
		t.Errorf("top-left: got %v; want %v", got, want)
	}
	// The stored top-left corner is the restored image's bottom-left.
	if got, want := got.NRGBAAt(0, 8), src.NRGBAAt(3, 4); got != want {
		t.Errorf("bottom-left: got %v; want %v", got, want)
	}
}

func TestRotateCCWThenCWIsIdentity(t *testing.T) {
	img := testAtlas(7, 3)
	ttesting.AssertEqualImage(t, "ccw then cw", RotateCW(RotateCCW(img)), img)
	ttesting.AssertEqualImage(t, "cw then ccw", RotateCCW(RotateCW(img)), img)
	ttesting.AssertEqualImage(t, "four turns", RotateCCW(RotateCCW(RotateCCW(RotateCCW(img)))), img)
}

func TestFrameTrimmed(t *testing.T) {
	src := testAtlas(64, 64)

	tests := []struct {
		name    string
		fd      atlas.FrameDescriptor
		crop    image.Rectangle
		placeAt image.Point
	}{
		{
			name: "unrotated",
			fd: atlas.FrameDescriptor{
				Name:         "trim",
				Frame:        atlas.Rect{X: 10, Y: 20, W: 6, H: 4},
				Trimmed:      true,
				SpriteSource: atlas.Rect{X: 2, Y: 3, W: 6, H: 4},
				SourceSize:   atlas.Size{W: 12, H: 10},
			},
			crop:    image.Rect(10, 20, 16, 24),
			placeAt: image.Pt(2, 3),
		},
		{
			name: "rotated",
			fd: atlas.FrameDescriptor{
				Name:         "trimrot",
				Frame:        atlas.Rect{X: 30, Y: 30, W: 6, H: 4},
				Rotated:      true,
				Trimmed:      true,
				SpriteSource: atlas.Rect{X: 1, Y: 0, W: 4, H: 6},
				SourceSize:   atlas.Size{W: 5, H: 6},
			},
			crop:    image.Rect(30, 30, 36, 34),
			placeAt: image.Pt(1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Frame(src, tt.fd)
			if err != nil {
				t.Fatalf("failed to extract: %v", err)
			}
			ttesting.AssertEqualInt(t, "width", got.Rect.Dx(), tt.fd.SourceSize.W)
			ttesting.AssertEqualInt(t, "height", got.Rect.Dy(), tt.fd.SourceSize.H)

			piece := Crop(src, tt.crop)
			if tt.fd.Rotated {
				piece = RotateCCW(piece)
			}
			inside := image.Rectangle{Min: tt.placeAt, Max: tt.placeAt.Add(piece.Rect.Size())}

			ttesting.AssertTransparentOutside(t, "margin", got, inside)
			ttesting.AssertEqualImage(t, "placed pixels", got.SubImage(inside).(*image.NRGBA), piece)
		})
	}
}

func TestFrameGeometryErrors(t *testing.T) {
	src := testAtlas(32, 32)

	tests := []struct {
		name string
		fd   atlas.FrameDescriptor
	}{
		{"past right edge", atlas.FrameDescriptor{Frame: atlas.Rect{X: 30, Y: 0, W: 3, H: 3}}},
		{"past bottom edge", atlas.FrameDescriptor{Frame: atlas.Rect{X: 0, Y: 31, W: 1, H: 2}}},
		{"negative origin", atlas.FrameDescriptor{Frame: atlas.Rect{X: -1, Y: 0, W: 2, H: 2}}},
		{"placement past canvas", atlas.FrameDescriptor{
			Frame: atlas.Rect{W: 4, H: 4}, Trimmed: true,
			SpriteSource: atlas.Rect{X: 2, Y: 0}, SourceSize: atlas.Size{W: 5, H: 4},
		}},
		{"negative placement", atlas.FrameDescriptor{
			Frame: atlas.Rect{W: 4, H: 4}, Trimmed: true,
			SpriteSource: atlas.Rect{X: 0, Y: -1}, SourceSize: atlas.Size{W: 8, H: 8},
		}},
		{"rotated does not fit unrotated canvas", atlas.FrameDescriptor{
			Frame: atlas.Rect{W: 6, H: 2}, Rotated: true, Trimmed: true,
			SourceSize: atlas.Size{W: 6, H: 2},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fd.Name = tt.name
			_, err := Frame(src, tt.fd)
			var ge *GeometryError
			if !errors.As(err, &ge) {
				t.Fatalf("got error %v; want *GeometryError", err)
			}
			if ge.Name != tt.name {
				t.Errorf("got name %q; want %q", ge.Name, tt.name)
			}
		})
	}
}

func TestFrameOversizedSourceSize(t *testing.T) {
	src := testAtlas(8, 8)
	for _, size := range []atlas.Size{
		{W: 2000000000, H: 2000000000},
		{W: 100000, H: 100000},
		{W: 8193, H: 8192},
	} {
		fd := atlas.FrameDescriptor{
			Name:       "huge",
			Frame:      atlas.Rect{W: 2, H: 2},
			Trimmed:    true,
			SourceSize: size,
		}
		_, err := Frame(src, fd)
		var ge *GeometryError
		if !errors.As(err, &ge) {
			t.Errorf("source size %+v: got error %v; want *GeometryError", size, err)
			continue
		}
		ttesting.AssertEqualString(t, "name", ge.Name, "huge")
	}
}

func TestFrameEmpty(t *testing.T) {
	src := testAtlas(8, 8)
	for _, fd := range []atlas.FrameDescriptor{
		{Frame: atlas.Rect{X: 1, Y: 1, W: 0, H: 3}},
		{Frame: atlas.Rect{X: 1, Y: 1, W: 3, H: 0}},
		{Frame: atlas.Rect{X: 1, Y: 1, W: 2, H: 2}, Trimmed: true},
	} {
		if _, err := Frame(src, fd); !errors.Is(err, ErrEmptyFrame) {
			t.Errorf("%+v: got error %v; want ErrEmptyFrame", fd, err)
		}
	}
}

func TestFrameAtlasWithOffsetBounds(t *testing.T) {
	full := testAtlas(16, 16)
	sub := full.SubImage(image.Rect(4, 4, 16, 16)).(*image.NRGBA)

	got, err := Frame(sub, atlas.FrameDescriptor{Frame: atlas.Rect{X: 0, Y: 0, W: 2, H: 2}})
	if err != nil {
		t.Fatalf("failed to extract: %v", err)
	}
	ttesting.AssertEqualImage(t, "crop is relative to atlas corner", got, Crop(full, image.Rect(4, 4, 6, 6)))
}

func TestNRGBAKeepsPaletteColorsExact(t *testing.T) {
	pal := color.Palette{
		color.NRGBA{0, 0, 0, 0},
		color.NRGBA{200, 100, 50, 3},
		color.NRGBA{10, 20, 30, 255},
	}
	src := image.NewPaletted(image.Rect(2, 2, 5, 3), pal)
	src.SetColorIndex(2, 2, 1)
	src.SetColorIndex(3, 2, 2)

	got := NRGBA(src)
	ttesting.AssertEqualInt(t, "width", got.Rect.Dx(), 3)
	if c := got.NRGBAAt(0, 0); c != pal[1] {
		t.Errorf("got %v; want %v", c, pal[1])
	}
	if c := got.NRGBAAt(1, 0); c != pal[2] {
		t.Errorf("got %v; want %v", c, pal[2])
	}
	if c := got.NRGBAAt(2, 0); c.A != 0 {
		t.Errorf("got %v; want transparent", c)
	}
}
