package imageprint

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"badc0de.net/pkg/go-spritesplit/ttesting"
)

func TestParseMode(t *testing.T) {
	for name, want := range modeNames {
		got, err := ParseMode(strings.ToUpper(name))
		if err != nil {
			t.Errorf("ParseMode(%q): %v", name, err)
			continue
		}
		if got != want {
			t.Errorf("ParseMode(%q) = %d; want %d", name, got, want)
		}
	}
	if _, err := ParseMode("crayon"); err == nil {
		t.Errorf("ParseMode(crayon) succeeded; want error")
	}
}

func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(0, 1, color.NRGBA{100, 100, 100, 255})
	return img
}

func TestPrintNoColor(t *testing.T) {
	var buf bytes.Buffer
	if err := Print(&buf, checker(), NoColor); err != nil {
		t.Fatal(err)
	}
	ttesting.AssertEqualString(t, "ascii rendering", buf.String(), "##..  \n==    \n")
}

func TestPrintTrueColor(t *testing.T) {
	var buf bytes.Buffer
	if err := Print(&buf, checker(), TrueColor); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[48;2;255;255;255m  ") {
		t.Errorf("output %q lacks the white cell", out)
	}
	ttesting.AssertEqualInt(t, "lines", strings.Count(out, "\n"), 2)
}

func TestPrintITerm(t *testing.T) {
	var buf bytes.Buffer
	if err := Print(&buf, checker(), ITerm); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\033]1337;File=") || !strings.Contains(buf.String(), "width=3px;height=2px") {
		t.Errorf("unexpected iTerm output %q", buf.String())
	}
}

func TestThumbnail(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	small := Thumbnail(img, 10, 10)
	if s := small.Bounds().Size(); s.X != 10 || s.Y != 5 {
		t.Errorf("got thumbnail %v; want 10x5", s)
	}
	if Thumbnail(img, 100, 100) != image.Image(img) {
		t.Errorf("image that fits was resized")
	}
}
