// Package imageprint prints images on a terminal, for quick previews of
// extracted frames.
//
// Depending on what the terminal supports, an image is shown through an
// inline graphics protocol (kitty, iTerm2, sixel) or approximated with
// colored blocks, two character cells per pixel.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/nfnt/resize"
)

// Mode selects how images are drawn.
type Mode int

const (
	// Auto uses an inline graphics protocol when one is detected, and
	// TrueColor blocks otherwise.
	Auto Mode = iota
	// RasTerm uses kitty, iTerm2 or sixel graphics, whichever is available.
	RasTerm
	// ITerm uses iTerm2's inline image escape sequence unconditionally.
	ITerm
	// TrueColor draws 24-bit background colored blocks.
	TrueColor
	// Color256 draws colored blocks through gookit/color, which degrades to
	// the 256-color palette where needed.
	Color256
	// NoColor draws ASCII shades.
	NoColor
)

var modeNames = map[string]Mode{
	"auto":      Auto,
	"rasterm":   RasTerm,
	"iterm":     ITerm,
	"truecolor": TrueColor,
	"256":       Color256,
	"none":      NoColor,
}

// ParseMode parses a mode name as accepted on the command line.
func ParseMode(s string) (Mode, error) {
	if m, ok := modeNames[strings.ToLower(s)]; ok {
		return m, nil
	}
	return Auto, fmt.Errorf("unknown preview mode %q", s)
}

// Print draws img on w.
func Print(w io.Writer, img image.Image, mode Mode) error {
	if mode == Auto {
		mode = TrueColor
		if hasGraphics() {
			mode = RasTerm
		}
	}

	switch mode {
	case RasTerm:
		return printRasTerm(w, img)
	case ITerm:
		return printITerm(w, img, "frame.png")
	}

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			shade(w, r, g, b, a, mode)
		}
		if mode != NoColor {
			fmt.Fprint(w, "\x1b[0m")
		}
		fmt.Fprint(w, "\n")
	}
	return nil
}

func shade(w io.Writer, r, g, b, a uint32, mode Mode) {
	if a == 0 {
		if mode == NoColor {
			fmt.Fprint(w, "  ")
		} else {
			fmt.Fprint(w, "\x1b[0m  ")
		}
		return
	}
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)

	switch mode {
	case TrueColor:
		fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm  ", r8, g8, b8)
	case Color256:
		fmt.Fprint(w, color.RGB(r8, g8, b8, true).Sprint("  "))
	default:
		lum := (r + g + b) / 3 >> 8
		switch {
		case lum < 32:
			fmt.Fprint(w, "..")
		case lum < 64:
			fmt.Fprint(w, "--")
		case lum < 128:
			fmt.Fprint(w, "==")
		default:
			fmt.Fprint(w, "##")
		}
	}
}

// printITerm draws an image using iTerm2's escape sequences.
//
// https://www.iterm2.com/documentation-images.html
func printITerm(w io.Writer, img image.Image, fn string) error {
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	enc := base64.NewEncoder(base64.StdEncoding, b)
	if err := png.Encode(enc, img); err != nil {
		return err
	}
	enc.Close()
	_, err := fmt.Fprintf(w, "\n\033]1337;File=name=%s;inline=1;size=%d;width=%dpx;height=%dpx:%s\a\n",
		name, b.Len(), img.Bounds().Dx(), img.Bounds().Dy(), b.String())
	return err
}

// Fit shrinks img so that it fits the terminal when drawn in mode. Images
// that already fit, and terminals whose size is unknown, leave img as is.
func Fit(img image.Image, mode Mode) image.Image {
	ts, err := GetTermSize()
	if err != nil {
		return img
	}

	var maxW, maxH uint
	if (mode == Auto || mode == RasTerm || mode == ITerm) && ts.XPixel != 0 && ts.YPixel != 0 {
		maxW, maxH = ts.XPixel/2, ts.YPixel/2
	} else if ts.Rows > 1 {
		// Two cells per pixel horizontally; keep a line for the prompt.
		maxW, maxH = ts.Cols/2, ts.Rows-1
	}
	if maxW == 0 || maxH == 0 {
		return img
	}
	return Thumbnail(img, maxW, maxH)
}

// Thumbnail scales img down, keeping its aspect ratio, so that it fits in
// maxW x maxH.
func Thumbnail(img image.Image, maxW, maxH uint) image.Image {
	s := img.Bounds().Size()
	if uint(s.X) <= maxW && uint(s.Y) <= maxH {
		return img
	}
	return resize.Thumbnail(maxW, maxH, img, resize.Lanczos3)
}
