//go:build windows

package imageprint

import (
	"image"
	"io"
)

func hasGraphics() bool { return false }

func printRasTerm(w io.Writer, img image.Image) error {
	return printITerm(w, img, "frame.png")
}
