// Package sheet loads a texture atlas and its descriptor from disk, and
// provides the encoders extracted frames are written with.
package sheet

import (
	"bytes"
	"hash/crc32"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/ftrvxmtrx/tga"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"badc0de.net/pkg/go-spritesplit/atlas"
	"badc0de.net/pkg/go-spritesplit/extract"
	"badc0de.net/pkg/go-spritesplit/paths"
)

// Sheet is a loaded atlas: decoded pixels plus normalized descriptor.
type Sheet struct {
	Image      *image.NRGBA
	Descriptor *atlas.Descriptor
	Inputs     paths.Inputs

	// Signature identifies the loaded content; it changes when either the
	// atlas pixels or the descriptor change.
	Signature uint32
}

type decodeFunc func(io.Reader) (image.Image, error)

// decoders is keyed by lowercase file extension. TGA has no magic number,
// so sniffing with image.Decode cannot be trusted once it is registered;
// the extension decides instead.
var decoders = map[string]decodeFunc{
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
}

// OpenImage decodes the atlas image at path.
func OpenImage(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening atlas image %s", path)
	}
	defer f.Close()

	return DecodeImage(f, filepath.Ext(path))
}

// DecodeImage decodes an atlas image in the format implied by ext. Unknown
// extensions fall back to image.Decode.
func DecodeImage(r io.Reader, ext string) (*image.NRGBA, error) {
	var img image.Image
	var err error
	if dec, ok := decoders[strings.ToLower(ext)]; ok {
		img, err = dec(r)
	} else {
		img, _, err = image.Decode(r)
	}
	if err != nil {
		return nil, errors.Wrap(err, "decoding atlas image")
	}
	return extract.NRGBA(img), nil
}

// ReadDescriptor parses the descriptor at path.
func ReadDescriptor(path string) (*atlas.Descriptor, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading descriptor %s", path)
	}
	d, err := atlas.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "parsing descriptor %s", path)
	}
	return d, data, nil
}

// Load reads the descriptor and atlas named by in. When in has no image,
// the descriptor's meta.image is tried next to the descriptor.
func Load(in paths.Inputs) (*Sheet, error) {
	if in.Descriptor == "" {
		return nil, in.Check()
	}
	d, raw, err := ReadDescriptor(in.Descriptor)
	if err != nil {
		return nil, err
	}
	if in.Image == "" {
		in.Image = paths.FindImageForMeta(in.Descriptor, d.Meta.Image)
	}
	if err := in.Check(); err != nil {
		return nil, err
	}

	img, err := OpenImage(in.Image)
	if err != nil {
		return nil, err
	}

	if ms := d.Meta.Size; ms.W > 0 && ms.H > 0 {
		if got := img.Rect.Size(); got != ms.Point() {
			glog.Warningf("%s: meta.size is %dx%d but %s is %dx%d", in.Descriptor, ms.W, ms.H, in.Image, got.X, got.Y)
		}
	}

	crc := crc32.NewIEEE()
	crc.Write(raw)
	crc.Write(img.Pix)

	return &Sheet{
		Image:      img,
		Descriptor: d,
		Inputs:     in,
		Signature:  crc.Sum32(),
	}, nil
}

// Encoder returns the encoder and file extension for an output format,
// "png" or "webp". WebP output is lossless.
func Encoder(format string) (imgio.Encoder, string, error) {
	switch strings.ToLower(format) {
	case "", "png":
		return imgio.PNGEncoder(), ".png", nil
	case "webp":
		return func(w io.Writer, img image.Image) error {
			return nativewebp.Encode(w, img, nil)
		}, ".webp", nil
	}
	return nil, "", errors.Errorf("unsupported output format %q", format)
}
