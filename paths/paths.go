// Package paths works out which files to read and where to write, given
// the arguments a user passed (or the file they dropped onto the binary).
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Inputs are the resolved locations for one run.
type Inputs struct {
	Image      string
	Descriptor string
	OutDir     string
}

var (
	// imageExts are tried in order when looking for the atlas next to a
	// descriptor.
	imageExts = []string{".png", ".jpg", ".jpeg", ".webp", ".bmp", ".tga", ".tif", ".tiff"}
	// descriptorExts are tried in order when looking for the descriptor
	// next to an atlas.
	descriptorExts = []string{".json", ".atlas"}
)

// Resolve interprets command line arguments. Accepted forms:
//
//	atlas.png sheet.json [outdir]
//	sheet.json [outdir]     (atlas found as sheet.png, sheet.jpg, ...)
//	atlas.png [outdir]      (descriptor found as atlas.json or atlas.atlas)
//
// Without outdir, output goes to a directory named after the input, next
// to it. Image is left empty when no atlas was found; see Check and
// FindImageForMeta.
func Resolve(args []string) (Inputs, error) {
	if len(args) == 0 {
		return Inputs{}, errors.New("no input files given")
	}

	if len(args) >= 2 && hasExt(args[0], imageExts) && hasExt(args[1], descriptorExts) {
		in := Inputs{Image: args[0], Descriptor: args[1]}
		if len(args) >= 3 {
			in.OutDir = args[2]
		} else {
			in.OutDir = defaultOutDir(args[1])
		}
		glog.V(1).Infof("paths.Resolve(%q)=%+v", args, in)
		return in, nil
	}

	input := args[0]
	stem := strings.TrimSuffix(input, filepath.Ext(input))

	var in Inputs
	switch {
	case hasExt(input, descriptorExts):
		in.Descriptor = input
		in.Image = Find(withExts(stem, imageExts)...)
	case hasExt(input, imageExts):
		in.Image = input
		in.Descriptor = Find(withExts(stem, descriptorExts)...)
	default:
		return Inputs{}, errors.Errorf("%s: neither an atlas image nor a descriptor", input)
	}

	if len(args) >= 2 {
		in.OutDir = args[1]
	} else {
		in.OutDir = defaultOutDir(input)
	}
	glog.V(1).Infof("paths.Resolve(%q)=%+v", args, in)
	return in, nil
}

// Find returns the first of the candidates that exists as a regular file,
// or "" if none does.
func Find(candidates ...string) string {
	for _, path := range candidates {
		if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// FindImageForMeta looks for the image named in a descriptor's meta block,
// relative to the descriptor. It returns "" if there is no such file.
func FindImageForMeta(descriptorPath, metaImage string) string {
	if metaImage == "" {
		return ""
	}
	if filepath.IsAbs(metaImage) {
		return Find(metaImage)
	}
	return Find(filepath.Join(filepath.Dir(descriptorPath), metaImage))
}

// Check verifies that both input files exist.
func (in Inputs) Check() error {
	if in.Image != "" && in.Descriptor != "" && Find(in.Image) != "" && Find(in.Descriptor) != "" {
		return nil
	}
	return errors.Errorf("could not locate both image and data files (image: %s, data: %s)",
		orNotFound(in.Image), orNotFound(in.Descriptor))
}

func orNotFound(s string) string {
	if s == "" {
		return "not found"
	}
	return s
}

func defaultOutDir(input string) string {
	base := filepath.Base(input)
	return filepath.Join(filepath.Dir(input), strings.TrimSuffix(base, filepath.Ext(base)))
}

func hasExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func withExts(stem string, exts []string) []string {
	out := make([]string, len(exts))
	for i, e := range exts {
		out[i] = stem + e
	}
	return out
}
