// Command spritesplit unpacks a texture atlas into one image file per frame.
//
// Usage:
//
//	spritesplit <sheet.json|sheet.atlas> [outdir]
//	spritesplit <sheet.png> [outdir]
//	spritesplit <sheet.png> <sheet.json> [outdir]
//
// With -serve_address, the sheet is served over HTTP instead of written out.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"sync"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"

	"badc0de.net/pkg/go-spritesplit/atlas"
	"badc0de.net/pkg/go-spritesplit/imageprint"
	"badc0de.net/pkg/go-spritesplit/paths"
	"badc0de.net/pkg/go-spritesplit/sheet"
	"badc0de.net/pkg/go-spritesplit/split"
)

var (
	workers      = flag.Int("workers", 0, "frames to extract at once; 0 means one per CPU")
	format       = flag.String("format", "png", "output format: png or webp")
	preview      = flag.Bool("preview", false, "print every extracted frame on the terminal")
	previewMode  = flag.String("preview_mode", "auto", "preview mode: auto, rasterm, iterm, truecolor, 256 or none")
	serveAddress = flag.String("serve_address", "", "if set, serve the sheet over http on this address instead of writing files")
	wait         = flag.Bool("wait", false, "on a usage or input error, wait for a key press before exiting")
	strict       = flag.Bool("strict", false, "exit with status 1 unless every frame produced output")
)

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprint(out, figure.NewFigure("spritesplit", "", true).String())
	fmt.Fprintf(out, "\nUsage:\n")
	fmt.Fprintf(out, "  %s [flags] <file.json|file.atlas> [outdir]\n", os.Args[0])
	fmt.Fprintf(out, "  %s [flags] <atlas.png> [outdir]\n", os.Args[0])
	fmt.Fprintf(out, "  %s [flags] <atlas.png> <atlas.json> [outdir]\n\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	code := run()
	glog.Flush()
	os.Exit(code)
}

// run does the work of main and returns the exit code.
func run() int {
	if flag.NArg() == 0 {
		flag.Usage()
		waitForKey(*wait)
		return 1
	}

	in, err := paths.Resolve(flag.Args())
	if err != nil {
		glog.Errorf("%v", err)
		waitForKey(*wait)
		return 1
	}

	s, err := sheet.Load(in)
	if err != nil {
		glog.Errorf("%v", err)
		waitForKey(*wait)
		return 1
	}

	fmt.Printf("Processing:\n  Image: %s\n  Data:  %s\n", s.Inputs.Image, s.Inputs.Descriptor)

	if *serveAddress != "" {
		if err := serve(*serveAddress, s); err != nil {
			glog.Errorf("%v", err)
			return 1
		}
		return 0
	}
	fmt.Printf("  Output: %s\n", s.Inputs.OutDir)

	sink, err := split.NewDirSink(s.Inputs.OutDir, *format)
	if err != nil {
		glog.Errorf("%v", err)
		return 1
	}

	opts := split.Options{Workers: *workers}
	if *preview {
		mode, err := imageprint.ParseMode(*previewMode)
		if err != nil {
			glog.Errorf("%v", err)
			return 1
		}
		opts.OnFrame = previewer(mode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum, err := split.Run(ctx, s.Image, s.Descriptor, sink, opts)
	fmt.Println(sum)
	if err != nil {
		glog.Errorf("%v", err)
		return 1
	}
	return exitCode(sum, *strict)
}

// exitCode is the status for a run that finished without a fatal error.
// Skipped and failed frames are reported in the summary; they only fail the
// run in strict mode.
func exitCode(sum split.Summary, strict bool) int {
	if strict && !sum.Complete() {
		return 1
	}
	return 0
}

// previewer prints frames one at a time, so that concurrent workers do not
// interleave their output.
func previewer(mode imageprint.Mode) func(atlas.FrameDescriptor, *image.NRGBA) {
	var mu sync.Mutex
	return func(fd atlas.FrameDescriptor, img *image.NRGBA) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Printf("%s (%dx%d)\n", fd.Name, img.Rect.Dx(), img.Rect.Dy())
		if err := imageprint.Print(os.Stdout, imageprint.Fit(img, mode), mode); err != nil {
			glog.Warningf("preview of %s: %v", fd.Name, err)
		}
	}
}
