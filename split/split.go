// Package split runs frame extraction for a whole atlas, fanning the frames
// out to a bounded pool of workers.
package split

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/go-spritesplit/atlas"
	"badc0de.net/pkg/go-spritesplit/extract"
)

// Options tune a Run.
type Options struct {
	// Workers bounds how many frames are extracted at once. Zero or less
	// means one per CPU.
	Workers int

	// OnFrame, if set, is called with every extracted image before it is
	// handed to the sink. It may be called concurrently.
	OnFrame func(fd atlas.FrameDescriptor, img *image.NRGBA)
}

// FrameError is a frame that was attempted but produced no output.
type FrameError struct {
	Frame atlas.FrameDescriptor
	Err   error
}

func (e FrameError) Error() string {
	return fmt.Sprintf("frame %d (%s): %v", e.Frame.Index, e.Frame.Name, e.Err)
}

// Summary reports what a Run did.
type Summary struct {
	// Total counts every frame source in the descriptor.
	Total int
	// Attempted counts frames handed to extraction.
	Attempted int
	// Produced counts frames accepted by the sink.
	Produced int

	Skipped []atlas.SkippedFrame
	Failed  []FrameError
}

func (s Summary) String() string {
	return fmt.Sprintf("Done. Total: %d, attempted: %d, produced: %d, skipped: %d, failed: %d",
		s.Total, s.Attempted, s.Produced, len(s.Skipped), len(s.Failed))
}

// Complete reports whether every frame source produced output.
func (s Summary) Complete() bool {
	return s.Produced == s.Total
}

// Run extracts every frame of d from src and hands it to sink.
//
// Frames that cannot be extracted are logged and listed in the summary;
// the run carries on. An error from the sink is fatal: no further frames
// are started, frames already running are allowed to finish, and the error
// is returned along with the summary so far.
func Run(ctx context.Context, src *image.NRGBA, d *atlas.Descriptor, sink Sink, opts Options) (Summary, error) {
	sum := Summary{
		Total:   d.Total(),
		Skipped: d.Skipped,
	}
	for _, s := range d.Skipped {
		glog.Warningf("Skip %s: %s", s.Name, s.Reason)
	}

	if p, ok := sink.(Preparer); ok {
		if err := p.Prepare(); err != nil {
			return sum, err
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		attempted atomic.Int64
		produced  atomic.Int64
		mu        sync.Mutex
		failed    []FrameError
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, fd := range d.Frames {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// The group may have failed while this call waited for a slot.
			if gctx.Err() != nil {
				return nil
			}
			attempted.Add(1)

			img, err := extract.Frame(src, fd)
			if err != nil {
				glog.Warningf("Skip %s: %v", fd.Name, err)
				mu.Lock()
				failed = append(failed, FrameError{Frame: fd, Err: err})
				mu.Unlock()
				return nil
			}
			glog.V(1).Infof("extracted %s: %dx%d", fd.Name, img.Rect.Dx(), img.Rect.Dy())

			if opts.OnFrame != nil {
				opts.OnFrame(fd, img)
			}
			if err := sink.Put(fd, img); err != nil {
				return errors.Wrapf(err, "frame %q", fd.Name)
			}
			produced.Add(1)
			return nil
		})
	}

	err := g.Wait()
	sum.Attempted = int(attempted.Load())
	sum.Produced = int(produced.Load())
	sum.Failed = failed
	sort.Slice(sum.Failed, func(i, j int) bool {
		return sum.Failed[i].Frame.Index < sum.Failed[j].Frame.Index
	})

	if err == nil {
		err = ctx.Err()
	}
	return sum, err
}
