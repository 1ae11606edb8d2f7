package split

import (
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-spritesplit/atlas"
	"badc0de.net/pkg/go-spritesplit/outpath"
	"badc0de.net/pkg/go-spritesplit/sheet"
)

// Sink receives finished frames. Put may be called from several goroutines
// at once.
type Sink interface {
	Put(fd atlas.FrameDescriptor, img image.Image) error
}

// Preparer is implemented by sinks which need setup before the first Put.
type Preparer interface {
	Prepare() error
}

// DirSink writes each frame as a file directly under Root.
//
// A frame is encoded to a temporary file in Root and renamed into place, so
// a failed frame never leaves a partial file behind. Frames with colliding
// names overwrite each other.
type DirSink struct {
	Root string

	encode imgio.Encoder
	ext    string

	prepare    sync.Once
	prepareErr error
}

// NewDirSink returns a sink writing format ("png" or "webp") files to root.
func NewDirSink(root, format string) (*DirSink, error) {
	enc, ext, err := sheet.Encoder(format)
	if err != nil {
		return nil, err
	}
	return &DirSink{Root: root, encode: enc, ext: ext}, nil
}

// Prepare creates Root. It only does work the first time it is called.
func (s *DirSink) Prepare() error {
	s.prepare.Do(func() {
		if err := os.MkdirAll(s.Root, 0755); err != nil {
			s.prepareErr = errors.Wrapf(err, "creating output directory %s", s.Root)
		}
	})
	return s.prepareErr
}

// Path returns where fd is written.
func (s *DirSink) Path(fd atlas.FrameDescriptor) string {
	return outpath.Join(s.Root, fd.Name, s.ext)
}

func (s *DirSink) Put(fd atlas.FrameDescriptor, img image.Image) error {
	if err := s.Prepare(); err != nil {
		return err
	}
	path := s.Path(fd)

	tmp, err := os.CreateTemp(s.Root, ".spritesplit-*"+s.ext)
	if err != nil {
		return errors.Wrapf(err, "creating temporary file in %s", s.Root)
	}
	tmpName := tmp.Name()

	if err := s.encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "encoding %s", filepath.Base(path))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "writing %s", filepath.Base(path))
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		glog.V(1).Infof("chmod %s: %v", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "saving %s", path)
	}

	glog.Infof("Saved: %s", path)
	return nil
}
