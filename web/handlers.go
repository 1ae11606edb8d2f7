// Package web serves a loaded sheet over HTTP: an index page, the
// normalized frame list, every extracted frame as PNG and an animated GIF
// of all frames.
package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/nfnt/resize"
	"github.com/vincent-petithory/dataurl"
	"golang.org/x/net/trace"

	"badc0de.net/pkg/go-spritesplit/extract"
	"badc0de.net/pkg/go-spritesplit/sheet"
)

// generation is part of every ETag; bump if the way frames are rendered
// changes.
const generation = 1

// Handler serves one sheet. Extracted frames are cached for the lifetime of
// the handler.
type Handler struct {
	s *sheet.Sheet

	mu    sync.Mutex
	cache map[int]*image.NRGBA
	// mtime is the atlas image's modification time, for Last-Modified.
	mtime string
}

// NewHandler constructs a web handler for the passed sheet.
func NewHandler(s *sheet.Sheet) *Handler {
	h := &Handler{
		s:     s,
		cache: make(map[int]*image.NRGBA),
	}
	if st, err := os.Stat(s.Inputs.Image); err == nil {
		h.mtime = st.ModTime().UTC().Format(http.TimeFormat)
	}
	return h
}

// frame returns the n-th usable frame of the sheet, extracting it on first
// use.
func (h *Handler) frame(n int) (*image.NRGBA, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if img, ok := h.cache[n]; ok {
		return img, nil
	}
	img, err := extract.Frame(h.s.Image, h.s.Descriptor.Frames[n])
	if err != nil {
		return nil, err
	}
	h.cache[n] = img
	return img, nil
}

func (h *Handler) etag(kind string, key int) string {
	return fmt.Sprintf(`W/"%s:%d:%08x:%d"`, kind, generation, h.s.Signature, key)
}

// notModified handles conditional requests. It returns true if the response
// was already written.
func (h *Handler) notModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
	w.Header().Set("ETag", etag)
	if h.mtime != "" {
		w.Header().Set("Last-Modified", h.mtime)
	}
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func (h *Handler) frameHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.frame", r.URL.Path)
	defer tr.Finish()

	n, err := strconv.Atoi(mux.Vars(r)["idx"])
	if err != nil || n >= len(h.s.Descriptor.Frames) {
		http.Error(w, "no such frame", http.StatusNotFound)
		return
	}
	fd := h.s.Descriptor.Frames[n]
	tr.LazyPrintf("frame %d: %s", n, fd.Name)

	if h.notModified(w, r, h.etag("frame", n)) {
		tr.LazyPrintf("not modified")
		return
	}

	img, err := h.frame(n)
	if err != nil {
		tr.LazyPrintf("%v", err)
		tr.SetError()
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		glog.Errorf("error encoding frame %s: %v", fd.Name, err)
		http.Error(w, "failed to encode frame", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) framesJSONHandler(w http.ResponseWriter, r *http.Request) {
	if h.notModified(w, r, h.etag("json", 0)) {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(h.s.Descriptor); err != nil {
		glog.Errorf("error encoding frame list: %v", err)
	}
}

// framesGIFHandler animates all frames, each centered on a canvas as large
// as the largest frame. The delay query parameter sets the per-frame delay
// in 100ths of a second.
func (h *Handler) framesGIFHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.gif", r.URL.Path)
	defer tr.Finish()

	delay := 10
	if d := r.URL.Query().Get("delay"); d != "" {
		if v, err := strconv.Atoi(d); err == nil && v > 0 {
			delay = v
		}
		// ignore invalid delay
	}

	if h.notModified(w, r, h.etag("gif", delay)) {
		return
	}

	var frames []*image.NRGBA
	var canvas image.Rectangle
	for n := range h.s.Descriptor.Frames {
		img, err := h.frame(n)
		if err != nil {
			tr.LazyPrintf("skipping frame %d: %v", n, err)
			continue
		}
		frames = append(frames, img)
		canvas = canvas.Union(image.Rectangle{Max: img.Rect.Size()})
	}
	if len(frames) == 0 {
		tr.SetError()
		http.Error(w, "sheet has no frames that can be extracted", http.StatusNotFound)
		return
	}
	tr.LazyPrintf("%d frames on a %v canvas", len(frames), canvas.Size())

	g := Animate(frames, canvas, delay)

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		glog.Errorf("error encoding gif: %v", err)
		http.Error(w, "failed to encode gif", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/gif")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Animate builds a looping GIF out of frames, each centered on canvas.
// Palette index 0 is transparent in every frame.
func Animate(frames []*image.NRGBA, canvas image.Rectangle, delay int) *gif.GIF {
	g := &gif.GIF{}
	q := quantize.MedianCutQuantizer{}
	for _, img := range frames {
		off := canvas.Size().Sub(img.Rect.Size()).Div(2)
		dst := img.Rect.Sub(img.Rect.Min).Add(off)

		// Up to 255 colors plus the transparent one.
		p := make(color.Palette, 1, 256)
		p[0] = color.Transparent
		p = q.Quantize(p, img)

		pal := image.NewPaletted(canvas, p)
		draw.Draw(pal, dst, img, img.Rect.Min, draw.Src)

		g.Image = append(g.Image, pal)
		g.Delay = append(g.Delay, delay)
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}
	g.BackgroundIndex = 0 // color.Transparent
	return g
}

type indexEntry struct {
	N     int
	Name  string
	W, H  int
	Thumb template.URL
	Err   string
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<p>{{len .Frames}} frames, {{len .Skipped}} skipped. <a href="frames.json">frames.json</a> <a href="frames.gif">frames.gif</a></p>
<table>
{{range .Frames}}<tr>
<td>{{if .Thumb}}<a href="frame/{{.N}}.png"><img src="{{.Thumb}}"></a>{{end}}</td>
<td>{{.Name}}</td>
<td>{{if .Err}}{{.Err}}{{else}}{{.W}}x{{.H}}{{end}}</td>
</tr>
{{end}}</table>
{{if .Skipped}}<h2>Skipped</h2>
<ul>{{range .Skipped}}<li>{{.}}</li>{{end}}</ul>{{end}}
</body>
</html>
`))

func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.index", r.URL.Path)
	defer tr.Finish()

	d := h.s.Descriptor
	data := struct {
		Title   string
		Frames  []indexEntry
		Skipped []string
	}{
		Title: h.s.Inputs.Descriptor,
	}
	for _, s := range d.Skipped {
		data.Skipped = append(data.Skipped, s.String())
	}

	for n, fd := range d.Frames {
		e := indexEntry{N: n, Name: fd.Name}
		img, err := h.frame(n)
		if err != nil {
			e.Err = err.Error()
			data.Frames = append(data.Frames, e)
			continue
		}
		e.W, e.H = img.Rect.Dx(), img.Rect.Dy()

		var buf bytes.Buffer
		if err := png.Encode(&buf, resize.Thumbnail(64, 64, img, resize.Lanczos3)); err != nil {
			tr.LazyPrintf("thumbnail %s: %v", fd.Name, err)
		} else {
			e.Thumb = template.URL(dataurl.New(buf.Bytes(), "image/png").String())
		}
		data.Frames = append(data.Frames, e)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		glog.Errorf("error rendering index: %v", err)
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.indexHandler)
	r.HandleFunc("/frames.json", h.framesJSONHandler)
	r.HandleFunc("/frames.gif", h.framesGIFHandler)
	r.HandleFunc("/frame/{idx:[0-9]+}.png", h.frameHandler)
}
