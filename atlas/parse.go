package atlas

import (
	"encoding/json"
	"io"
)

// DefaultName is given to frames whose source names none.
const DefaultName = "unnamed"

// frameSource is one entry of the frame list before normalization.
type frameSource struct {
	// key is the mapping key, if the list was a mapping.
	key    string
	hasKey bool
	value  Value
}

// Parse reads a descriptor document from r and normalizes its frames.
func Parse(r io.Reader) (*Descriptor, error) {
	v, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return ParseValue(v)
}

// ParseValue normalizes an already decoded document.
func ParseValue(v Value) (*Descriptor, error) {
	root, ok := v.(*Object)
	if !ok {
		return nil, &FormatError{Reason: "document is not a JSON object"}
	}

	frames, ok := root.Get("frames")
	if !ok || frames == nil {
		return nil, &FormatError{Reason: "no frames property found"}
	}

	d := &Descriptor{}
	var sources []frameSource
	switch t := frames.(type) {
	case []Value:
		d.Shape = ShapeSequence
		sources = make([]frameSource, len(t))
		for i, fv := range t {
			sources[i] = frameSource{value: fv}
		}
	case *Object:
		d.Shape = ShapeMapping
		sources = make([]frameSource, len(t.Members))
		for i, m := range t.Members {
			sources[i] = frameSource{key: m.Key, hasKey: true, value: m.Value}
		}
	default:
		return nil, &FormatError{Reason: "frames is neither an array nor an object"}
	}

	if meta, ok := root.Get("meta"); ok {
		d.Meta = parseMeta(meta)
	}

	d.Frames = make([]FrameDescriptor, 0, len(sources))
	for i, src := range sources {
		fd, reason := normalize(i, src)
		if reason != "" {
			d.Skipped = append(d.Skipped, SkippedFrame{Index: i, Name: fd.Name, Reason: reason})
			continue
		}
		d.Frames = append(d.Frames, fd)
	}
	return d, nil
}

// normalize builds a FrameDescriptor from one frame source. A non-empty
// reason means the frame is unusable; the returned descriptor then only has
// Index and Name set.
func normalize(index int, src frameSource) (FrameDescriptor, string) {
	obj, _ := src.value.(*Object)
	if src.hasKey {
		obj = withDefaultFilename(obj, src.key)
	}

	var fields resolved
	if obj != nil {
		fields = resolve(obj)
	}

	fd := FrameDescriptor{
		Index: index,
		Name:  nameOf(fields[fieldName]),
	}

	frame, ok := fields[fieldFrame].(*Object)
	if !ok {
		return fd, "invalid frame"
	}
	x, ok := frame.Get("x")
	if !ok {
		return fd, "invalid frame"
	}
	if _, ok := integer(x); !ok {
		return fd, "invalid frame"
	}

	fd.Frame = rectOf(frame)
	fd.Rotated = truthy(fields[fieldRotated])
	fd.Trimmed = truthy(fields[fieldTrimmed])

	fd.SpriteSource = Rect{W: fd.Frame.W, H: fd.Frame.H}
	if ss, ok := fields[fieldSpriteSource].(*Object); ok {
		fd.SpriteSource = rectOf(ss)
	}

	fd.SourceSize = Size{W: fd.Frame.W, H: fd.Frame.H}
	if s, ok := fields[fieldSourceSize].(*Object); ok {
		fd.SourceSize = sizeOf(s)
	}

	return fd, ""
}

// withDefaultFilename returns obj with a "filename" member set to key,
// unless obj already carries its own "filename".
func withDefaultFilename(obj *Object, key string) *Object {
	if _, ok := obj.Get("filename"); ok {
		return obj
	}
	out := newObject()
	out.set("filename", key)
	if obj != nil {
		for _, m := range obj.Members {
			out.set(m.Key, m.Value)
		}
	}
	return out
}

func nameOf(v Value) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	}
	return DefaultName
}

func intField(o *Object, key string) int {
	v, ok := o.Get(key)
	if !ok {
		return 0
	}
	i, _ := integer(v)
	return i
}

func rectOf(o *Object) Rect {
	return Rect{
		X: intField(o, "x"),
		Y: intField(o, "y"),
		W: intField(o, "w"),
		H: intField(o, "h"),
	}
}

func sizeOf(o *Object) Size {
	return Size{
		W: intField(o, "w"),
		H: intField(o, "h"),
	}
}

func parseMeta(v Value) Meta {
	o, ok := v.(*Object)
	if !ok {
		return Meta{}
	}
	var m Meta
	if s, ok := o.Get("app"); ok {
		m.App, _ = s.(string)
	}
	if s, ok := o.Get("image"); ok {
		m.Image, _ = s.(string)
	}
	if s, ok := o.Get("format"); ok {
		m.Format, _ = s.(string)
	}
	if s, ok := o.Get("size"); ok {
		if so, ok := s.(*Object); ok {
			m.Size = sizeOf(so)
		}
	}
	return m
}
