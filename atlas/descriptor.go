package atlas

import (
	"fmt"
	"image"
)

// Rect is a rectangle in pixel space, as packers write it: top-left corner
// plus width and height.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Rectangle converts r to an image.Rectangle.
func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Size is a width and height in pixels.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Point converts s to an image.Point.
func (s Size) Point() image.Point {
	return image.Pt(s.W, s.H)
}

// FrameDescriptor is the canonical form of one packed sprite.
type FrameDescriptor struct {
	// Index is the position of the frame in the document's frame list,
	// counting skipped frames too.
	Index int    `json:"index"`
	Name  string `json:"name"`

	// Frame is where the sprite's pixels are stored in the atlas. For a
	// rotated sprite, W and H describe the stored (rotated) pixels.
	Frame   Rect `json:"frame"`
	Rotated bool `json:"rotated"`
	Trimmed bool `json:"trimmed"`

	// SpriteSource places the stored pixels on the original canvas.
	SpriteSource Rect `json:"spriteSourceSize"`
	// SourceSize is the size of the original canvas, before trimming.
	SourceSize Size `json:"sourceSize"`
}

// SkippedFrame records a frame source which could not be turned into a
// FrameDescriptor.
type SkippedFrame struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

func (s SkippedFrame) String() string {
	return fmt.Sprintf("frame %d (%s): %s", s.Index, s.Name, s.Reason)
}

// Shape tells how a document laid out its frame list.
type Shape int

const (
	// ShapeSequence is `"frames": [ {...}, ... ]`.
	ShapeSequence Shape = iota
	// ShapeMapping is `"frames": { "name": {...}, ... }`.
	ShapeMapping
)

func (s Shape) String() string {
	switch s {
	case ShapeSequence:
		return "sequence"
	case ShapeMapping:
		return "mapping"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Meta is the optional "meta" block written by TexturePacker and friends.
type Meta struct {
	App    string `json:"app,omitempty"`
	Image  string `json:"image,omitempty"`
	Format string `json:"format,omitempty"`
	Size   Size   `json:"size"`
}

// Descriptor is a parsed atlas document.
type Descriptor struct {
	Shape   Shape             `json:"shape"`
	Meta    Meta              `json:"meta"`
	Frames  []FrameDescriptor `json:"frames"`
	Skipped []SkippedFrame    `json:"skipped,omitempty"`
}

// Total returns how many frame sources the document listed, usable or not.
func (d *Descriptor) Total() int {
	return len(d.Frames) + len(d.Skipped)
}

// FormatError is returned when a document is not JSON, or has no frame list
// that could be used.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return "atlas: " + e.Reason + ": " + e.Err.Error()
	}
	return "atlas: " + e.Reason
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
