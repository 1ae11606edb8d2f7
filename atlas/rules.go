package atlas

// field is a canonical FrameDescriptor field that may be spelled in more
// than one way in a document.
type field int

const (
	fieldName field = iota
	fieldFrame
	fieldRotated
	fieldTrimmed
	fieldSpriteSource
	fieldSourceSize
	numFields
)

type rule struct {
	key   string
	field field
}

// rules lists every accepted key in priority order. For each field, the
// first key that is present with a truthy value wins.
var rules = []rule{
	{"filename", fieldName},
	{"name", fieldName},
	{"file", fieldName},

	{"frame", fieldFrame},
	{"rect", fieldFrame},
	{"sourceRect", fieldFrame},

	{"rotated", fieldRotated},
	{"trimmed", fieldTrimmed},

	{"spriteSourceSize", fieldSpriteSource},
	{"spriteSourceRect", fieldSpriteSource},

	{"sourceSize", fieldSourceSize},
	{"originalSize", fieldSourceSize},
}

// resolved holds the raw value picked for each field; a nil entry means
// none of the field's keys was present.
type resolved [numFields]Value

func resolve(src *Object) resolved {
	var out resolved
	for _, r := range rules {
		if out[r.field] != nil {
			continue
		}
		v, ok := src.Get(r.key)
		if !ok || !truthy(v) {
			continue
		}
		out[r.field] = v
	}
	return out
}
