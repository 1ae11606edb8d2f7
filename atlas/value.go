package atlas

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// Value is one decoded JSON value. It holds nil, bool, json.Number, string,
// []Value or *Object.
type Value interface{}

// Member is a single key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object which remembers the order of its members.
//
// A key repeated in the document keeps its first position and its last
// value.
type Object struct {
	Members []Member

	index map[string]int
}

func newObject() *Object {
	return &Object{index: make(map[string]int)}
}

func (o *Object) set(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.Members[i].Value = v
		return
	}
	o.index[key] = len(o.Members)
	o.Members = append(o.Members, Member{Key: key, Value: v})
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	if o.index == nil {
		for i := len(o.Members) - 1; i >= 0; i-- {
			if o.Members[i].Key == key {
				return o.Members[i].Value, true
			}
		}
		return nil, false
	}
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.Members[i].Value, true
}

// Decode reads exactly one JSON document from r.
//
// Unlike json.Unmarshal into a map, object member order is kept, which is
// what makes keyed frame lists come out in document order.
func Decode(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, &FormatError{Reason: "malformed JSON", Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &FormatError{Reason: "unexpected data after JSON document"}
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		o := newObject()
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("object key %v is not a string", kt)
			}
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			o.set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return o, nil
	case '[':
		arr := []Value{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %v", delim)
}

// truthy mirrors how loosely typed packers treat flags: false, null, 0 and
// "" are false, everything else is true.
func truthy(v Value) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case string:
		return t != ""
	}
	return true
}

// integer converts a JSON number to an int, truncating any fraction.
func integer(v Value) (int, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		if i > math.MaxInt32 || i < math.MinInt32 {
			return 0, false
		}
		return int(i), true
	}
	f, err := n.Float64()
	if err != nil || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
