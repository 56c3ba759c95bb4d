package linkedroles

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"io"
)

type dupFrame struct {
	object       bool
	path         PathRef
	keys         map[string]struct{}
	key          string // last key read
	expectingKey bool
	next         int // next array index
}

// valuePath returns the path of the value about to be read in f and advances f.
func (f *dupFrame) valuePath() PathRef {
	if f.object {
		f.expectingKey = true
		return f.path.Field(f.key)
	}
	p := f.path.Index(f.next)
	f.next++
	return p
}

// detectDuplicateKeys reports every object key repeated within the same
// object, at the JSON Pointer of the repeated member. Decoders keep the last
// occurrence silently, so this runs on the raw bytes first.
func detectDuplicateKeys(data []byte) (Issues, error) {
	dec := stdjson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var stack []*dupFrame
	var iss Issues
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			if len(stack) > 0 {
				return iss, io.ErrUnexpectedEOF
			}
			break
		}
		if err != nil {
			return iss, err
		}

		var top *dupFrame
		if n := len(stack); n > 0 {
			top = stack[n-1]
		}
		if s, ok := tok.(string); ok && top != nil && top.object && top.expectingKey {
			if _, dup := top.keys[s]; dup {
				iss = append(iss, top.path.Field(s).Issue(CodeDuplicate, "key", s))
			}
			top.keys[s] = struct{}{}
			top.key = s
			top.expectingKey = false
			continue
		}

		switch tok {
		case stdjson.Delim('}'), stdjson.Delim(']'):
			stack = stack[:len(stack)-1]
			continue
		}
		p := Root()
		if top != nil {
			p = top.valuePath()
		}
		switch tok {
		case stdjson.Delim('{'):
			stack = append(stack, &dupFrame{object: true, path: p, keys: make(map[string]struct{}), expectingKey: true})
		case stdjson.Delim('['):
			stack = append(stack, &dupFrame{path: p})
		}
	}
	return iss, nil
}
