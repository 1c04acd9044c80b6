package recruitingapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var ErrUnexpectedShape = errors.New("unexpected response shape")

type shape int

const (
	shapeUnknown shape = iota
	shapeArray
	shapeObject
	shapeString
)

// detectShape classifies a JSON document by its first significant byte.
func detectShape(body []byte) shape {
	b := bytes.TrimSpace(body)
	if len(b) == 0 {
		return shapeUnknown
	}
	switch b[0] {
	case '[':
		return shapeArray
	case '{':
		return shapeObject
	case '"':
		return shapeString
	default:
		return shapeUnknown
	}
}

// decodeList decodes either a bare array or an object wrapping the array under
// one of envelopeKeys, checked in order.
func decodeList[T any](body []byte, envelopeKeys ...string) ([]T, error) {
	switch detectShape(body) {
	case shapeArray:
		var out []T
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, err
		}
		return out, nil
	case shapeObject:
		var env map[string]json.RawMessage
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, err
		}
		for _, k := range envelopeKeys {
			raw, ok := env[k]
			if !ok || detectShape(raw) != shapeArray {
				continue
			}
			var out []T
			if err := json.Unmarshal(raw, &out); err != nil {
				return nil, err
			}
			return out, nil
		}
		return nil, ErrUnexpectedShape
	default:
		return nil, ErrUnexpectedShape
	}
}

// decodeObject decodes an object that is either bare or wrapped under one of
// envelopeKeys.
func decodeObject[T any](body []byte, envelopeKeys ...string) (T, error) {
	var out T
	if detectShape(body) != shapeObject {
		return out, ErrUnexpectedShape
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(body, &env); err != nil {
		return out, err
	}
	for _, k := range envelopeKeys {
		raw, ok := env[k]
		if ok && detectShape(raw) == shapeObject {
			if err := json.Unmarshal(raw, &out); err != nil {
				return out, err
			}
			return out, nil
		}
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, err
	}
	return out, nil
}

// decodeLink reads the shareable link returned by job creation: {"link": "..."}
// or a bare JSON string.
func decodeLink(body []byte) (string, error) {
	switch detectShape(body) {
	case shapeString:
		var s string
		if err := json.Unmarshal(body, &s); err != nil {
			return "", err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return "", ErrUnexpectedShape
		}
		return s, nil
	case shapeObject:
		var out struct {
			Link flexString `json:"link"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			return "", err
		}
		link := strings.TrimSpace(string(out.Link))
		if link == "" {
			return "", ErrUnexpectedShape
		}
		return link, nil
	default:
		return "", ErrUnexpectedShape
	}
}

// flexString accepts a JSON string or number. Identifiers arrive as either.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexNumber accepts a JSON number, a numeric string or null.
type flexNumber struct {
	Value float64
	Valid bool
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*n = flexNumber{}
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		*n = flexNumber{Value: v, Valid: true}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = flexNumber{Value: v, Valid: true}
	return nil
}

// flexBool accepts true/false or their string forms.
type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = false
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, _ := strconv.ParseBool(strings.TrimSpace(s))
		*f = flexBool(v)
		return nil
	}
	var v bool
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexBool(v)
	return nil
}
