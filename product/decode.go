package product

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrTruncated reports a body that starts like JSON but ends before the
// value is complete.
var ErrTruncated = errors.New("truncated JSON body")

// Shape identifies which response layout a payload used.
type Shape int

const (
	// ShapeUnknown is any body that is neither a bare array nor an envelope.
	ShapeUnknown Shape = iota

	// ShapeList is a bare JSON array of products.
	ShapeList

	// ShapeEnvelope is an object wrapping the array under "data".
	ShapeEnvelope
)

// String returns a human-readable name for the shape.
func (s Shape) String() string {
	switch s {
	case ShapeList:
		return "list"
	case ShapeEnvelope:
		return "envelope"
	default:
		return "unknown"
	}
}

// Payload is the decoded form of a product list response.
//
// Items is never nil; an unrecognised shape decodes to an empty list.
type Payload struct {
	Shape Shape
	Items []Product
}

// Decode classifies a response body and extracts the product list.
//
// A bare array and an envelope of the form {"data": [...]} both yield the
// inner array unchanged. Any other body, including non-JSON text, {} and
// {"data": null}, yields [ShapeUnknown] with an empty list.
//
// An error is returned when the shape is recognised but its elements cannot
// be decoded as products, and when an object or array body is cut off
// before its end ([ErrTruncated]).
func Decode(body []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return unknownPayload(), nil
	}

	switch trimmed[0] {
	case '[':
		items, err := decodeItems(trimmed)
		if err != nil {
			return Payload{}, err
		}
		return Payload{Shape: ShapeList, Items: items}, nil

	case '{':
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			if truncated(err, trimmed) {
				return Payload{}, ErrTruncated
			}
			return unknownPayload(), nil
		}
		data := bytes.TrimSpace(envelope.Data)
		if len(data) == 0 || data[0] != '[' {
			return unknownPayload(), nil
		}
		items, err := decodeItems(data)
		if err != nil {
			return Payload{}, fmt.Errorf("envelope data: %w", err)
		}
		return Payload{Shape: ShapeEnvelope, Items: items}, nil
	}

	return unknownPayload(), nil
}

func decodeItems(data []byte) ([]Product, error) {
	var items []Product
	if err := json.Unmarshal(data, &items); err != nil {
		if truncated(err, data) {
			return nil, ErrTruncated
		}
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	if items == nil {
		items = []Product{}
	}
	return items, nil
}

func unknownPayload() Payload {
	return Payload{Shape: ShapeUnknown, Items: []Product{}}
}

// truncated reports whether err is a syntax error raised at the very end of
// data, i.e. the input stopped in the middle of a value.
func truncated(err error, data []byte) bool {
	var syntaxErr *json.SyntaxError
	return errors.As(err, &syntaxErr) && syntaxErr.Offset >= int64(len(data))
}
