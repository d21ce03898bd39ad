package domain

import "github.com/pkg/errors"

var (
	// ErrInvalidJSONData is returned when bytes are not JSON or not of the expected top-level shape.
	ErrInvalidJSONData = errors.New("invalid json data")

	// ErrInvalidDictionaryContents is returned when an object lacks a recognizable kind/data pair.
	ErrInvalidDictionaryContents = errors.New("invalid json dictionary contents")

	// ErrInvalidArrayContents is returned when an array holds a non-object element.
	ErrInvalidArrayContents = errors.New("invalid json array contents")
)
