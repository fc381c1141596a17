// File: errors.go
// Role: sentinel errors for the modelio package.
package modelio

import "errors"

// ErrUnsupportedExtension indicates a file path's extension is none of
// .json, .yml, or .yaml.
var ErrUnsupportedExtension = errors.New("modelio: unsupported file extension")

// ErrMalformedDocument indicates the parsed document does not match the
// expected {name?, model: {...}} shape.
var ErrMalformedDocument = errors.New("modelio: malformed document")
