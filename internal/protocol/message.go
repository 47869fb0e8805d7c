// Package protocol defines the newline-delimited JSON wire format shared by the
// bridge server and client.
package protocol

import "fmt"

// FieldCommand names the required operation field on every request.
const FieldCommand = "command"

// FieldError names the single field carried by failure responses.
const FieldError = "error"

// Command is one parsed request object. The operation name lives under
// FieldCommand; everything else is operation-specific.
type Command map[string]any

// Response is one reply object: either domain fields chosen by a handler or a
// single FieldError string.
type Response map[string]any

// Name returns the operation name and whether it is present as a string.
func (c Command) Name() (string, bool) {
	name, ok := c[FieldCommand].(string)
	return name, ok
}

// String returns a string field, or fallback when absent or mistyped.
func (c Command) String(key, fallback string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	return fallback
}

// Int returns a numeric field truncated to int, or fallback when absent.
// JSON numbers decode as float64.
func (c Command) Int(key string, fallback int) int {
	switch v := c[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}

// Vector returns a three-element numeric array field.
func (c Command) Vector(key string) ([3]float64, bool) {
	raw, ok := c[key].([]any)
	if !ok || len(raw) < 3 {
		return [3]float64{}, false
	}
	var out [3]float64
	for i := 0; i < 3; i++ {
		f, ok := raw[i].(float64)
		if !ok {
			return [3]float64{}, false
		}
		out[i] = f
	}
	return out, true
}

// Map returns an object-valued field.
func (c Command) Map(key string) (map[string]any, bool) {
	m, ok := c[key].(map[string]any)
	return m, ok
}

// ErrorResponse builds a failure response with a formatted error string.
func ErrorResponse(format string, args ...any) Response {
	return Response{FieldError: fmt.Sprintf(format, args...)}
}

// Err returns the error string and whether the response is a failure.
func (r Response) Err() (string, bool) {
	msg, ok := r[FieldError].(string)
	return msg, ok
}
