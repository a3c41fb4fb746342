package framing

import "fmt"

// DecodeError indicates uploaded bytes are not a readable PNG or JPEG image
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("decode error: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// EncodeError indicates a framed image could not be encoded
type EncodeError struct {
	Format string
	Cause  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode error: %s: %v", e.Format, e.Cause)
}

func (e *EncodeError) Unwrap() error {
	return e.Cause
}
