package jsondoc

import (
	"errors"
	"fmt"
)

// Op là thao tác codec bị lỗi
type Op string

const (
	OpEncode Op = "encode"
	OpDecode Op = "decode"
)

var (
	ErrEmptyDocument = errors.New("document is empty")
	ErrTrailingData  = errors.New("document has trailing data")
)

// Error là lỗi codec: document hỏng hoặc không khớp shape của T
type Error struct {
	Op    Op
	Shape string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsondoc: %s %s: %v", e.Op, e.Shape, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
