// Package jsondoc converts typed values to and from the JSON documents stored
// in jsonb columns.
//
// A Codec is bound to one Go type at construction time, so the shape of a
// document column is declared where the codec is created instead of being
// looked up from the row.
package jsondoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"

	json "github.com/goccy/go-json"
)

// Options cấu hình cách decode document
type Options struct {
	// DisallowUnknownFields reject document có field không khai báo trong T
	DisallowUnknownFields bool
}

// Codec encode/decode document cho một type cố định T
type Codec[T any] struct {
	opts  Options
	shape string
}

// New tạo codec cho type T
func New[T any](opts Options) *Codec[T] {
	var zero T
	shape := reflect.TypeOf(&zero).Elem().String()
	return &Codec[T]{opts: opts, shape: shape}
}

// Shape trả về tên Go type mà codec decode vào
func (c *Codec[T]) Shape() string {
	return c.shape
}

// Encode chuyển value thành JSON document.
// Field có tag omitempty và đang rỗng sẽ không được ghi.
func (c *Codec[T]) Encode(v T) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &Error{Op: OpEncode, Shape: c.shape, Err: err}
	}
	return data, nil
}

// Decode parse document thành T.
// Field không có trong document giữ zero value.
func (c *Codec[T]) Decode(doc []byte) (T, error) {
	var out T

	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return out, &Error{Op: OpDecode, Shape: c.shape, Err: ErrEmptyDocument}
	}

	if !c.opts.DisallowUnknownFields {
		if err := json.Unmarshal(trimmed, &out); err != nil {
			var zero T
			return zero, &Error{Op: OpDecode, Shape: c.shape, Err: err}
		}
		return out, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		var zero T
		return zero, &Error{Op: OpDecode, Shape: c.shape, Err: err}
	}
	// Chỉ chấp nhận đúng một JSON value
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		var zero T
		return zero, &Error{Op: OpDecode, Shape: c.shape, Err: ErrTrailingData}
	}
	return out, nil
}

// DecodeAll decode lần lượt từng document, dừng ở document lỗi đầu tiên
func (c *Codec[T]) DecodeAll(docs [][]byte) ([]T, error) {
	out := make([]T, 0, len(docs))
	for i, doc := range docs {
		v, err := c.Decode(doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
