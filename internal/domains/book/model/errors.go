package model

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrorKind phân loại lỗi để caller phân biệt "thiếu" với "hỏng"
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1 // input sai, lỗi phía client
	KindNotFound                        // không có id, lỗi phía client
	KindCodec                           // document hỏng hoặc lệch version, lỗi server
	KindStorage                         // lỗi kết nối / constraint, có thể retry
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindCodec:
		return "codec"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error codes
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeBookNotFound     = "BOOK_NOT_FOUND"
	CodeAuditsNotFound   = "AUDITS_NOT_FOUND"
	CodeCodecError       = "DOCUMENT_CODEC_ERROR"
	CodeStorageError     = "STORAGE_ERROR"
)

// BookError định nghĩa base error cho book domain
type BookError struct {
	Kind    ErrorKind
	Code    string // Error code duy nhất (VD: "BOOK_NOT_FOUND")
	Message string // Human-readable message
	Err     error  // Underlying error
}

// Error implements error interface
func (e *BookError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap allows error wrapping compatibility
func (e *BookError) Unwrap() error {
	return e.Err
}

// ============================================
// ERROR FACTORY FUNCTIONS
// ============================================

func NewValidationError(err error) *BookError {
	return &BookError{
		Kind:    KindValidation,
		Code:    CodeValidationFailed,
		Message: "Invalid book request",
		Err:     err,
	}
}

func NewBookNotFound(id uuid.UUID) *BookError {
	return &BookError{
		Kind:    KindNotFound,
		Code:    CodeBookNotFound,
		Message: fmt.Sprintf("Book with id %s not found", id),
	}
}

func NewAuditsNotFound(id uuid.UUID) *BookError {
	return &BookError{
		Kind:    KindNotFound,
		Code:    CodeAuditsNotFound,
		Message: fmt.Sprintf("No audits for book with id %s", id),
	}
}

func NewCodecError(err error) *BookError {
	return &BookError{
		Kind:    KindCodec,
		Code:    CodeCodecError,
		Message: "Stored document could not be converted",
		Err:     err,
	}
}

// NewStorageError wrap lỗi của driver; op mô tả thao tác đang chạy
func NewStorageError(op string, err error) *BookError {
	return &BookError{
		Kind:    KindStorage,
		Code:    CodeStorageError,
		Message: "Failed to " + op,
		Err:     err,
	}
}

// ============================================
// ERROR CHECKING FUNCTIONS
// ============================================

func kindOf(err error) ErrorKind {
	var bookErr *BookError
	if errors.As(err, &bookErr) {
		return bookErr.Kind
	}
	return 0
}

func IsValidationError(err error) bool { return kindOf(err) == KindValidation }
func IsNotFoundError(err error) bool   { return kindOf(err) == KindNotFound }
func IsCodecError(err error) bool      { return kindOf(err) == KindCodec }
func IsStorageError(err error) bool    { return kindOf(err) == KindStorage }

// IsDomainError kiểm tra có phải BookError
func IsDomainError(err error) bool {
	return kindOf(err) != 0
}

// GetErrorCode lấy error code từ error
func GetErrorCode(err error) string {
	var bookErr *BookError
	if errors.As(err, &bookErr) {
		return bookErr.Code
	}
	return "INTERNAL_ERROR"
}

// GetErrorMessage lấy message hiển thị cho client
func GetErrorMessage(err error) string {
	var bookErr *BookError
	if !errors.As(err, &bookErr) {
		return "Internal server error"
	}
	// Chi tiết validation có ích cho client, lỗi server thì không
	if bookErr.Kind == KindValidation && bookErr.Err != nil {
		return bookErr.Err.Error()
	}
	return bookErr.Message
}

// MapErrorToHTTP chuyển BookError sang (status, message, code)
func MapErrorToHTTP(err error) (int, string, string) {
	if err == nil {
		return http.StatusOK, "Success", ""
	}

	switch kindOf(err) {
	case KindValidation:
		return http.StatusBadRequest, GetErrorMessage(err), GetErrorCode(err)
	case KindNotFound:
		return http.StatusNotFound, GetErrorMessage(err), GetErrorCode(err)
	case KindCodec:
		return http.StatusInternalServerError, GetErrorMessage(err), GetErrorCode(err)
	case KindStorage:
		return http.StatusServiceUnavailable, GetErrorMessage(err), GetErrorCode(err)
	default:
		return http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR"
	}
}
