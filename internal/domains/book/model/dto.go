package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ========================================
// REQUEST DTOs
// ========================================

// AuthorRequest - tác giả trong request
type AuthorRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// BookRequest - payload cho create và update.
// Các field dùng pointer để phân biệt "không gửi" (nil) với giá trị rỗng.
// Genre giữ dạng chuỗi: genre lạ là lỗi validation, không phải lỗi bind,
// để update một id không tồn tại vẫn trả 404 trước.
type BookRequest struct {
	Title     *string        `json:"title"`
	Genre     *string        `json:"genre"`
	Publisher *string        `json:"publisher"`
	Star      int            `json:"star"`
	Author    *AuthorRequest `json:"author"`
}

func (r BookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NotNil.Error("title should not be null")),
		validation.Field(&r.Genre,
			validation.NotNil.Error("genre should not be null"),
			validation.By(knownGenre),
		),
		validation.Field(&r.Publisher, validation.NotNil.Error("publisher should not be null")),
		validation.Field(&r.Author, validation.NotNil.Error("author should not be null")),
		validation.Field(&r.Star,
			validation.Required.Error("star should be between 1 and 5"),
			validation.Min(1).Error("star should be between 1 and 5"),
			validation.Max(5).Error("star should be between 1 and 5"),
		),
	)
}

func knownGenre(value interface{}) error {
	s, _ := value.(*string)
	if s == nil {
		return nil
	}
	_, err := ParseGenre(*s)
	return err
}

// ToBook map request sang Book với id cho trước.
// Gọi sau Validate: các pointer bắt buộc đã khác nil.
func (r BookRequest) ToBook(id uuid.UUID) Book {
	b := Book{
		ID:   id,
		Star: r.Star,
	}
	if r.Title != nil {
		b.Title = strings.TrimSpace(*r.Title)
	}
	if r.Genre != nil {
		if g, err := ParseGenre(*r.Genre); err == nil {
			b.Genre = g
		}
	}
	if r.Publisher != nil {
		b.Publisher = strings.TrimSpace(*r.Publisher)
	}
	if r.Author != nil {
		b.Author = &Author{
			FirstName: strings.TrimSpace(r.Author.FirstName),
			LastName:  strings.TrimSpace(r.Author.LastName),
		}
	}
	return b
}

// ========================================
// RESPONSE DTOs
// ========================================

// DeleteAllResponse - kết quả xoá toàn bộ
type DeleteAllResponse struct {
	Deleted int64 `json:"deleted"`
}
