package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Genre - thể loại sách
type Genre string

const (
	GenreDrama   Genre = "DRAMA"
	GenreRomance Genre = "ROMANCE"
	GenreGuide   Genre = "GUIDE"
	GenreTravel  Genre = "TRAVEL"
	GenreFiction Genre = "FICTION"
	GenreMystery Genre = "MYSTERY"
	GenreHorror  Genre = "HORROR"
	GenreComedy  Genre = "COMEDY"
)

var genres = map[Genre]struct{}{
	GenreDrama:   {},
	GenreRomance: {},
	GenreGuide:   {},
	GenreTravel:  {},
	GenreFiction: {},
	GenreMystery: {},
	GenreHorror:  {},
	GenreComedy:  {},
}

// ParseGenre parse genre không phân biệt hoa thường ("drama" -> DRAMA)
func ParseGenre(s string) (Genre, error) {
	g := Genre(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := genres[g]; !ok {
		return "", fmt.Errorf("unknown genre %q", s)
	}
	return g, nil
}

// Validate implements validation.Validatable
func (g Genre) Validate() error {
	if _, ok := genres[g]; !ok {
		return fmt.Errorf("unknown genre %q", string(g))
	}
	return nil
}

func (g Genre) String() string {
	return string(g)
}

// UnmarshalText cho phép document và request gửi genre ở dạng chữ thường
func (g *Genre) UnmarshalText(text []byte) error {
	parsed, err := ParseGenre(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Author - tác giả, nằm lồng trong document của Book
type Author struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Book là shape của document lưu trong cột books.book (jsonb).
// Match chỉ được điền bởi search, không bao giờ được lưu.
type Book struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title,omitempty"`
	Genre     Genre     `json:"genre,omitempty"`
	Publisher string    `json:"publisher,omitempty"`
	Star      int       `json:"star,omitempty"`
	Author    *Author   `json:"author,omitempty"`
	Match     string    `json:"match,omitempty"`
}

// Persistable trả về bản copy không có các field transient
func (b Book) Persistable() Book {
	b.Match = ""
	if b.Author != nil {
		author := *b.Author
		b.Author = &author
	}
	return b
}
