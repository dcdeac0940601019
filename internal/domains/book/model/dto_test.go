package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func validRequest() BookRequest {
	return BookRequest{
		Title:     ptr("Ethan Frome"),
		Genre:     ptr("drama"),
		Publisher: ptr("Scribner"),
		Star:      3,
		Author:    &AuthorRequest{FirstName: "Edith", LastName: "Wharton"},
	}
}

func TestBookRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *BookRequest)
		wantMsg string
	}{
		{name: "valid", mutate: func(r *BookRequest) {}},
		{name: "missing title", mutate: func(r *BookRequest) { r.Title = nil }, wantMsg: "title should not be null"},
		{name: "missing genre", mutate: func(r *BookRequest) { r.Genre = nil }, wantMsg: "genre should not be null"},
		{name: "missing publisher", mutate: func(r *BookRequest) { r.Publisher = nil }, wantMsg: "publisher should not be null"},
		{name: "missing author", mutate: func(r *BookRequest) { r.Author = nil }, wantMsg: "author should not be null"},
		{name: "star zero", mutate: func(r *BookRequest) { r.Star = 0 }, wantMsg: "star should be between 1 and 5"},
		{name: "star too high", mutate: func(r *BookRequest) { r.Star = 6 }, wantMsg: "star should be between 1 and 5"},
		{name: "star negative", mutate: func(r *BookRequest) { r.Star = -1 }, wantMsg: "star should be between 1 and 5"},
		{name: "star lower bound", mutate: func(r *BookRequest) { r.Star = 1 }},
		{name: "star upper bound", mutate: func(r *BookRequest) { r.Star = 5 }},
		{name: "empty genre", mutate: func(r *BookRequest) { r.Genre = ptr("") }, wantMsg: "unknown genre"},
		{name: "unknown genre", mutate: func(r *BookRequest) { r.Genre = ptr("POETRY") }, wantMsg: "unknown genre"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestBookRequest_ValidateReportsEveryField(t *testing.T) {
	err := BookRequest{}.Validate()
	require.Error(t, err)

	for _, msg := range []string{
		"title should not be null",
		"genre should not be null",
		"publisher should not be null",
		"author should not be null",
		"star should be between 1 and 5",
	} {
		assert.Contains(t, err.Error(), msg)
	}
}

func TestBookRequest_ToBook(t *testing.T) {
	req := validRequest()
	req.Title = ptr("  Ethan Frome ")
	id := uuid.New()

	b := req.ToBook(id)
	assert.Equal(t, id, b.ID)
	assert.Equal(t, "Ethan Frome", b.Title)
	assert.Equal(t, GenreDrama, b.Genre)
	assert.Equal(t, "Scribner", b.Publisher)
	assert.Equal(t, 3, b.Star)
	require.NotNil(t, b.Author)
	assert.Equal(t, "Wharton", b.Author.LastName)
	assert.Empty(t, b.Match)
}
