package service

import (
	"context"

	"bookstore-jsonb/internal/domains/book/model"

	"github.com/google/uuid"
)

// ServiceInterface - Định nghĩa business logic methods
type ServiceInterface interface {
	CreateBook(ctx context.Context, req model.BookRequest, actor string) (*model.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error)
	ListBooks(ctx context.Context, query string) ([]model.Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, req model.BookRequest, actor string) (*model.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID, actor string) error
	DeleteAllBooks(ctx context.Context, actor string) (int64, error)
	PublishersMatching(ctx context.Context, partial string) ([]string, error)
	GetAudits(ctx context.Context, id uuid.UUID) ([]model.AuditRecord, error)
}
