package repository

import (
	"context"

	"bookstore-jsonb/internal/domains/book/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Document field dùng cho DistinctValues
const FieldPublisher = "publisher"

// RepositoryInterface - data access cho bảng books (id, book jsonb)
type RepositoryInterface interface {
	CreateWithTx(ctx context.Context, tx pgx.Tx, book *model.Book) (*model.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Book, error)
	List(ctx context.Context, query string) ([]model.Book, error)
	Search(ctx context.Context, query string) ([]model.Book, error)
	UpdateWithTx(ctx context.Context, tx pgx.Tx, book *model.Book) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
	DistinctValues(ctx context.Context, field, partial string) ([]string, error)
}

// AuditRepositoryInterface - append-only audit log, key (id, made_at)
type AuditRepositoryInterface interface {
	AppendWithTx(ctx context.Context, tx pgx.Tx, bookID uuid.UUID, record *model.AuditRecord) error
	ListByBookID(ctx context.Context, bookID uuid.UUID) ([]model.AuditRecord, error)
}
