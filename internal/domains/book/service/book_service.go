package service

import (
	"context"
	"time"

	"bookstore-jsonb/internal/domains/book/model"
	"bookstore-jsonb/internal/domains/book/repository"
	"bookstore-jsonb/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// BookService - Implements ServiceInterface
type BookService struct {
	db        database.Pool
	repo      repository.RepositoryInterface
	auditRepo repository.AuditRepositoryInterface

	now   func() time.Time
	newID func() uuid.UUID
}

// Option thay đổi dependency phụ của service (clock, id generator)
type Option func(*BookService)

func WithClock(now func() time.Time) Option {
	return func(s *BookService) { s.now = now }
}

func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *BookService) { s.newID = newID }
}

// NewService - Constructor with DI
func NewService(
	db database.Pool,
	repo repository.RepositoryInterface,
	auditRepo repository.AuditRepositoryInterface,
	opts ...Option,
) ServiceInterface {
	s := &BookService{
		db:        db,
		repo:      repo,
		auditRepo: auditRepo,
		now:       time.Now,
		newID:     uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBook: validate -> sinh id -> insert + audit CREATE trong cùng transaction
func (s *BookService) CreateBook(ctx context.Context, req model.BookRequest, actor string) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	book := req.ToBook(s.newID())

	created, err := database.WithTransactionResult(ctx, s.db, func(tx pgx.Tx) (*model.Book, error) {
		created, err := s.repo.CreateWithTx(ctx, tx, &book)
		if err != nil {
			return nil, err
		}
		audit := model.NewAuditRecord(model.ChangeCreate, actor, *created, s.now())
		if err := s.auditRepo.AppendWithTx(ctx, tx, created.ID, audit); err != nil {
			return nil, err
		}
		return created, nil
	})
	if err != nil {
		return nil, asDomainError("create book", err)
	}

	log.Info().
		Str("book_id", created.ID.String()).
		Str("actor", actor).
		Msg("Created book")
	return created, nil
}

// GetBook lấy book theo id
func (s *BookService) GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, asDomainError("get book", err)
	}
	return b, nil
}

// ListBooks - query rỗng trả toàn bộ, ngược lại search ở database
func (s *BookService) ListBooks(ctx context.Context, query string) ([]model.Book, error) {
	books, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, asDomainError("list books", err)
	}
	return books, nil
}

// UpdateBook: lock book hiện tại (404 nếu không có) -> validate -> ghi đè -> audit UPDATE
func (s *BookService) UpdateBook(ctx context.Context, id uuid.UUID, req model.BookRequest, actor string) (*model.Book, error) {
	updated, err := database.WithTransactionResult(ctx, s.db, func(tx pgx.Tx) (*model.Book, error) {
		if _, err := s.repo.GetByIDForUpdate(ctx, tx, id); err != nil {
			return nil, err
		}

		if err := req.Validate(); err != nil {
			return nil, model.NewValidationError(err)
		}

		book := req.ToBook(id)
		updated, err := s.repo.UpdateWithTx(ctx, tx, &book)
		if err != nil {
			return nil, err
		}

		audit := model.NewAuditRecord(model.ChangeUpdate, actor, *updated, s.now())
		if err := s.auditRepo.AppendWithTx(ctx, tx, id, audit); err != nil {
			return nil, err
		}
		return updated, nil
	})
	if err != nil {
		return nil, asDomainError("update book", err)
	}

	log.Info().
		Str("book_id", id.String()).
		Str("actor", actor).
		Msg("Updated book")
	return updated, nil
}

// DeleteBook xoá book theo id. Không ghi audit DELETE.
func (s *BookService) DeleteBook(ctx context.Context, id uuid.UUID, actor string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return asDomainError("delete book", err)
	}

	log.Info().
		Str("book_id", id.String()).
		Str("actor", actor).
		Msg("Deleted book")
	return nil
}

// DeleteAllBooks xoá toàn bộ, không ghi audit
func (s *BookService) DeleteAllBooks(ctx context.Context, actor string) (int64, error) {
	count, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, asDomainError("delete all books", err)
	}

	log.Info().
		Int64("deleted", count).
		Str("actor", actor).
		Msg("Deleted all books")
	return count, nil
}

// PublishersMatching - typeahead cho publisher
func (s *BookService) PublishersMatching(ctx context.Context, partial string) ([]string, error) {
	publishers, err := s.repo.DistinctValues(ctx, repository.FieldPublisher, partial)
	if err != nil {
		return nil, asDomainError("list publishers", err)
	}
	return publishers, nil
}

// GetAudits trả audit của book; không có record nào thì NotFound
func (s *BookService) GetAudits(ctx context.Context, id uuid.UUID) ([]model.AuditRecord, error) {
	records, err := s.auditRepo.ListByBookID(ctx, id)
	if err != nil {
		return nil, asDomainError("list audits", err)
	}
	if len(records) == 0 {
		return nil, model.NewAuditsNotFound(id)
	}
	return records, nil
}

// asDomainError đảm bảo không có lỗi của driver lọt ra ngoài service.
// Lỗi begin/commit transaction đi thẳng từ pgx nên được coi là StorageError.
func asDomainError(op string, err error) error {
	if model.IsDomainError(err) {
		return err
	}
	return model.NewStorageError(op, err)
}
