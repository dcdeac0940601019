package repository

import (
	"context"
	"errors"
	"strings"

	"bookstore-jsonb/internal/domains/book/model"
	"bookstore-jsonb/pkg/database"
	"bookstore-jsonb/pkg/jsondoc"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// postgresRepository - raw SQL với pgx, document lưu ở cột book (jsonb)
type postgresRepository struct {
	db    database.DBTX
	codec *jsondoc.Codec[model.Book]
}

// NewPostgresRepository - Constructor
func NewPostgresRepository(db database.DBTX, codec *jsondoc.Codec[model.Book]) RepositoryInterface {
	return &postgresRepository{
		db:    db,
		codec: codec,
	}
}

const (
	insertBookQuery       = `INSERT INTO books (id, book) VALUES ($1, $2) RETURNING book`
	getBookQuery          = `SELECT book FROM books WHERE id = $1`
	getBookForUpdateQuery = `SELECT book FROM books WHERE id = $1 FOR UPDATE`
	listBooksQuery        = `SELECT book FROM books`
	searchBooksQuery      = `SELECT book FROM search_books($1)`
	updateBookQuery       = `UPDATE books SET book = $2 WHERE id = $1 RETURNING book`
	deleteBookQuery       = `DELETE FROM books WHERE id = $1`
	deleteAllBooksQuery   = `DELETE FROM books`
	distinctValuesQuery   = `
		SELECT DISTINCT b.book ->> $1 AS value
		FROM books b
		WHERE b.book ->> $1 ILIKE '%' || $2 || '%'
		ORDER BY value
	`
)

// ============================================
// CREATE
// ============================================

// CreateWithTx insert book mới trong transaction của caller, id được sinh nếu chưa có
func (r *postgresRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, book *model.Book) (*model.Book, error) {
	return r.create(ctx, tx, book)
}

func (r *postgresRepository) create(ctx context.Context, q database.DBTX, book *model.Book) (*model.Book, error) {
	doc := book.Persistable()
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}

	raw, err := r.codec.Encode(doc)
	if err != nil {
		return nil, model.NewCodecError(err)
	}

	var stored []byte
	if err := q.QueryRow(ctx, insertBookQuery, doc.ID, raw).Scan(&stored); err != nil {
		return nil, model.NewStorageError("create book", err)
	}

	return r.decode(stored)
}

// ============================================
// READ
// ============================================

// GetByID lấy book theo id, NotFound nếu không tồn tại
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return r.getOne(ctx, r.db, getBookQuery, id)
}

// GetByIDForUpdate - SELECT ... FOR UPDATE (lock row tới khi tx kết thúc)
func (r *postgresRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Book, error) {
	return r.getOne(ctx, tx, getBookForUpdateQuery, id)
}

func (r *postgresRepository) getOne(ctx context.Context, q database.DBTX, query string, id uuid.UUID) (*model.Book, error) {
	var raw []byte
	err := q.QueryRow(ctx, query, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.NewBookNotFound(id)
	}
	if err != nil {
		return nil, model.NewStorageError("get book", err)
	}
	return r.decode(raw)
}

// List trả về toàn bộ book theo thứ tự lưu trữ; có query thì giao cho Search
func (r *postgresRepository) List(ctx context.Context, query string) ([]model.Book, error) {
	if strings.TrimSpace(query) != "" {
		return r.Search(ctx, query)
	}
	return r.queryDocuments(ctx, "list books", listBooksQuery)
}

// Search gọi stored function search_books; việc match và tạo excerpt
// nằm hoàn toàn ở phía database
func (r *postgresRepository) Search(ctx context.Context, query string) ([]model.Book, error) {
	return r.queryDocuments(ctx, "search books", searchBooksQuery, query)
}

func (r *postgresRepository) queryDocuments(ctx context.Context, op, query string, args ...any) ([]model.Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, model.NewStorageError(op, err)
	}
	defer rows.Close()

	docs := make([][]byte, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, model.NewStorageError(op, err)
		}
		docs = append(docs, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, model.NewStorageError(op, err)
	}

	books, err := r.codec.DecodeAll(docs)
	if err != nil {
		return nil, model.NewCodecError(err)
	}
	return books, nil
}

// ============================================
// UPDATE
// ============================================

// UpdateWithTx ghi đè document của book đã tồn tại
func (r *postgresRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, book *model.Book) (*model.Book, error) {
	doc := book.Persistable()

	raw, err := r.codec.Encode(doc)
	if err != nil {
		return nil, model.NewCodecError(err)
	}

	var stored []byte
	err = tx.QueryRow(ctx, updateBookQuery, doc.ID, raw).Scan(&stored)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.NewBookNotFound(doc.ID)
	}
	if err != nil {
		return nil, model.NewStorageError("update book", err)
	}

	return r.decode(stored)
}

// ============================================
// DELETE
// ============================================

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteBookQuery, id)
	if err != nil {
		return model.NewStorageError("delete book", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewBookNotFound(id)
	}
	return nil
}

// DeleteAll xoá toàn bộ book, trả về số row đã xoá
func (r *postgresRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteAllBooksQuery)
	if err != nil {
		return 0, model.NewStorageError("delete all books", err)
	}
	return tag.RowsAffected(), nil
}

// ============================================
// DISTINCT VALUES
// ============================================

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// DistinctValues lấy giá trị không trùng của một field trong document,
// lọc theo substring không phân biệt hoa thường (dùng cho typeahead)
func (r *postgresRepository) DistinctValues(ctx context.Context, field, partial string) ([]string, error) {
	rows, err := r.db.Query(ctx, distinctValuesQuery, field, likeEscaper.Replace(partial))
	if err != nil {
		return nil, model.NewStorageError("query distinct "+field, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, model.NewStorageError("scan distinct "+field, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, model.NewStorageError("query distinct "+field, err)
	}

	return values, nil
}

func (r *postgresRepository) decode(raw []byte) (*model.Book, error) {
	b, err := r.codec.Decode(raw)
	if err != nil {
		return nil, model.NewCodecError(err)
	}
	return &b, nil
}
