package repository

import (
	"context"

	"bookstore-jsonb/internal/domains/book/model"
	"bookstore-jsonb/pkg/database"
	"bookstore-jsonb/pkg/jsondoc"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// auditRepository - bảng book_audits (id, made_at, audit jsonb).
// Không có UPDATE/DELETE: audit là append-only và tồn tại sau khi book bị xoá.
type auditRepository struct {
	db    database.DBTX
	codec *jsondoc.Codec[model.AuditRecord]
}

func NewAuditRepository(db database.DBTX, codec *jsondoc.Codec[model.AuditRecord]) AuditRepositoryInterface {
	return &auditRepository{
		db:    db,
		codec: codec,
	}
}

const (
	insertAuditQuery = `INSERT INTO book_audits (id, made_at, audit) VALUES ($1, $2, $3)`
	listAuditsQuery  = `SELECT audit FROM book_audits WHERE id = $1 ORDER BY made_at ASC`
)

// AppendWithTx ghi một audit record trong transaction của thao tác ghi.
// Lỗi ở đây làm transaction bên ngoài rollback.
func (r *auditRepository) AppendWithTx(ctx context.Context, tx pgx.Tx, bookID uuid.UUID, record *model.AuditRecord) error {
	rec := *record
	rec.MadeAt = model.AuditTimestamp(rec.MadeAt)

	raw, err := r.codec.Encode(rec)
	if err != nil {
		return model.NewCodecError(err)
	}

	if _, err := tx.Exec(ctx, insertAuditQuery, bookID, rec.MadeAt, raw); err != nil {
		return model.NewStorageError("append audit", err)
	}
	return nil
}

// ListByBookID trả về audit theo thứ tự thời gian tăng dần.
// Không có record thì trả slice rỗng; service quyết định có coi là not found hay không.
func (r *auditRepository) ListByBookID(ctx context.Context, bookID uuid.UUID) ([]model.AuditRecord, error) {
	rows, err := r.db.Query(ctx, listAuditsQuery, bookID)
	if err != nil {
		return nil, model.NewStorageError("list audits", err)
	}
	defer rows.Close()

	docs := make([][]byte, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, model.NewStorageError("scan audit", err)
		}
		docs = append(docs, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, model.NewStorageError("list audits", err)
	}

	records, err := r.codec.DecodeAll(docs)
	if err != nil {
		return nil, model.NewCodecError(err)
	}
	return records, nil
}
