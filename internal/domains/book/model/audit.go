package model

import (
	"fmt"
	"strings"
	"time"
)

// ChangeType - loại thao tác ghi được audit
type ChangeType string

const (
	ChangeCreate ChangeType = "CREATE"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

func (t *ChangeType) UnmarshalText(text []byte) error {
	switch v := ChangeType(strings.ToUpper(string(text))); v {
	case ChangeCreate, ChangeUpdate, ChangeDelete:
		*t = v
		return nil
	default:
		return fmt.Errorf("unknown change type %q", string(text))
	}
}

// AuditRecord là một bản ghi audit bất biến, key (state.id, madeAt).
// State là snapshot của Book tại thời điểm thao tác.
type AuditRecord struct {
	Change ChangeType `json:"change"`
	MadeAt time.Time  `json:"madeAt"`
	MadeBy string     `json:"madeBy,omitempty"`
	State  *Book      `json:"state,omitempty"`
}

// AuditTimestamp chuẩn hoá thời gian về UTC, độ chính xác micro giây
// (bằng độ chính xác của timestamptz) để key đọc lại khớp với key đã ghi.
func AuditTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// NewAuditRecord tạo audit record; snapshot không bao gồm field transient
func NewAuditRecord(change ChangeType, actor string, state Book, at time.Time) *AuditRecord {
	snapshot := state.Persistable()
	return &AuditRecord{
		Change: change,
		MadeAt: AuditTimestamp(at),
		MadeBy: actor,
		State:  &snapshot,
	}
}
