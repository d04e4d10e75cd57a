package model

import "time"

// AuditEntry records one mutation this service issued against the reservation
// log. The log sheet itself is shared and externally editable, so the local
// audit trail is the only complete record of what this process wrote.
type AuditEntry struct {
	ID         int64     `gorm:"autoIncrement;primaryKey"`
	RecordedAt time.Time `gorm:"not null;index"`
	Operation  string    `gorm:"size:32;not null"` // reserve, confirm, cancel, undo
	EventID    string    `gorm:"size:64;not null;index"`
	TableID    string    `gorm:"size:64;not null;index"`
	Detail     string    `gorm:"size:512"`
}
