package entities

import (
	"time"
)

// AuditAction identifies the kind of operation an audit event records.
type AuditAction string

const (
	AuditActionBatchSync AuditAction = "batch_sync"
	AuditActionImport    AuditAction = "readinglog_import"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100" json:"username"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Shelf is a named collection of book records owned by a single user.
// The owner is set at creation time and never changes afterwards.
type Shelf struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	Private   bool      `gorm:"default:false" json:"private"`
	OwnerID   uint      `gorm:"index;not null" json:"owner"`
	Owner     User      `gorm:"foreignKey:OwnerID" json:"-"`
	Records   []Record  `gorm:"foreignKey:ShelfID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Record is one catalogued book entry on a shelf. CoverPath points at a file
// in the cover store; RandomCover picks a placeholder illustration (1-6) when
// no cover was uploaded.
type Record struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ShelfID     uint      `gorm:"index;not null" json:"shelf"`
	Shelf       Shelf     `gorm:"foreignKey:ShelfID" json:"-"`
	Title       string    `gorm:"size:512;not null" json:"title"`
	Author      string    `gorm:"size:256" json:"author"`
	Rating      int       `json:"rating"`
	Comment     string    `gorm:"type:text" json:"comment"`
	ReadDate    time.Time `json:"read_date"`
	CoverPath   string    `gorm:"size:1024" json:"cover,omitempty"`
	RandomCover int       `json:"random_cover"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AuditEvent is one row in the operational audit log.
type AuditEvent struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"index" json:"user_id"`
	Action      AuditAction `gorm:"index;size:50" json:"action"`
	Description string      `gorm:"size:512" json:"description"`
	Status      AuditStatus `gorm:"size:20" json:"status"`
	ErrorMsg    string      `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (Shelf) TableName() string {
	return "shelves"
}

func (Record) TableName() string {
	return "records"
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
