package entities

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Meeting represents a recorded meeting whose transcript action items
// are derived from
type Meeting struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Transcript   string         `gorm:"type:text" json:"transcript,omitempty"`
	Participants datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"participants,omitempty"`
	StartedAt    *time.Time     `json:"started_at,omitempty"`
	CreatedAt    time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// HasTranscript checks whether there is content to extract from
func (m *Meeting) HasTranscript() bool {
	return strings.TrimSpace(m.Transcript) != ""
}
