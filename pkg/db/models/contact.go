package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OmerAlfiel/Shahen-website/pkg/enums"
)

// Contact is one submission of the public contact form.
type Contact struct {
	ID         uuid.UUID           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name       string              `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Phone      *string             `gorm:"column:phone;type:varchar(20)" json:"phone,omitempty"`
	Company    *string             `gorm:"column:company;type:varchar(100)" json:"company,omitempty"`
	Message    string              `gorm:"column:message;type:text;not null" json:"message"`
	Status     enums.ContactStatus `gorm:"column:status;type:varchar(20);not null;default:'pending';index" json:"status"`
	IPAddress  *string             `gorm:"column:ip_address;type:varchar(45)" json:"ipAddress,omitempty"`
	UserAgent  *string             `gorm:"column:user_agent;type:text" json:"userAgent,omitempty"`
	AdminNotes *string             `gorm:"column:admin_notes;type:text" json:"adminNotes,omitempty"`
	CreatedAt  time.Time           `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt  time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Contact) TableName() string {
	return "contacts"
}

// BeforeCreate assigns the id and default status so inserts behave the same
// on Postgres and SQLite.
func (c *Contact) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = enums.ContactStatusPending
	}
	return nil
}
