package models

import (
	"time"
)

// Appointment represents a scheduled appointment between a customer and a
// contact, booked by a user. Start and End are always persisted as UTC
// instants; conversion to and from a caller's wall-clock time happens in the
// scheduling package before the record reaches this layer.
type Appointment struct {
	BaseModel
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"size:255" json:"location"`
	Type        string    `gorm:"size:100" json:"type"`
	Start       time.Time `gorm:"index" json:"start"`
	End         time.Time `json:"end"`
	CustomerID  string    `gorm:"size:36;index" json:"customerId"`
	UserID      string    `gorm:"size:36;index" json:"userId"`
	ContactID   string    `gorm:"size:36;index" json:"contactId"`

	// Relations
	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Contact  Contact  `gorm:"foreignKey:ContactID" json:"-"`
}
