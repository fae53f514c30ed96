package models

// Contact represents a contact an appointment is booked with. Appointment
// submissions reference contacts by display name and the name is resolved to
// an ID at validation time.
type Contact struct {
	BaseModel
	Name  string `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Email string `gorm:"size:255" json:"email"`

	Appointments []Appointment `gorm:"foreignKey:ContactID" json:"-"`
}
