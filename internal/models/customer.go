package models

// Customer represents a customer record with its first-level division.
type Customer struct {
	BaseModel
	Name       string `gorm:"size:255;not null" json:"name"`
	Address    string `gorm:"size:255" json:"address"`
	PostalCode string `gorm:"size:50" json:"postalCode"`
	Phone      string `gorm:"size:50" json:"phone"`
	DivisionID string `gorm:"size:36;index" json:"divisionId"`

	Division     Division      `gorm:"foreignKey:DivisionID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:CustomerID" json:"-"`
}

// CustomerView is the customer row shape returned by list endpoints, carrying
// the readable division and country names alongside the raw record.
type CustomerView struct {
	Customer
	DivisionName string `json:"divisionName"`
	CountryName  string `json:"countryName"`
}
