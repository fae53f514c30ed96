package models

import (
	"gorm.io/gorm"
)

// Country is a reference record; rows are seeded at startup and never edited
// through the API.
type Country struct {
	BaseModel
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`

	Divisions []Division `gorm:"foreignKey:CountryID" json:"-"`
}

// Division is a first-level division (state, province, region) of a country.
type Division struct {
	BaseModel
	Name      string `gorm:"size:100;not null;index" json:"name"`
	CountryID string `gorm:"size:36;index" json:"countryId"`

	Country Country `gorm:"foreignKey:CountryID" json:"-"`
}

var referenceDivisions = map[string][]string{
	"U.S.": {
		"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
		"Connecticut", "Delaware", "District of Columbia", "Florida", "Georgia",
		"Hawaii", "Idaho", "Illinois", "Indiana", "Iowa", "Kansas", "Kentucky",
		"Louisiana", "Maine", "Maryland", "Massachusetts", "Michigan",
		"Minnesota", "Mississippi", "Missouri", "Montana", "Nebraska", "Nevada",
		"New Hampshire", "New Jersey", "New Mexico", "New York",
		"North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon",
		"Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
		"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington",
		"West Virginia", "Wisconsin", "Wyoming",
	},
	"UK": {
		"England", "Scotland", "Wales", "Northern Ireland",
	},
	"Canada": {
		"Alberta", "British Columbia", "Manitoba", "New Brunswick",
		"Newfoundland and Labrador", "Northwest Territories", "Nova Scotia",
		"Nunavut", "Ontario", "Prince Edward Island", "Quebec", "Saskatchewan",
		"Yukon",
	},
}

// SeedReferenceData inserts the countries and first-level divisions customer
// records reference. It is idempotent: nothing happens once countries exist.
func SeedReferenceData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Country{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for countryName, divisions := range referenceDivisions {
			country := Country{Name: countryName}
			if err := tx.Create(&country).Error; err != nil {
				return err
			}
			for _, divisionName := range divisions {
				division := Division{Name: divisionName, CountryID: country.ID}
				if err := tx.Create(&division).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
