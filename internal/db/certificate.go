package db

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Certificate represents an earned certification shown on the public site.
// Dates are stored as ISO strings (YYYY-MM-DD) so string ordering matches
// chronological ordering.
type Certificate struct {
	gorm.Model
	Title         string  `gorm:"size:200;not null"`
	Issuer        string  `gorm:"size:160;not null"`
	IssueDate     string  `gorm:"size:10"`
	ExpiryDate    *string `gorm:"size:10"`
	CredentialID  string  `gorm:"size:160"`
	CredentialURL string  `gorm:"size:512"`
	Skills        datatypes.JSONSlice[string]
	Verified  bool `gorm:"default:false"`
	SortOrder int  `gorm:"default:0"`
	Visible   bool
}
