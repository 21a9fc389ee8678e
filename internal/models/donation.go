package models

import (
	"time"

	"gorm.io/datatypes"
)

// Donation statuses. Accepted, Declined - No NGOs left and No NGO Available
// are absorbing: once a record reaches one of them, no further transition is
// applied.
const (
	StatusPending       = "Pending"
	StatusWaiting       = "Waiting for Response"
	StatusAccepted      = "Accepted"
	StatusDeclinedNoNGO = "Declined - No NGOs left"
	StatusNoNGO         = "No NGO Available"

	NotYetAssigned = "Not yet Assigned"
)

// Donation is the persisted record of one restaurant's surplus-food offer.
// The restaurant fields are a snapshot taken at submission, not a reference
// to the restaurants table, so the record stays meaningful even if the
// restaurant's profile changes later. Records are never deleted.
type Donation struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Restaurant string `gorm:"not null" json:"restaurant"`
	Contact    string `gorm:"not null" json:"contact"`
	Location   string `gorm:"not null;index" json:"location"`
	FoodType   string `gorm:"not null" json:"foodType"`
	Quantity   int    `gorm:"not null" json:"quantity"`
	Expiry     string `json:"expiry"`
	Email      string `gorm:"not null" json:"email"`
	Notes      string `json:"notes"`

	Status      string `gorm:"not null;index" json:"status"`
	NGOAssigned string `gorm:"column:ngo_assigned;not null" json:"ngoAssigned"`

	// ContactedNGOs holds every NGO name this record has ever been assigned
	// to. It is the exclusion set for decline-forwarding; the event log is
	// the human-readable audit trail, never parsed for routing decisions.
	ContactedNGOs datatypes.JSONSlice[string] `gorm:"column:contacted_ngos" json:"contacted_ngos"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Events []DonationEvent `gorm:"foreignKey:DonationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"history"`
}

// IsTerminal reports whether status is absorbing.
func IsTerminal(status string) bool {
	switch status {
	case StatusAccepted, StatusDeclinedNoNGO, StatusNoNGO:
		return true
	}
	return false
}
