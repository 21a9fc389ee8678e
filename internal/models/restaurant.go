package models

type Restaurant struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Location     string `gorm:"not null" json:"location"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Contact      string `gorm:"not null" json:"contact"`
	PasswordHash string `gorm:"not null" json:"-"`
}
