package models

type NGO struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	Location string `gorm:"not null;index" json:"location"`
	Email    string `gorm:"not null" json:"email"`
	Contact  string `gorm:"not null" json:"contact"`
}
