package entities

import (
	"github.com/google/uuid"
)

type MedicalReport struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	DocumentURL string    `json:"document_url,omitempty"`
	Notes       string    `gorm:"type:text" json:"notes"` // JSON-encoded []domain.TextualNote
	Rules       string    `gorm:"type:text" json:"rules"` // JSON-encoded []domain.DietRule
	Status      string    `json:"status"`                 // "Pending", "Interpreted", "Failed"

	User      *User       `gorm:"foreignKey:UserID"`
	DietPlans []*DietPlan `gorm:"foreignKey:ReportID"`
	Timestamp
}
