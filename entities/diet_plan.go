package entities

import (
	"github.com/google/uuid"
)

type DietPlan struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	ReportID       *uuid.UUID `json:"report_id,omitempty"`
	DailyCalories  float64    `json:"daily_calories"`
	ProteinPercent float64    `json:"protein_percent"`
	CarbsPercent   float64    `json:"carbs_percent"`
	FatPercent     float64    `json:"fat_percent"`
	PlanJSON       string     `gorm:"type:text" json:"plan_json"` // full domain.DietPlan snapshot
	ExportURL      string     `json:"export_url,omitempty"`

	User   *User          `gorm:"foreignKey:UserID"`
	Report *MedicalReport `gorm:"foreignKey:ReportID"`
	Timestamp
}
