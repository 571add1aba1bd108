package entity

import (
	"time"
)

// Well-known prescription statuses. Status is stored as free text: any
// non-empty string is accepted on update, so these are descriptive rather
// than an enforced enum.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDispensed = "dispensed"
)

// Prescription is issued by a doctor for a patient against one or more
// catalog drugs. Patient, doctor and created_at are immutable after
// creation; only the status field is ever updated.
type Prescription struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID uint      `gorm:"not null;index" json:"patient_id"`
	DoctorID  uint      `gorm:"not null;index" json:"doctor_id"`
	Status    string    `gorm:"type:varchar(50);not null;default:'pending';index" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	// Relationships
	Patient Patient            `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User               `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Drugs   []PrescriptionDrug `gorm:"foreignKey:PrescriptionID" json:"drugs,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// IsPending checks if the prescription is awaiting pharmacist action
func (p *Prescription) IsPending() bool {
	return p.Status == StatusPending
}

// PrescriptionDrug is one association row linking a prescription to a drug.
// Position preserves the order drugs were supplied in at creation; the same
// drug may appear more than once on a single prescription.
type PrescriptionDrug struct {
	ID             uint `gorm:"primaryKey;autoIncrement" json:"id"`
	PrescriptionID uint `gorm:"not null;index" json:"prescription_id"`
	DrugID         uint `gorm:"not null;index" json:"drug_id"`
	Position       int  `gorm:"not null" json:"position"`

	// Relationships
	Drug Drug `gorm:"foreignKey:DrugID" json:"drug,omitempty"`
}

func (PrescriptionDrug) TableName() string {
	return "prescription_drugs"
}
