package entity

// Patient is created lazily the first time a prescription references an
// unseen file number. The file number is the natural key; the name recorded
// at first sight is never updated by later prescriptions.
type Patient struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string `gorm:"type:varchar(255);not null" json:"name"`
	FileNumber string `gorm:"type:varchar(100);uniqueIndex;not null" json:"file_number"`

	// Relationships
	Prescriptions []Prescription `gorm:"foreignKey:PatientID" json:"prescriptions,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
