package entity

// User roles
const (
	RoleDoctor     = "doctor"
	RolePharmacist = "pharmacist"
)

// User represents a provisioned system account (doctor or pharmacist)
type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"type:text;not null" json:"-"`
	Role         string `gorm:"type:varchar(50);not null;index" json:"role"`

	// Relationships
	Prescriptions []Prescription `gorm:"foreignKey:DoctorID" json:"prescriptions,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsDoctor checks whether the account may prescribe
func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}
