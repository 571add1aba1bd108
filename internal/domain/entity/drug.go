package entity

// Drug is a catalog entry. Name/strength pairs are not unique; drugs are
// never deleted once added.
type Drug struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Strength     string `gorm:"type:varchar(100);not null" json:"strength"`
	Instructions string `gorm:"type:text;not null" json:"instructions"`
	Warnings     string `gorm:"type:text;not null" json:"warnings"`
}

func (Drug) TableName() string {
	return "drugs"
}
