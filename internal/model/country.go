package model

type Country struct {
	ID          string `gorm:"type:varchar(8);primaryKey" json:"id"`
	DisplayName string `gorm:"type:varchar(128);not null" json:"display_name"`
	Enabled     bool   `gorm:"not null;default:true" json:"enabled"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli" json:"created_at"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli" json:"updated_at"`
}

func (Country) TableName() string {
	return "countries"
}
