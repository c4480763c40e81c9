package model

type TemplateSource string

const (
	TemplateSourceSeeded TemplateSource = "SEEDED"
	TemplateSourceUser   TemplateSource = "USER"
)

// PlateTemplate binds one plate format pattern to a country. Patterns are
// strings over {L, N}: L is a letter position, N is a digit position.
// An ID of zero means the template has not been persisted yet.
type PlateTemplate struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CountryID    string         `gorm:"type:varchar(8);not null;index" json:"country_id"`
	Pattern      string         `gorm:"type:varchar(12);not null;column:template_pattern" json:"pattern"`
	DisplayName  string         `gorm:"type:varchar(128);not null" json:"display_name"`
	Priority     int            `gorm:"not null" json:"priority"`
	Active       bool           `gorm:"not null;default:true;column:is_active" json:"active"`
	Description  string         `gorm:"type:text" json:"description"`
	RegexPattern string         `gorm:"type:text" json:"regex_pattern"`
	Source       TemplateSource `gorm:"type:varchar(16);not null;default:USER" json:"source"`
	CreatedAt    int64          `gorm:"autoCreateTime:milli" json:"created_at"`
	UpdatedAt    int64          `gorm:"autoUpdateTime:milli" json:"updated_at"`
}

func (PlateTemplate) TableName() string {
	return "plate_templates"
}
