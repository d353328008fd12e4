package content

type CompetitionsContent struct {
	Record

	PageTitle string `gorm:"not null"`
	Intro     string `gorm:"type:text"`
}

func (CompetitionsContent) TableName() string { return "competitions_content" }

type Competition struct {
	Item
	ContentID uint `gorm:"not null;index"`

	Name        string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Date        string
	Location    string
	ImageURL    string `gorm:"column:image_url"`
}

type CompetitionCategory struct {
	Item
	CompetitionID uint `gorm:"not null;index"`

	Name   string `gorm:"not null"`
	Result string
	Rating string
}
