package content

type AwardsContent struct {
	Record

	PageTitle string `gorm:"not null"`
	Intro     string `gorm:"type:text"`
}

func (AwardsContent) TableName() string { return "awards_content" }

type Achievement struct {
	Item
	ContentID uint `gorm:"not null;index"`

	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Year        string
	ImageURL    string `gorm:"column:image_url"`
}

type AwardImage struct {
	Item
	ContentID uint `gorm:"not null;index"`

	ImageURL string `gorm:"column:image_url;not null"`
	Caption  string
}
