package content

type HomepageContent struct {
	Record

	HeroTitle       string `gorm:"not null"`
	HeroSubtitle    string
	HeroImageURL    string `gorm:"column:hero_image_url"`
	AboutTitle      string
	AboutText       string `gorm:"type:text"`
	EventsTitle     string
	StaffTitle      string
	LeadershipTitle string
}

func (HomepageContent) TableName() string { return "homepage_content" }

type EventCard struct {
	Item
	ContentID uint `gorm:"not null;index"`

	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	DateText    string
	Link        string
	ImageURL    string `gorm:"column:image_url"`
}

type StaffMember struct {
	Item
	ContentID uint `gorm:"not null;index"`

	Name     string `gorm:"not null"`
	Role     string
	Bio      string `gorm:"type:text"`
	ImageURL string `gorm:"column:image_url"`
}

// LeadershipSection groups student leaders under a heading shown in Color.
type LeadershipSection struct {
	Item
	ContentID uint `gorm:"not null;index"`

	Title string `gorm:"not null"`
	Color string
}

type LeadershipMember struct {
	Item
	SectionID uint `gorm:"not null;index"`

	Name     string `gorm:"not null"`
	Position string
	ImageURL string `gorm:"column:image_url"`
}
