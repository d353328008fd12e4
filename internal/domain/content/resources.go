package content

// ResourcesContent has no child collections; it is saved as a single row.
type ResourcesContent struct {
	Record

	PageTitle    string `gorm:"not null"`
	Intro        string `gorm:"type:text"`
	PracticeTips string `gorm:"type:text"`
	HandbookURL  string `gorm:"column:handbook_url"`
	CalendarURL  string `gorm:"column:calendar_url"`
	UniformInfo  string `gorm:"type:text"`
	ContactEmail string
	DonationURL  string `gorm:"column:donation_url"`
}

func (ResourcesContent) TableName() string { return "resources_content" }
