package content

type ConcertsContent struct {
	Record

	PageTitle           string `gorm:"not null"`
	Intro               string `gorm:"type:text"`
	NextConcertTitle    string
	NextConcertDate     string
	NextConcertLocation string
	PosterImageURL      string `gorm:"column:poster_image_url"`
	NoConcertText       string `gorm:"type:text"`
	HasUpcomingConcert  bool   `gorm:"not null;default:false"`
}

func (ConcertsContent) TableName() string { return "concerts_content" }

type OrchestraGroup struct {
	Item
	ContentID uint `gorm:"not null;index"`

	Name      string `gorm:"not null"`
	Conductor string
}

type Song struct {
	Item
	GroupID uint `gorm:"not null;index"`

	Title    string `gorm:"not null"`
	Composer string
	Arranger string
}
