package content

type TripsContent struct {
	Record

	PageTitle    string `gorm:"not null"`
	Intro        string `gorm:"type:text"`
	Destination  string
	TripDates    string
	HeroImageURL string `gorm:"column:hero_image_url"`
}

func (TripsContent) TableName() string { return "trips_content" }

type GalleryImage struct {
	Item
	ContentID uint `gorm:"not null;index"`

	ImageURL string `gorm:"column:image_url;not null"`
	Caption  string
	Alt      string
}

func (GalleryImage) TableName() string { return "trip_gallery_images" }

type FeatureItem struct {
	Item
	ContentID uint `gorm:"not null;index"`

	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Icon        string
}

func (FeatureItem) TableName() string { return "trip_feature_items" }
