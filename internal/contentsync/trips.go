package contentsync

import (
	"orchestra-site/internal/domain/content"
	"orchestra-site/internal/domain/users"

	"gorm.io/gorm"
)

type TripsDocument struct {
	Revision

	PageTitle   string `json:"page_title" validate:"required,max=200"`
	Intro       string `json:"intro"`
	Destination string `json:"destination"`
	TripDates   string `json:"trip_dates"`
	HeroImage   string `json:"hero_image" validate:"imageref"`

	GalleryImages []GalleryImage `json:"gallery_images" validate:"required,dive"`
	FeatureItems  []FeatureItem  `json:"feature_items" validate:"required,dive"`
}

type GalleryImage struct {
	ID          ChildID `json:"id"`
	ImageURL    string  `json:"image_url" validate:"required,imageref"`
	Caption     string  `json:"caption"`
	Alt         string  `json:"alt"`
	OrderNumber int     `json:"order_number"`
}

type FeatureItem struct {
	ID          ChildID `json:"id"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Icon        string  `json:"icon" validate:"omitempty,oneof=music plane bus hotel star map camera food"`
	OrderNumber int     `json:"order_number"`
}

var galleryImages = collection[GalleryImage, content.GalleryImage]{
	parentKey: "content_id",
	toRow: func(parentID uint, order int, d *GalleryImage) content.GalleryImage {
		return content.GalleryImage{
			Item:      content.Item{OrderNumber: order},
			ContentID: parentID,
			ImageURL:  d.ImageURL,
			Caption:   d.Caption,
			Alt:       d.Alt,
		}
	},
	toDoc: func(r *content.GalleryImage) GalleryImage {
		return GalleryImage{
			ID:          Identified(r.ID),
			ImageURL:    r.ImageURL,
			Caption:     r.Caption,
			Alt:         r.Alt,
			OrderNumber: r.OrderNumber,
		}
	},
}

var featureItems = collection[FeatureItem, content.FeatureItem]{
	parentKey: "content_id",
	toRow: func(parentID uint, order int, d *FeatureItem) content.FeatureItem {
		return content.FeatureItem{
			Item:        content.Item{OrderNumber: order},
			ContentID:   parentID,
			Title:       d.Title,
			Description: d.Description,
			Icon:        d.Icon,
		}
	},
	toDoc: func(r *content.FeatureItem) FeatureItem {
		return FeatureItem{
			ID:          Identified(r.ID),
			Title:       r.Title,
			Description: r.Description,
			Icon:        r.Icon,
			OrderNumber: r.OrderNumber,
		}
	},
}

func tripsKind() *kind[TripsDocument] {
	return &kind[TripsDocument]{
		name:    "trips",
		editors: []string{users.RoleAdmin, users.RoleLeadership},

		defaults: func() *TripsDocument {
			return &TripsDocument{
				PageTitle:     "Trips",
				GalleryImages: []GalleryImage{},
				FeatureItems:  []FeatureItem{},
			}
		},

		load: func(db *gorm.DB) (*TripsDocument, error) {
			var row content.TripsContent
			found, err := loadRecord(db, &row)
			if err != nil || !found {
				return nil, err
			}

			doc := &TripsDocument{
				Revision:    Revision{Version: row.Version},
				PageTitle:   row.PageTitle,
				Intro:       row.Intro,
				Destination: row.Destination,
				TripDates:   row.TripDates,
				HeroImage:   row.HeroImageURL,
			}
			if doc.GalleryImages, err = galleryImages.load(db, row.ID); err != nil {
				return nil, err
			}
			if doc.FeatureItems, err = featureItems.load(db, row.ID); err != nil {
				return nil, err
			}
			return doc, nil
		},

		resolve: func(r *imageResolver, old, next *TripsDocument) {
			next.HeroImage = r.resolve(next.HeroImage, old.HeroImage, "trip")

			prev := indexImages(old.GalleryImages, func(g *GalleryImage) (ChildID, string) { return g.ID, g.ImageURL })
			for i := range next.GalleryImages {
				g := &next.GalleryImages[i]
				g.ImageURL = r.resolve(g.ImageURL, prev.previous(g.ID), "gallery")
			}
		},

		images: func(d *TripsDocument) []string {
			urls := []string{d.HeroImage}
			for _, g := range d.GalleryImages {
				urls = append(urls, g.ImageURL)
			}
			return urls
		},

		persist: func(tx *gorm.DB, d *TripsDocument) error {
			row := content.TripsContent{
				PageTitle:    d.PageTitle,
				Intro:        d.Intro,
				Destination:  d.Destination,
				TripDates:    d.TripDates,
				HeroImageURL: d.HeroImage,
			}
			if err := upsertRecord(tx, &row, d.Version); err != nil {
				return err
			}
			if _, err := galleryImages.replace(tx, row.ID, d.GalleryImages); err != nil {
				return err
			}
			_, err := featureItems.replace(tx, row.ID, d.FeatureItems)
			return err
		},
	}
}
