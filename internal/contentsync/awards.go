package contentsync

import (
	"orchestra-site/internal/domain/content"
	"orchestra-site/internal/domain/users"

	"gorm.io/gorm"
)

// Awards lists are numbered from 1; the page shows the number next to each entry.
const awardsFirstOrder = 1

type AwardsDocument struct {
	Revision

	PageTitle string `json:"page_title" validate:"required,max=200"`
	Intro     string `json:"intro"`

	Achievements []Achievement `json:"achievements" validate:"required,dive"`
	Images       []AwardImage  `json:"images" validate:"required,dive"`
}

type Achievement struct {
	ID          ChildID `json:"id"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Year        string  `json:"year"`
	Image       string  `json:"image" validate:"imageref"`
	OrderNumber int     `json:"order_number"`
}

type AwardImage struct {
	ID          ChildID `json:"id"`
	ImageURL    string  `json:"image_url" validate:"required,imageref"`
	Caption     string  `json:"caption"`
	OrderNumber int     `json:"order_number"`
}

var achievements = collection[Achievement, content.Achievement]{
	parentKey: "content_id",
	first:     awardsFirstOrder,
	toRow: func(parentID uint, order int, d *Achievement) content.Achievement {
		return content.Achievement{
			Item:        content.Item{OrderNumber: order},
			ContentID:   parentID,
			Title:       d.Title,
			Description: d.Description,
			Year:        d.Year,
			ImageURL:    d.Image,
		}
	},
	toDoc: func(r *content.Achievement) Achievement {
		return Achievement{
			ID:          Identified(r.ID),
			Title:       r.Title,
			Description: r.Description,
			Year:        r.Year,
			Image:       r.ImageURL,
			OrderNumber: r.OrderNumber,
		}
	},
}

var awardImages = collection[AwardImage, content.AwardImage]{
	parentKey: "content_id",
	first:     awardsFirstOrder,
	toRow: func(parentID uint, order int, d *AwardImage) content.AwardImage {
		return content.AwardImage{
			Item:      content.Item{OrderNumber: order},
			ContentID: parentID,
			ImageURL:  d.ImageURL,
			Caption:   d.Caption,
		}
	},
	toDoc: func(r *content.AwardImage) AwardImage {
		return AwardImage{
			ID:          Identified(r.ID),
			ImageURL:    r.ImageURL,
			Caption:     r.Caption,
			OrderNumber: r.OrderNumber,
		}
	},
}

func awardsKind() *kind[AwardsDocument] {
	return &kind[AwardsDocument]{
		name:    "awards",
		editors: []string{users.RoleAdmin, users.RoleLeadership},

		defaults: func() *AwardsDocument {
			return &AwardsDocument{
				PageTitle:    "Awards & Achievements",
				Achievements: []Achievement{},
				Images:       []AwardImage{},
			}
		},

		load: func(db *gorm.DB) (*AwardsDocument, error) {
			var row content.AwardsContent
			found, err := loadRecord(db, &row)
			if err != nil || !found {
				return nil, err
			}

			doc := &AwardsDocument{
				Revision:  Revision{Version: row.Version},
				PageTitle: row.PageTitle,
				Intro:     row.Intro,
			}
			if doc.Achievements, err = achievements.load(db, row.ID); err != nil {
				return nil, err
			}
			if doc.Images, err = awardImages.load(db, row.ID); err != nil {
				return nil, err
			}
			return doc, nil
		},

		resolve: func(r *imageResolver, old, next *AwardsDocument) {
			prevAch := indexImages(old.Achievements, func(a *Achievement) (ChildID, string) { return a.ID, a.Image })
			for i := range next.Achievements {
				a := &next.Achievements[i]
				a.Image = r.resolve(a.Image, prevAch.previous(a.ID), "achievement")
			}

			prevImg := indexImages(old.Images, func(a *AwardImage) (ChildID, string) { return a.ID, a.ImageURL })
			for i := range next.Images {
				img := &next.Images[i]
				img.ImageURL = r.resolve(img.ImageURL, prevImg.previous(img.ID), "award")
			}
		},

		images: func(d *AwardsDocument) []string {
			urls := make([]string, 0, len(d.Achievements)+len(d.Images))
			for _, a := range d.Achievements {
				urls = append(urls, a.Image)
			}
			for _, img := range d.Images {
				urls = append(urls, img.ImageURL)
			}
			return urls
		},

		persist: func(tx *gorm.DB, d *AwardsDocument) error {
			row := content.AwardsContent{
				PageTitle: d.PageTitle,
				Intro:     d.Intro,
			}
			if err := upsertRecord(tx, &row, d.Version); err != nil {
				return err
			}
			if _, err := achievements.replace(tx, row.ID, d.Achievements); err != nil {
				return err
			}
			_, err := awardImages.replace(tx, row.ID, d.Images)
			return err
		},
	}
}
