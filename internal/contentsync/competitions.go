package contentsync

import (
	"orchestra-site/internal/domain/content"
	"orchestra-site/internal/domain/users"

	"gorm.io/gorm"
)

type CompetitionsDocument struct {
	Revision

	PageTitle string `json:"page_title" validate:"required,max=200"`
	Intro     string `json:"intro"`

	Competitions []Competition `json:"competitions" validate:"required,dive"`
}

type Competition struct {
	ID          ChildID               `json:"id"`
	Name        string                `json:"name" validate:"required"`
	Description string                `json:"description"`
	Date        string                `json:"date"`
	Location    string                `json:"location"`
	Image       string                `json:"image" validate:"imageref"`
	Categories  []CompetitionCategory `json:"categories" validate:"required,dive"`
	OrderNumber int                   `json:"order_number"`
}

// CompetitionCategory is one adjudicated entry; Rating uses festival
// division ratings I (superior) through V.
type CompetitionCategory struct {
	ID          ChildID `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Result      string  `json:"result"`
	Rating      string  `json:"rating" validate:"omitempty,oneof=I II III IV V"`
	OrderNumber int     `json:"order_number"`
}

var competitions = nested[Competition, content.Competition, CompetitionCategory, content.CompetitionCategory, *content.Competition]{
	sections: collection[Competition, content.Competition]{
		parentKey: "content_id",
		toRow: func(parentID uint, order int, d *Competition) content.Competition {
			return content.Competition{
				Item:        content.Item{OrderNumber: order},
				ContentID:   parentID,
				Name:        d.Name,
				Description: d.Description,
				Date:        d.Date,
				Location:    d.Location,
				ImageURL:    d.Image,
			}
		},
		toDoc: func(r *content.Competition) Competition {
			return Competition{
				ID:          Identified(r.ID),
				Name:        r.Name,
				Description: r.Description,
				Date:        r.Date,
				Location:    r.Location,
				Image:       r.ImageURL,
				OrderNumber: r.OrderNumber,
			}
		},
	},
	members: collection[CompetitionCategory, content.CompetitionCategory]{
		parentKey: "competition_id",
		toRow: func(competitionID uint, order int, d *CompetitionCategory) content.CompetitionCategory {
			return content.CompetitionCategory{
				Item:          content.Item{OrderNumber: order},
				CompetitionID: competitionID,
				Name:          d.Name,
				Result:        d.Result,
				Rating:        d.Rating,
			}
		},
		toDoc: func(r *content.CompetitionCategory) CompetitionCategory {
			return CompetitionCategory{
				ID:          Identified(r.ID),
				Name:        r.Name,
				Result:      r.Result,
				Rating:      r.Rating,
				OrderNumber: r.OrderNumber,
			}
		},
	},
	sectionID:  func(c *Competition) ChildID { return c.ID },
	memberDocs: func(c *Competition) []CompetitionCategory { return c.Categories },
	setMembers: func(c *Competition, cats []CompetitionCategory) { c.Categories = cats },
}

func competitionsKind() *kind[CompetitionsDocument] {
	return &kind[CompetitionsDocument]{
		name:    "competitions",
		editors: []string{users.RoleAdmin, users.RoleLeadership},

		defaults: func() *CompetitionsDocument {
			return &CompetitionsDocument{
				PageTitle:    "Competitions",
				Competitions: []Competition{},
			}
		},

		load: func(db *gorm.DB) (*CompetitionsDocument, error) {
			var row content.CompetitionsContent
			found, err := loadRecord(db, &row)
			if err != nil || !found {
				return nil, err
			}

			doc := &CompetitionsDocument{
				Revision:  Revision{Version: row.Version},
				PageTitle: row.PageTitle,
				Intro:     row.Intro,
			}
			if doc.Competitions, err = competitions.load(db, row.ID); err != nil {
				return nil, err
			}
			return doc, nil
		},

		resolve: func(r *imageResolver, old, next *CompetitionsDocument) {
			prev := indexImages(old.Competitions, func(c *Competition) (ChildID, string) { return c.ID, c.Image })
			for i := range next.Competitions {
				c := &next.Competitions[i]
				c.Image = r.resolve(c.Image, prev.previous(c.ID), "competition")
			}
		},

		images: func(d *CompetitionsDocument) []string {
			urls := make([]string, 0, len(d.Competitions))
			for _, c := range d.Competitions {
				urls = append(urls, c.Image)
			}
			return urls
		},

		persist: func(tx *gorm.DB, d *CompetitionsDocument) error {
			row := content.CompetitionsContent{
				PageTitle: d.PageTitle,
				Intro:     d.Intro,
			}
			if err := upsertRecord(tx, &row, d.Version); err != nil {
				return err
			}
			return competitions.replace(tx, row.ID, d.Competitions)
		},
	}
}
