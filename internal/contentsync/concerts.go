package contentsync

import (
	"strings"

	"orchestra-site/internal/domain/content"
	"orchestra-site/internal/domain/users"

	"gorm.io/gorm"
)

// DefaultNoConcertText is shown when no concert is announced and the editor
// left the message blank.
const DefaultNoConcertText = "No upcoming concerts are scheduled right now. Check back soon!"

type ConcertsDocument struct {
	Revision

	PageTitle           string `json:"page_title" validate:"required,max=200"`
	Intro               string `json:"intro"`
	NextConcertTitle    string `json:"next_concert_title"`
	NextConcertDate     string `json:"next_concert_date"`
	NextConcertLocation string `json:"next_concert_location"`
	PosterImage         string `json:"poster_image" validate:"imageref"`
	NoConcertText       string `json:"no_concert_text"`
	HasUpcomingConcert  bool   `json:"has_upcoming_concert"`

	OrchestraGroups []OrchestraGroup `json:"orchestra_groups" validate:"required,dive"`
}

type OrchestraGroup struct {
	ID          ChildID `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Conductor   string  `json:"conductor"`
	Songs       []Song  `json:"songs" validate:"required,dive"`
	OrderNumber int     `json:"order_number"`
}

type Song struct {
	ID          ChildID `json:"id"`
	Title       string  `json:"title" validate:"required"`
	Composer    string  `json:"composer"`
	Arranger    string  `json:"arranger"`
	OrderNumber int     `json:"order_number"`
}

var orchestraGroups = nested[OrchestraGroup, content.OrchestraGroup, Song, content.Song, *content.OrchestraGroup]{
	sections: collection[OrchestraGroup, content.OrchestraGroup]{
		parentKey: "content_id",
		toRow: func(parentID uint, order int, d *OrchestraGroup) content.OrchestraGroup {
			return content.OrchestraGroup{
				Item:      content.Item{OrderNumber: order},
				ContentID: parentID,
				Name:      d.Name,
				Conductor: d.Conductor,
			}
		},
		toDoc: func(r *content.OrchestraGroup) OrchestraGroup {
			return OrchestraGroup{
				ID:          Identified(r.ID),
				Name:        r.Name,
				Conductor:   r.Conductor,
				OrderNumber: r.OrderNumber,
			}
		},
	},
	members: collection[Song, content.Song]{
		parentKey: "group_id",
		toRow: func(groupID uint, order int, d *Song) content.Song {
			return content.Song{
				Item:     content.Item{OrderNumber: order},
				GroupID:  groupID,
				Title:    d.Title,
				Composer: d.Composer,
				Arranger: d.Arranger,
			}
		},
		toDoc: func(r *content.Song) Song {
			return Song{
				ID:          Identified(r.ID),
				Title:       r.Title,
				Composer:    r.Composer,
				Arranger:    r.Arranger,
				OrderNumber: r.OrderNumber,
			}
		},
	},
	sectionID:  func(g *OrchestraGroup) ChildID { return g.ID },
	memberDocs: func(g *OrchestraGroup) []Song { return g.Songs },
	setMembers: func(g *OrchestraGroup, s []Song) { g.Songs = s },
}

func concertsKind() *kind[ConcertsDocument] {
	return &kind[ConcertsDocument]{
		name:    "concerts",
		editors: []string{users.RoleAdmin, users.RoleLeadership},

		defaults: func() *ConcertsDocument {
			return &ConcertsDocument{
				PageTitle:       "Concerts",
				NoConcertText:   DefaultNoConcertText,
				OrchestraGroups: []OrchestraGroup{},
			}
		},

		load: func(db *gorm.DB) (*ConcertsDocument, error) {
			var row content.ConcertsContent
			found, err := loadRecord(db, &row)
			if err != nil || !found {
				return nil, err
			}

			doc := &ConcertsDocument{
				Revision:            Revision{Version: row.Version},
				PageTitle:           row.PageTitle,
				Intro:               row.Intro,
				NextConcertTitle:    row.NextConcertTitle,
				NextConcertDate:     row.NextConcertDate,
				NextConcertLocation: row.NextConcertLocation,
				PosterImage:         row.PosterImageURL,
				NoConcertText:       row.NoConcertText,
				HasUpcomingConcert:  row.HasUpcomingConcert,
			}
			if doc.OrchestraGroups, err = orchestraGroups.load(db, row.ID); err != nil {
				return nil, err
			}
			return doc, nil
		},

		prepare: func(d *ConcertsDocument) {
			if strings.TrimSpace(d.NoConcertText) == "" {
				d.NoConcertText = DefaultNoConcertText
			}
		},

		resolve: func(r *imageResolver, old, next *ConcertsDocument) {
			next.PosterImage = r.resolve(next.PosterImage, old.PosterImage, "poster")
		},

		images: func(d *ConcertsDocument) []string {
			return []string{d.PosterImage}
		},

		persist: func(tx *gorm.DB, d *ConcertsDocument) error {
			row := content.ConcertsContent{
				PageTitle:           d.PageTitle,
				Intro:               d.Intro,
				NextConcertTitle:    d.NextConcertTitle,
				NextConcertDate:     d.NextConcertDate,
				NextConcertLocation: d.NextConcertLocation,
				PosterImageURL:      d.PosterImage,
				NoConcertText:       d.NoConcertText,
				HasUpcomingConcert:  d.HasUpcomingConcert,
			}
			if err := upsertRecord(tx, &row, d.Version); err != nil {
				return err
			}
			return orchestraGroups.replace(tx, row.ID, d.OrchestraGroups)
		},
	}
}
