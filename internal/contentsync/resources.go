package contentsync

import (
	"orchestra-site/internal/domain/content"
	"orchestra-site/internal/domain/users"

	"gorm.io/gorm"
)

type ResourcesDocument struct {
	Revision

	PageTitle    string `json:"page_title" validate:"required,max=200"`
	Intro        string `json:"intro"`
	PracticeTips string `json:"practice_tips"`
	HandbookURL  string `json:"handbook_url" validate:"omitempty,url"`
	CalendarURL  string `json:"calendar_url" validate:"omitempty,url"`
	UniformInfo  string `json:"uniform_info"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	DonationURL  string `json:"donation_url" validate:"omitempty,url"`
}

func resourcesKind() *kind[ResourcesDocument] {
	return &kind[ResourcesDocument]{
		name:    "resources",
		editors: []string{users.RoleAdmin, users.RoleLeadership, users.RoleDirector},

		defaults: func() *ResourcesDocument {
			return &ResourcesDocument{PageTitle: "Resources"}
		},

		load: func(db *gorm.DB) (*ResourcesDocument, error) {
			var row content.ResourcesContent
			found, err := loadRecord(db, &row)
			if err != nil || !found {
				return nil, err
			}
			return &ResourcesDocument{
				Revision:     Revision{Version: row.Version},
				PageTitle:    row.PageTitle,
				Intro:        row.Intro,
				PracticeTips: row.PracticeTips,
				HandbookURL:  row.HandbookURL,
				CalendarURL:  row.CalendarURL,
				UniformInfo:  row.UniformInfo,
				ContactEmail: row.ContactEmail,
				DonationURL:  row.DonationURL,
			}, nil
		},

		persist: func(tx *gorm.DB, d *ResourcesDocument) error {
			row := content.ResourcesContent{
				PageTitle:    d.PageTitle,
				Intro:        d.Intro,
				PracticeTips: d.PracticeTips,
				HandbookURL:  d.HandbookURL,
				CalendarURL:  d.CalendarURL,
				UniformInfo:  d.UniformInfo,
				ContactEmail: d.ContactEmail,
				DonationURL:  d.DonationURL,
			}
			return upsertRecord(tx, &row, d.Version)
		},
	}
}
