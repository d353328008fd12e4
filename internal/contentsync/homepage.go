package contentsync

import (
	"orchestra-site/internal/domain/content"
	"orchestra-site/internal/domain/users"

	"gorm.io/gorm"
)

type HomepageDocument struct {
	Revision

	HeroTitle       string `json:"hero_title" validate:"required,max=200"`
	HeroSubtitle    string `json:"hero_subtitle"`
	HeroImage       string `json:"hero_image" validate:"imageref"`
	AboutTitle      string `json:"about_title"`
	AboutText       string `json:"about_text"`
	EventsTitle     string `json:"events_title"`
	StaffTitle      string `json:"staff_title"`
	LeadershipTitle string `json:"leadership_title"`

	EventCards         []EventCard         `json:"event_cards" validate:"required,dive"`
	Staff              []StaffMember       `json:"staff" validate:"required,dive"`
	LeadershipSections []LeadershipSection `json:"leadership_sections" validate:"required,dive"`
}

type EventCard struct {
	ID          ChildID `json:"id"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	DateText    string  `json:"date_text"`
	Link        string  `json:"link" validate:"omitempty,url"`
	Image       string  `json:"image" validate:"imageref"`
	OrderNumber int     `json:"order_number"`
}

type StaffMember struct {
	ID          ChildID `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Role        string  `json:"role"`
	Bio         string  `json:"bio"`
	Image       string  `json:"image" validate:"imageref"`
	OrderNumber int     `json:"order_number"`
}

type LeadershipSection struct {
	ID          ChildID            `json:"id"`
	Title       string             `json:"title" validate:"required"`
	Color       string             `json:"color" validate:"omitempty,oneof=blue green purple red orange gold teal gray"`
	Members     []LeadershipMember `json:"members" validate:"required,dive"`
	OrderNumber int                `json:"order_number"`
}

type LeadershipMember struct {
	ID          ChildID `json:"id"`
	Name        string  `json:"name" validate:"required"`
	Position    string  `json:"position"`
	Image       string  `json:"image" validate:"imageref"`
	OrderNumber int     `json:"order_number"`
}

var eventCards = collection[EventCard, content.EventCard]{
	parentKey: "content_id",
	toRow: func(parentID uint, order int, d *EventCard) content.EventCard {
		return content.EventCard{
			Item:        content.Item{OrderNumber: order},
			ContentID:   parentID,
			Title:       d.Title,
			Description: d.Description,
			DateText:    d.DateText,
			Link:        d.Link,
			ImageURL:    d.Image,
		}
	},
	toDoc: func(r *content.EventCard) EventCard {
		return EventCard{
			ID:          Identified(r.ID),
			Title:       r.Title,
			Description: r.Description,
			DateText:    r.DateText,
			Link:        r.Link,
			Image:       r.ImageURL,
			OrderNumber: r.OrderNumber,
		}
	},
}

var staffMembers = collection[StaffMember, content.StaffMember]{
	parentKey: "content_id",
	toRow: func(parentID uint, order int, d *StaffMember) content.StaffMember {
		return content.StaffMember{
			Item:      content.Item{OrderNumber: order},
			ContentID: parentID,
			Name:      d.Name,
			Role:      d.Role,
			Bio:       d.Bio,
			ImageURL:  d.Image,
		}
	},
	toDoc: func(r *content.StaffMember) StaffMember {
		return StaffMember{
			ID:          Identified(r.ID),
			Name:        r.Name,
			Role:        r.Role,
			Bio:         r.Bio,
			Image:       r.ImageURL,
			OrderNumber: r.OrderNumber,
		}
	},
}

var leadership = nested[LeadershipSection, content.LeadershipSection, LeadershipMember, content.LeadershipMember, *content.LeadershipSection]{
	sections: collection[LeadershipSection, content.LeadershipSection]{
		parentKey: "content_id",
		toRow: func(parentID uint, order int, d *LeadershipSection) content.LeadershipSection {
			return content.LeadershipSection{
				Item:      content.Item{OrderNumber: order},
				ContentID: parentID,
				Title:     d.Title,
				Color:     d.Color,
			}
		},
		toDoc: func(r *content.LeadershipSection) LeadershipSection {
			return LeadershipSection{
				ID:          Identified(r.ID),
				Title:       r.Title,
				Color:       r.Color,
				OrderNumber: r.OrderNumber,
			}
		},
	},
	members: collection[LeadershipMember, content.LeadershipMember]{
		parentKey: "section_id",
		toRow: func(sectionID uint, order int, d *LeadershipMember) content.LeadershipMember {
			return content.LeadershipMember{
				Item:      content.Item{OrderNumber: order},
				SectionID: sectionID,
				Name:      d.Name,
				Position:  d.Position,
				ImageURL:  d.Image,
			}
		},
		toDoc: func(r *content.LeadershipMember) LeadershipMember {
			return LeadershipMember{
				ID:          Identified(r.ID),
				Name:        r.Name,
				Position:    r.Position,
				Image:       r.ImageURL,
				OrderNumber: r.OrderNumber,
			}
		},
	},
	sectionID:  func(s *LeadershipSection) ChildID { return s.ID },
	memberDocs: func(s *LeadershipSection) []LeadershipMember { return s.Members },
	setMembers: func(s *LeadershipSection, m []LeadershipMember) { s.Members = m },
}

func homepageKind() *kind[HomepageDocument] {
	return &kind[HomepageDocument]{
		name:    "homepage",
		editors: []string{users.RoleAdmin, users.RoleLeadership},

		defaults: func() *HomepageDocument {
			return &HomepageDocument{
				HeroTitle:          "Welcome to the Orchestra",
				HeroSubtitle:       "Music, community and performance",
				AboutTitle:         "About Us",
				EventsTitle:        "Upcoming Events",
				StaffTitle:         "Our Directors",
				LeadershipTitle:    "Student Leadership",
				EventCards:         []EventCard{},
				Staff:              []StaffMember{},
				LeadershipSections: []LeadershipSection{},
			}
		},

		load: func(db *gorm.DB) (*HomepageDocument, error) {
			var row content.HomepageContent
			found, err := loadRecord(db, &row)
			if err != nil || !found {
				return nil, err
			}

			doc := &HomepageDocument{
				Revision:        Revision{Version: row.Version},
				HeroTitle:       row.HeroTitle,
				HeroSubtitle:    row.HeroSubtitle,
				HeroImage:       row.HeroImageURL,
				AboutTitle:      row.AboutTitle,
				AboutText:       row.AboutText,
				EventsTitle:     row.EventsTitle,
				StaffTitle:      row.StaffTitle,
				LeadershipTitle: row.LeadershipTitle,
			}
			if doc.EventCards, err = eventCards.load(db, row.ID); err != nil {
				return nil, err
			}
			if doc.Staff, err = staffMembers.load(db, row.ID); err != nil {
				return nil, err
			}
			if doc.LeadershipSections, err = leadership.load(db, row.ID); err != nil {
				return nil, err
			}
			return doc, nil
		},

		resolve: func(r *imageResolver, old, next *HomepageDocument) {
			next.HeroImage = r.resolve(next.HeroImage, old.HeroImage, "hero")

			prevCards := indexImages(old.EventCards, func(c *EventCard) (ChildID, string) { return c.ID, c.Image })
			for i := range next.EventCards {
				c := &next.EventCards[i]
				c.Image = r.resolve(c.Image, prevCards.previous(c.ID), "event")
			}

			prevStaff := indexImages(old.Staff, func(s *StaffMember) (ChildID, string) { return s.ID, s.Image })
			for i := range next.Staff {
				s := &next.Staff[i]
				s.Image = r.resolve(s.Image, prevStaff.previous(s.ID), "staff")
			}

			var oldMembers []LeadershipMember
			for _, s := range old.LeadershipSections {
				oldMembers = append(oldMembers, s.Members...)
			}
			prevMembers := indexImages(oldMembers, func(m *LeadershipMember) (ChildID, string) { return m.ID, m.Image })
			for i := range next.LeadershipSections {
				for j := range next.LeadershipSections[i].Members {
					m := &next.LeadershipSections[i].Members[j]
					m.Image = r.resolve(m.Image, prevMembers.previous(m.ID), "leader")
				}
			}
		},

		images: func(d *HomepageDocument) []string {
			urls := []string{d.HeroImage}
			for _, c := range d.EventCards {
				urls = append(urls, c.Image)
			}
			for _, s := range d.Staff {
				urls = append(urls, s.Image)
			}
			for _, sec := range d.LeadershipSections {
				for _, m := range sec.Members {
					urls = append(urls, m.Image)
				}
			}
			return urls
		},

		persist: func(tx *gorm.DB, d *HomepageDocument) error {
			row := content.HomepageContent{
				HeroTitle:       d.HeroTitle,
				HeroSubtitle:    d.HeroSubtitle,
				HeroImageURL:    d.HeroImage,
				AboutTitle:      d.AboutTitle,
				AboutText:       d.AboutText,
				EventsTitle:     d.EventsTitle,
				StaffTitle:      d.StaffTitle,
				LeadershipTitle: d.LeadershipTitle,
			}
			if err := upsertRecord(tx, &row, d.Version); err != nil {
				return err
			}
			if _, err := eventCards.replace(tx, row.ID, d.EventCards); err != nil {
				return err
			}
			if _, err := staffMembers.replace(tx, row.ID, d.Staff); err != nil {
				return err
			}
			return leadership.replace(tx, row.ID, d.LeadershipSections)
		},
	}
}
