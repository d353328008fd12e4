package contentsync

import (
	"gorm.io/gorm"
)

type keyed interface {
	Key() uint
	SetKey(id uint)
}

// nested is a two-level collection: ordered sections, each owning an ordered
// member list. Sections keep their row when the document names their id;
// members are always fully replaced.
type nested[SD any, SR any, MD any, MR any, PSR interface {
	*SR
	keyed
}] struct {
	sections collection[SD, SR]
	members  collection[MD, MR]

	sectionID  func(*SD) ChildID
	memberDocs func(*SD) []MD
	setMembers func(*SD, []MD)
}

func (n nested[SD, SR, MD, MR, PSR]) replace(tx *gorm.DB, parentID uint, docs []SD) error {
	var existing []uint
	if err := tx.Model(new(SR)).
		Where(n.sections.parentKey+" = ?", parentID).
		Pluck("id", &existing).Error; err != nil {
		return err
	}

	stored := make(map[uint]bool, len(existing))
	for _, id := range existing {
		stored[id] = true
	}

	// the first section naming a stored id keeps that row
	claims := make(map[int]uint, len(docs))
	kept := make(map[uint]bool, len(docs))
	for i := range docs {
		id, ok := n.sectionID(&docs[i]).Persisted()
		if !ok || !stored[id] || kept[id] {
			continue
		}
		kept[id] = true
		claims[i] = id
	}

	var stale []uint
	for _, id := range existing {
		if !kept[id] {
			stale = append(stale, id)
		}
	}
	if len(stale) > 0 {
		if err := n.members.purge(tx, stale); err != nil {
			return err
		}
		if err := tx.Where("id IN ?", stale).Delete(new(SR)).Error; err != nil {
			return err
		}
	}

	for i := range docs {
		row := n.sections.toRow(parentID, n.sections.first+i, &docs[i])
		if id, ok := claims[i]; ok {
			PSR(&row).SetKey(id)
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
		} else {
			PSR(&row).SetKey(0)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		if _, err := n.members.replace(tx, PSR(&row).Key(), n.memberDocs(&docs[i])); err != nil {
			return err
		}
	}
	return nil
}

// load fetches the sections and then the members of each section.
func (n nested[SD, SR, MD, MR, PSR]) load(db *gorm.DB, parentID uint) ([]SD, error) {
	var rows []SR
	if err := db.Where(n.sections.parentKey+" = ?", parentID).
		Order("order_number ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]SD, 0, len(rows))
	for i := range rows {
		doc := n.sections.toDoc(&rows[i])
		members, err := n.members.load(db, PSR(&rows[i]).Key())
		if err != nil {
			return nil, err
		}
		n.setMembers(&doc, members)
		out = append(out, doc)
	}
	return out, nil
}
