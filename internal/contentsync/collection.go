package contentsync

import (
	"gorm.io/gorm"
)

// collection describes one ordered child list of a page: which column links
// its rows to the parent, which order_number the first element gets, and how
// document elements map to rows and back.
type collection[D any, R any] struct {
	parentKey string
	first     int
	toRow     func(parentID uint, order int, d *D) R
	toDoc     func(r *R) D
}

// replace deletes every row of the parent and inserts docs in array order.
// Row ids are always left to the store.
func (c collection[D, R]) replace(tx *gorm.DB, parentID uint, docs []D) ([]R, error) {
	if err := tx.Where(c.parentKey+" = ?", parentID).Delete(new(R)).Error; err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	rows := make([]R, 0, len(docs))
	for i := range docs {
		rows = append(rows, c.toRow(parentID, c.first+i, &docs[i]))
	}
	if err := tx.Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// purge deletes the rows of several parents at once.
func (c collection[D, R]) purge(tx *gorm.DB, parentIDs []uint) error {
	if len(parentIDs) == 0 {
		return nil
	}
	return tx.Where(c.parentKey+" IN ?", parentIDs).Delete(new(R)).Error
}

func (c collection[D, R]) load(db *gorm.DB, parentID uint) ([]D, error) {
	var rows []R
	if err := db.Where(c.parentKey+" = ?", parentID).
		Order("order_number ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]D, 0, len(rows))
	for i := range rows {
		out = append(out, c.toDoc(&rows[i]))
	}
	return out, nil
}
