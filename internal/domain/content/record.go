package content

import "time"

// SingletonID is the fixed primary key of every page's parent row.
const SingletonID uint = 1

// Record is embedded by every parent content row. Version is bumped on each
// save and is what editors echo back to prove they edited the latest copy.
type Record struct {
	ID      uint  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Version int64 `gorm:"not null;default:0" json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Stamp pins the row to the singleton id and sets the version it is written with.
func (r *Record) Stamp(version int64) {
	r.ID = SingletonID
	r.Version = version
}

// Item is embedded by every ordered child row.
type Item struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	OrderNumber int  `gorm:"not null;default:0;index" json:"order_number"`
}

func (i *Item) Key() uint {
	return i.ID
}

func (i *Item) SetKey(id uint) {
	i.ID = id
}
