package model

import (
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&Annotation{},
	&Connection{},
}

// Annotation is the durable record behind a map marker. The primary key
// is the storage id the interaction controller links marker handles to;
// it is never reused, even after the visual marker is recreated.
type Annotation struct {
	gorm.Model
	Title     string          `json:"title" gorm:"size:255"`
	IconName  string          `json:"iconName" gorm:"size:127"`
	Note      string          `json:"note"`
	ImagePath string          `json:"imagePath" gorm:"size:255"`
	StartDate *datatypes.Date `json:"startDate"`
	EndDate   *datatypes.Date `json:"endDate"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Location  geom.Point      `json:"location"` // EPSG 3857, stored as WKB
}

func (*Annotation) TableName() string {
	return "annotations"
}

// Connection records a relationship between two annotations created by
// the connect workflow. Both ends are storage ids.
type Connection struct {
	gorm.Model
	FromID uint       `json:"fromId" gorm:"index:idx_connection_from"`
	From   Annotation `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:FromID;"`
	ToID   uint       `json:"toId" gorm:"index:idx_connection_to"`
	To     Annotation `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:ToID;"`
	Label  string     `json:"label" gorm:"size:255"`
}

func (*Connection) TableName() string {
	return "connections"
}

// dateOf converts an optional wall-clock time to an optional DATE column value.
func dateOf(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(*t)
	return &d
}

// timeOf converts an optional DATE column value back to a time pointer.
func timeOf(d *datatypes.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}
