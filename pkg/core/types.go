// pkg/core/types.go
package core

import "time"

// Coordinate is a map position in WGS 84 degrees.
type Coordinate struct {
	Lat float64
	Lng float64
}

// ScreenPoint is a pixel position in viewport space.
type ScreenPoint struct {
	X float64
	Y float64
}

// MapHandle identifies a visual marker on the map. The ID is assigned by
// the rendering engine and is only valid until the marker is removed or
// recreated; resolve it through the identity linker, never cache it past
// one marker's lifetime.
type MapHandle struct {
	ID       uint64
	Geometry Coordinate
	Icon     []byte
	Label    string
}

// AnnotationRecord is the durable representation of an annotation.
// StorageID is stable for the record's entire lifetime regardless of how
// many times its visual marker is recreated.
type AnnotationRecord struct {
	StorageID uint
	Title     string
	IconName  string
	Note      string
	ImagePath string
	StartDate *time.Time
	EndDate   *time.Time
	Latitude  float64
	Longitude float64
}

// Coordinate returns the record's position as a map coordinate.
func (r AnnotationRecord) Coordinate() Coordinate {
	return Coordinate{Lat: r.Latitude, Lng: r.Longitude}
}

// Connection is a persisted relationship between two annotations,
// produced by the connect workflow. FromID and ToID are storage ids.
type Connection struct {
	ID     uint
	FromID uint
	ToID   uint
	Label  string
}

// FormResult carries the fields a dialog form returned. Empty strings
// and nil dates mean the user left the field untouched.
type FormResult struct {
	Title     string
	Icon      string
	Note      string
	ImagePath string
	Date      *time.Time
	EndDate   *time.Time
	QuickSave bool
}
