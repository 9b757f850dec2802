package model

import (
	"github.com/waymark/annotate/internal/geo"
	"github.com/waymark/annotate/pkg/core"
)

// FromCore builds a gorm Annotation from a core record. The spatial
// column is derived from lat/lng; invalid coordinates surface as an
// error so a bad record never reaches the database.
func FromCore(r core.AnnotationRecord) (Annotation, error) {
	point, err := geo.Point3857(r.Coordinate())
	if err != nil {
		return Annotation{}, err
	}

	a := Annotation{
		Title:     r.Title,
		IconName:  r.IconName,
		Note:      r.Note,
		ImagePath: r.ImagePath,
		StartDate: dateOf(r.StartDate),
		EndDate:   dateOf(r.EndDate),
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Location:  point,
	}
	a.ID = r.StorageID
	return a, nil
}

// ToCore converts a gorm Annotation back to the core record type.
func ToCore(a Annotation) core.AnnotationRecord {
	return core.AnnotationRecord{
		StorageID: a.ID,
		Title:     a.Title,
		IconName:  a.IconName,
		Note:      a.Note,
		ImagePath: a.ImagePath,
		StartDate: timeOf(a.StartDate),
		EndDate:   timeOf(a.EndDate),
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
	}
}

// ConnectionFromCore builds a gorm Connection from a core connection.
func ConnectionFromCore(c core.Connection) Connection {
	conn := Connection{
		FromID: c.FromID,
		ToID:   c.ToID,
		Label:  c.Label,
	}
	conn.ID = c.ID
	return conn
}

// ConnectionToCore converts a gorm Connection back to the core type.
func ConnectionToCore(c Connection) core.Connection {
	return core.Connection{
		ID:     c.ID,
		FromID: c.FromID,
		ToID:   c.ToID,
		Label:  c.Label,
	}
}
