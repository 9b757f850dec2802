package geo

import (
	"errors"
	"strconv"
	"strings"

	"github.com/waymark/annotate/pkg/core"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// GEO POINTS
// Annotation positions are stored as EPSG 3857 points in WKB so SQLite,
// which has no spatial awareness, can round-trip them through the model's
// inherent Scan/Value during migrations.

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// CoordinateFromString parses a string in the format "lat,lng" into a
// map coordinate.
func CoordinateFromString(s string) (core.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return core.Coordinate{}, ErrInvalidCoordinates
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return core.Coordinate{}, ErrInvalidCoordinates
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return core.Coordinate{}, ErrInvalidCoordinates
	}
	c := core.Coordinate{Lat: lat, Lng: lng}
	if !Valid(c) {
		return core.Coordinate{}, ErrInvalidCoordinates
	}
	return c, nil
}

// Valid reports whether the coordinate lies inside WGS 84 bounds.
func Valid(c core.Coordinate) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Point3857 creates an EPSG 3857 point from a WGS 84 coordinate.
func Point3857(c core.Coordinate) (geom.Point, error) {
	if !Valid(c) {
		return geom.Point{}, ErrInvalidCoordinates
	}
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	x, y, _ := f(c.Lng, c.Lat, 0)
	point, err := geom.NewPoint(
		geom.Coordinates{
			XY: geom.XY{X: x, Y: y},
			Z:  0,
		},
	)
	if err != nil {
		return geom.Point{}, ErrInvalidCoordinates
	}
	return point, nil
}

// Coordinate4326 converts an EPSG 3857 point back to a WGS 84 coordinate.
func Coordinate4326(p geom.Point) (core.Coordinate, error) {
	xy, ok := p.XY()
	if !ok {
		return core.Coordinate{}, ErrInvalidCoordinates
	}
	epsg := wgs84.EPSG()
	f := epsg.Transform(3857, 4326)
	lng, lat, _ := f(xy.X, xy.Y, 0)
	return core.Coordinate{Lat: lat, Lng: lng}, nil
}
