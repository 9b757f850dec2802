package geo

import (
	"math"
	"testing"

	"github.com/waymark/annotate/pkg/core"

	geom "github.com/peterstace/simplefeatures/geom"
)

func TestCoordinateFromString(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    core.Coordinate
		wantErr bool
	}{
		{"simple", "10.5,20.25", core.Coordinate{Lat: 10.5, Lng: 20.25}, false},
		{"spaces", " -33.86 , 151.2 ", core.Coordinate{Lat: -33.86, Lng: 151.2}, false},
		{"negative", "-90,-180", core.Coordinate{Lat: -90, Lng: -180}, false},
		{"missing part", "10.5", core.Coordinate{}, true},
		{"too many parts", "1,2,3", core.Coordinate{}, true},
		{"not a number", "abc,def", core.Coordinate{}, true},
		{"lat out of range", "91,0", core.Coordinate{}, true},
		{"lng out of range", "0,181", core.Coordinate{}, true},
		{"empty", "", core.Coordinate{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoordinateFromString(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	if !Valid(core.Coordinate{Lat: 0, Lng: 0}) {
		t.Error("origin should be valid")
	}
	if Valid(core.Coordinate{Lat: 90.01, Lng: 0}) {
		t.Error("lat beyond pole should be invalid")
	}
	if Valid(core.Coordinate{Lat: 0, Lng: -180.5}) {
		t.Error("lng beyond antimeridian should be invalid")
	}
}

func TestPoint3857_RoundTrip(t *testing.T) {
	orig := core.Coordinate{Lat: 48.8584, Lng: 2.2945}

	p, err := Point3857(orig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	back, err := Coordinate4326(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(back.Lat-orig.Lat) > 1e-6 || math.Abs(back.Lng-orig.Lng) > 1e-6 {
		t.Errorf("round trip drifted: got %+v, want %+v", back, orig)
	}
}

func TestPoint3857_InvalidCoordinate(t *testing.T) {
	if _, err := Point3857(core.Coordinate{Lat: 100, Lng: 0}); err == nil {
		t.Error("expected error for out-of-range latitude")
	}
}

func TestCoordinate4326_EmptyPoint(t *testing.T) {
	empty := geom.NewEmptyPoint(geom.DimXY)
	if _, err := Coordinate4326(empty); err == nil {
		t.Error("expected error for empty point")
	}
}
