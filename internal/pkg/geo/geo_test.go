package geo

import (
	"math"
	"testing"
)

func TestDistanceSamePoint(t *testing.T) {
	if d := Distance(-6.2, 106.8, -6.2, 106.8); d != 0 {
		t.Errorf("Distance(same point) = %f, want 0", d)
	}
}

func TestDistanceOneDegreeLatitude(t *testing.T) {
	// One degree of latitude is roughly 111 km
	d := Distance(0, 0, 1, 0)
	if math.Abs(d-111195) > 500 {
		t.Errorf("Distance(1 degree latitude) = %f, want ~111195", d)
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	d1 := Distance(-6.2, 106.8, 52.5, 13.4)
	d2 := Distance(52.5, 13.4, -6.2, 106.8)
	if math.Abs(d1-d2) > 1e-6 {
		t.Errorf("Distance not symmetric: %f vs %f", d1, d2)
	}
}

func TestGeofenceAllows(t *testing.T) {
	fence := Geofence{Latitude: -6.2, Longitude: 106.8, RadiusMeters: 100}

	if !fence.Allows(-6.2, 106.8) {
		t.Error("Allows(office coords) = false, want true")
	}

	// A point one degree of latitude away is ~111 km out
	if fence.Allows(-5.2, 106.8) {
		t.Error("Allows(1 degree away) = true, want false")
	}
}

func TestGeofenceBoundary(t *testing.T) {
	fence := Geofence{Latitude: 0, Longitude: 0, RadiusMeters: 150}

	// ~111 m north of the office, inside a 150 m radius
	if !fence.Allows(0.001, 0) {
		t.Error("Allows(~111m away) = false, want true")
	}

	// ~222 m north, outside
	if fence.Allows(0.002, 0) {
		t.Error("Allows(~222m away) = true, want false")
	}
}
