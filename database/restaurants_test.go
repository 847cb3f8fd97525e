package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

// fakeRow fills Scan destinations from a fixed slice of values.
type fakeRow struct {
	values []any
	err    error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = f.values[i].(int64)
		case *int:
			*p = f.values[i].(int)
		case *string:
			*p = f.values[i].(string)
		case *float64:
			*p = f.values[i].(float64)
		case *bool:
			*p = f.values[i].(bool)
		case *sql.NullFloat64:
			if v, ok := f.values[i].(float64); ok {
				*p = sql.NullFloat64{Float64: v, Valid: true}
			} else {
				*p = sql.NullFloat64{}
			}
		}
	}
	return nil
}

func row(lat, lon any) fakeRow {
	return fakeRow{values: []any{
		int64(7), "Dragon House", 1, "India", "New Delhi",
		"CP", "Connaught Place", "Chinese",
		350.0, "Indian Rupees(Rs.)", 4.2,
		"Very Good", 120,
		true, false,
		lat, lon,
	}}
}

func TestScanRestaurant(t *testing.T) {
	r, err := scanRestaurant(row(28.63, 77.21))
	if err != nil {
		t.Fatalf("scanRestaurant: %v", err)
	}
	if r.ID != 7 || r.Name != "Dragon House" || r.CountryCode != 1 {
		t.Errorf("identity: got %d %q %d", r.ID, r.Name, r.CountryCode)
	}
	if r.CostForTwo != 350 || r.Rating != 4.2 || !r.HasOnlineDelivery {
		t.Errorf("values: got %+v", r)
	}
	if !r.Geocoded || r.Latitude != 28.63 {
		t.Errorf("coordinates: got %v %v", r.Geocoded, r.Latitude)
	}
}

func TestScanRestaurantNullCoordinates(t *testing.T) {
	r, err := scanRestaurant(row(nil, nil))
	if err != nil {
		t.Fatalf("scanRestaurant: %v", err)
	}
	if r.Geocoded {
		t.Error("NULL coordinates should not be geocoded")
	}
}

func TestScanRestaurantError(t *testing.T) {
	want := errors.New("boom")
	if _, err := scanRestaurant(fakeRow{err: want}); !errors.Is(err, want) {
		t.Errorf("got %v, want %v", err, want)
	}
}

func TestConnectRequiresDSN(t *testing.T) {
	if _, err := Connect(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty connection string")
	}
}
