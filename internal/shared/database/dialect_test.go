package database

import (
	"testing"
	"time"
)

func TestDialectForDrivers(t *testing.T) {
	cases := map[string]string{
		"postgres": "postgres",
		"pgx":      "postgres",
		"sqlite":   "sqlite",
	}
	for driver, want := range cases {
		d, err := DialectFor(driver)
		if err != nil {
			t.Fatalf("%s: %v", driver, err)
		}
		if d.Name != want {
			t.Fatalf("%s: expected %s dialect, got %s", driver, want, d.Name)
		}
	}

	if _, err := DialectFor("odbc"); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestDialectParams(t *testing.T) {
	if got := Postgres.Param(2); got != "$2" {
		t.Fatalf("postgres param: %s", got)
	}
	if got := SQLite.Param(3); got != "?3" {
		t.Fatalf("sqlite param: %s", got)
	}
}

func TestDialectDateAndQuarterFragments(t *testing.T) {
	day := time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC)

	if got := SQLite.Date(day); got != "2023-02-10" {
		t.Fatalf("sqlite date: %v", got)
	}
	if got, ok := Postgres.Date(day).(time.Time); !ok || !got.Equal(day) {
		t.Fatalf("postgres date should bind a time.Time, got %v", got)
	}

	if got := Postgres.Quarter("g.game_date"); got != "CAST(EXTRACT(QUARTER FROM g.game_date) AS INTEGER)" {
		t.Fatalf("postgres quarter: %s", got)
	}
	if got := SQLite.Year("g.game_date"); got != "CAST(strftime('%Y', g.game_date) AS INTEGER)" {
		t.Fatalf("sqlite year: %s", got)
	}
}
