package database

import (
	"fmt"
	"strconv"
	"time"
)

// Dialect holds the SQL fragments that differ between backends. Fragments
// only ever take column names chosen by the query catalog, never user input.
type Dialect struct {
	Name        string
	placeholder func(n int) string
	year        func(column string) string
	quarter     func(column string) string
	date        func(t time.Time) any
}

var Postgres = Dialect{
	Name:        "postgres",
	placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	year:        func(column string) string { return fmt.Sprintf("CAST(EXTRACT(YEAR FROM %s) AS INTEGER)", column) },
	quarter:     func(column string) string { return fmt.Sprintf("CAST(EXTRACT(QUARTER FROM %s) AS INTEGER)", column) },
	date:        func(t time.Time) any { return t },
}

var SQLite = Dialect{
	Name:        "sqlite",
	placeholder: func(n int) string { return "?" + strconv.Itoa(n) },
	year:        func(column string) string { return fmt.Sprintf("CAST(strftime('%%Y', %s) AS INTEGER)", column) },
	quarter: func(column string) string {
		return fmt.Sprintf("((CAST(strftime('%%m', %s) AS INTEGER) + 2) / 3)", column)
	},
	// Dates are stored as ISO-8601 text, which compares correctly as strings.
	date: func(t time.Time) any { return t.Format("2006-01-02") },
}

func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "postgres", "pgx":
		return Postgres, nil
	case "sqlite":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("no dialect for driver %q", driver)
	}
}

// Param returns the bind marker for the n-th (1-based) argument.
func (d Dialect) Param(n int) string {
	return d.placeholder(n)
}

func (d Dialect) Year(column string) string {
	return d.year(column)
}

func (d Dialect) Quarter(column string) string {
	return d.quarter(column)
}

// Date converts a calendar day into the bind value the backend compares
// against date columns.
func (d Dialect) Date(t time.Time) any {
	return d.date(t)
}
