package model

import (
	"database/sql"
	"strings"
	"time"
)

// Chamber type codes used by the source feed.
const (
	TypeSenator        = "sen"
	TypeRepresentative = "rep"
)

// Legislator represents one member of the legislature, keyed by GovtrackID
type Legislator struct {
	GovtrackID int
	FirstName  string
	LastName   string
	Birthday   time.Time
	Gender     string
	Type       string
	State      string
	District   sql.NullString
	Party      string
	URL        sql.NullString
	Notes      sql.NullString
}

// Age returns the legislator's age in whole years on the given date.
// The year difference is reduced by one if the birthday has not yet
// occurred in that year.
func (l *Legislator) Age(on time.Time) int {
	age := on.Year() - l.Birthday.Year()
	if on.Month() < l.Birthday.Month() ||
		(on.Month() == l.Birthday.Month() && on.Day() < l.Birthday.Day()) {
		age--
	}
	return age
}

// Validate checks the structural invariants required before a record may
// be stored: positive id, non-empty required fields, a real birthday that
// is not in the future, and a known chamber type.
func (l *Legislator) Validate(now time.Time) error {
	if l.GovtrackID <= 0 {
		return fieldError("govtrack_id")
	}
	for _, f := range []struct {
		name, value string
	}{
		{"first_name", l.FirstName},
		{"last_name", l.LastName},
		{"gender", l.Gender},
		{"type", l.Type},
		{"state", l.State},
		{"party", l.Party},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fieldError(f.name)
		}
	}
	if l.Birthday.IsZero() {
		return fieldError("birthday")
	}
	if l.Birthday.After(now) {
		return fieldError("birthday")
	}
	if l.Type != TypeSenator && l.Type != TypeRepresentative {
		return fieldError("type")
	}
	return nil
}

// Filter narrows a directory listing. Zero values match everything.
type Filter struct {
	State string // exact match, normalized to uppercase
	Party string // case-insensitive substring match
}

// AgeBracket pairs a legislator with their computed age.
type AgeBracket struct {
	Age        int
	Legislator Legislator
}

// AgeStats is the derived age report over all records with a usable birthday.
type AgeStats struct {
	AverageAge float64
	Youngest   AgeBracket
	Oldest     AgeBracket
}

// WeatherReport is the current conditions at a state capital, as returned
// by the weather collaborator.
type WeatherReport struct {
	Temperature float64
	Description string
	Humidity    int
	WindSpeed   float64
}
