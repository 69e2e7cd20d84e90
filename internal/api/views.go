// Package api defines the JSON representations shared by both HTTP front
// ends, so the two adapters present an identical contract.
package api

import (
	"github.com/jjenkins/legislators/internal/model"
)

// LegislatorView is the wire shape of a legislator record.
type LegislatorView struct {
	GovtrackID int     `json:"govtrack_id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Birthday   *string `json:"birthday"`
	Gender     string  `json:"gender"`
	Type       string  `json:"type"`
	State      string  `json:"state"`
	District   *string `json:"district"`
	Party      string  `json:"party"`
	URL        *string `json:"url"`
	Notes      *string `json:"notes"`
}

// NewLegislatorView converts a record to its wire shape.
func NewLegislatorView(l *model.Legislator) LegislatorView {
	v := LegislatorView{
		GovtrackID: l.GovtrackID,
		FirstName:  l.FirstName,
		LastName:   l.LastName,
		Gender:     l.Gender,
		Type:       l.Type,
		State:      l.State,
		Party:      l.Party,
	}
	if !l.Birthday.IsZero() {
		birthday := l.Birthday.Format("2006-01-02")
		v.Birthday = &birthday
	}
	if l.District.Valid {
		district := l.District.String
		v.District = &district
	}
	if l.URL.Valid {
		url := l.URL.String
		v.URL = &url
	}
	if l.Notes.Valid {
		notes := l.Notes.String
		v.Notes = &notes
	}
	return v
}

// NewLegislatorViews converts a listing.
func NewLegislatorViews(legislators []model.Legislator) []LegislatorView {
	views := make([]LegislatorView, len(legislators))
	for i := range legislators {
		views[i] = NewLegislatorView(&legislators[i])
	}
	return views
}

// AgeBracketView pairs an age with the legislator holding it.
type AgeBracketView struct {
	Age        int            `json:"age"`
	Legislator LegislatorView `json:"legislator"`
}

// AgeStatsView is the wire shape of the age-statistics report.
type AgeStatsView struct {
	AverageAge float64        `json:"average_age"`
	Youngest   AgeBracketView `json:"youngest_legislator"`
	Oldest     AgeBracketView `json:"oldest_legislator"`
}

// NewAgeStatsView converts the age report to its wire shape.
func NewAgeStatsView(stats *model.AgeStats) AgeStatsView {
	return AgeStatsView{
		AverageAge: stats.AverageAge,
		Youngest: AgeBracketView{
			Age:        stats.Youngest.Age,
			Legislator: NewLegislatorView(&stats.Youngest.Legislator),
		},
		Oldest: AgeBracketView{
			Age:        stats.Oldest.Age,
			Legislator: NewLegislatorView(&stats.Oldest.Legislator),
		},
	}
}

// WeatherView is the wire shape of the weather enrichment response.
type WeatherView struct {
	Legislator   LegislatorView `json:"legislator"`
	StateCapital string         `json:"state_capital"`
	Weather      ConditionsView `json:"weather"`
}

// ConditionsView is the weather subset this service exposes.
type ConditionsView struct {
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
}

// NewWeatherView combines a legislator, capital, and conditions report.
func NewWeatherView(l *model.Legislator, capital string, report *model.WeatherReport) WeatherView {
	return WeatherView{
		Legislator:   NewLegislatorView(l),
		StateCapital: capital,
		Weather: ConditionsView{
			Temperature: report.Temperature,
			Description: report.Description,
			Humidity:    report.Humidity,
			WindSpeed:   report.WindSpeed,
		},
	}
}

// NotesUpdateRequest is the PATCH body for the notes mutation. A nil Note
// means the field was absent.
type NotesUpdateRequest struct {
	Note *string `json:"note"`
}
