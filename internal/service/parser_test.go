package service_test

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjenkins/legislators/internal/model"
	"github.com/jjenkins/legislators/internal/service"
)

const feedHeader = "govtrack_id,first_name,last_name,birthday,gender,type,state,district,party,url"

func feedCSV(rows ...string) []byte {
	return []byte(feedHeader + "\n" + strings.Join(rows, "\n") + "\n")
}

func freezeClock(t *testing.T, at string) {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", at)
	require.NoError(t, err)
	model.SetClock(clockwork.NewFakeClockAt(parsed))
	t.Cleanup(func() { model.SetClock(nil) })
}

func TestParse_ValidRow(t *testing.T) {
	freezeClock(t, "2025-06-01")

	content := feedCSV("400001,Maria,Cantwell,1958-10-13,F,sen,WA,,Democrat,https://www.cantwell.senate.gov")
	rows, err := service.NewParser().Parse(content)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.False(t, rows[0].Skipped())

	rec := rows[0].Record
	assert.Equal(t, 400001, rec.GovtrackID)
	assert.Equal(t, "Maria", rec.FirstName)
	assert.Equal(t, "Cantwell", rec.LastName)
	assert.Equal(t, "1958-10-13", rec.Birthday.Format("2006-01-02"))
	assert.Equal(t, "sen", rec.Type)
	assert.Equal(t, "WA", rec.State)
	assert.False(t, rec.District.Valid, "empty district should be absent, not empty string")
	assert.True(t, rec.URL.Valid)
	assert.False(t, rec.Notes.Valid, "notes must be unset at ingestion")
}

func TestParse_DateFormats(t *testing.T) {
	freezeClock(t, "2025-06-01")

	tests := []struct {
		name     string
		birthday string
		want     string
	}{
		{"iso", "1958-10-13", "1958-10-13"},
		{"us slash", "10/13/1958", "1958-10-13"},
		{"datetime", "1958-10-13 00:00:00", "1958-10-13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := feedCSV("400001,Maria,Cantwell," + tt.birthday + ",F,sen,WA,,Democrat,")
			rows, err := service.NewParser().Parse(content)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			require.False(t, rows[0].Skipped(), rows[0].SkipReason)
			assert.Equal(t, tt.want, rows[0].Record.Birthday.Format("2006-01-02"))
		})
	}
}

func TestParse_SkipsRowsMissingRequiredFields(t *testing.T) {
	freezeClock(t, "2025-06-01")

	tests := []struct {
		name string
		row  string
	}{
		{"missing id", ",Maria,Cantwell,1958-10-13,F,sen,WA,,Democrat,"},
		{"zero id", "0,Maria,Cantwell,1958-10-13,F,sen,WA,,Democrat,"},
		{"missing first name", "400001,,Cantwell,1958-10-13,F,sen,WA,,Democrat,"},
		{"missing last name", "400001,Maria,,1958-10-13,F,sen,WA,,Democrat,"},
		{"missing birthday", "400001,Maria,Cantwell,,F,sen,WA,,Democrat,"},
		{"unparseable birthday", "400001,Maria,Cantwell,Oct 13 1958,F,sen,WA,,Democrat,"},
		{"missing gender", "400001,Maria,Cantwell,1958-10-13,,sen,WA,,Democrat,"},
		{"missing type", "400001,Maria,Cantwell,1958-10-13,F,,WA,,Democrat,"},
		{"missing state", "400001,Maria,Cantwell,1958-10-13,F,sen,,,Democrat,"},
		{"missing party", "400001,Maria,Cantwell,1958-10-13,F,sen,WA,,,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := service.NewParser().Parse(feedCSV(tt.row))
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.True(t, rows[0].Skipped())
			assert.NotEmpty(t, rows[0].SkipReason)
		})
	}
}

func TestParse_SkipsFutureBirthday(t *testing.T) {
	freezeClock(t, "2025-06-01")

	rows, err := service.NewParser().Parse(feedCSV("400001,Maria,Cantwell,2030-01-01,F,sen,WA,,Democrat,"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Skipped())
}

func TestParse_BadRowDoesNotStopOthers(t *testing.T) {
	freezeClock(t, "2025-06-01")

	content := feedCSV(
		"400001,Maria,Cantwell,1958-10-13,F,sen,WA,,Democrat,",
		"0,Bad,Row,1970-01-01,M,rep,CA,12,Republican,",
		"412514,Mark,DeSaulnier,1952-03-31,M,rep,CA,10,Democrat,",
	)

	rows, err := service.NewParser().Parse(content)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.False(t, rows[0].Skipped())
	assert.True(t, rows[1].Skipped())
	assert.False(t, rows[2].Skipped())
	assert.Equal(t, "10", rows[2].Record.District.String)
}

func TestParse_TrimsWhitespace(t *testing.T) {
	freezeClock(t, "2025-06-01")

	rows, err := service.NewParser().Parse(feedCSV("400001, Maria , Cantwell ,1958-10-13, F , sen , WA ,, Democrat ,"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.False(t, rows[0].Skipped(), rows[0].SkipReason)
	assert.Equal(t, "Maria", rows[0].Record.FirstName)
	assert.Equal(t, "WA", rows[0].Record.State)
}

func TestParse_EmptyHeaderFails(t *testing.T) {
	_, err := service.NewParser().Parse([]byte(""))
	require.Error(t, err)
}
