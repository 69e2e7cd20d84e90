package service_test

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjenkins/legislators/internal/model"
	"github.com/jjenkins/legislators/internal/service"
)

// DirectoryStore methods for memStore, mirroring the Postgres store:
// govtrack_id scan order, exact state match, case-insensitive party
// substring match.

func (s *memStore) List(_ context.Context, filter model.Filter) ([]model.Legislator, error) {
	var ids []int
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var out []model.Legislator
	for _, id := range ids {
		rec := s.records[id]
		if filter.State != "" && rec.State != filter.State {
			continue
		}
		if filter.Party != "" && !strings.Contains(strings.ToLower(rec.Party), strings.ToLower(filter.Party)) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *memStore) Get(_ context.Context, govtrackID int) (*model.Legislator, error) {
	rec, ok := s.records[govtrackID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *memStore) UpdateNotes(_ context.Context, govtrackID int, note string) (*model.Legislator, error) {
	rec, ok := s.records[govtrackID]
	if !ok {
		return nil, nil
	}
	rec.Notes = sql.NullString{String: note, Valid: true}
	s.records[govtrackID] = rec
	return &rec, nil
}

func seedDirectory(t *testing.T, rows ...string) (*service.Directory, *memStore) {
	t.Helper()
	store := newMemStore()
	_, err := newIngester(&mockFeed{content: feedCSV(rows...)}, store).Run(context.Background(), service.ModeMerge)
	require.NoError(t, err)
	return service.NewDirectory(store), store
}

func TestList_StateFilterIsCaseInsensitive(t *testing.T) {
	freezeClock(t, "2025-06-01")

	directory, _ := seedDirectory(t,
		"400001,Maria,Cantwell,1958-10-13,F,sen,WA,,Democrat,",
		"412514,Mark,DeSaulnier,1952-03-31,M,rep,CA,10,Democrat,",
		"412515,Ro,Khanna,1976-09-13,M,rep,CA,17,Democrat,",
	)

	for _, state := range []string{"ca", "CA", "Ca"} {
		got, err := directory.List(context.Background(), model.Filter{State: state})
		require.NoError(t, err)
		require.Len(t, got, 2, "state=%s", state)
		for _, l := range got {
			assert.Equal(t, "CA", l.State)
		}
	}
}

func TestList_PartySubstringFilter(t *testing.T) {
	freezeClock(t, "2025-06-01")

	directory, _ := seedDirectory(t,
		"400001,Maria,Cantwell,1958-10-13,F,sen,WA,,Democrat,",
		"400057,Chuck,Grassley,1933-09-17,M,sen,IA,,Republican,",
	)

	got, err := directory.List(context.Background(), model.Filter{Party: "dem"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Democrat", got[0].Party)
}

func TestList_NoFilterReturnsAll(t *testing.T) {
	freezeClock(t, "2025-06-01")

	directory, _ := seedDirectory(t,
		"400001,Maria,Cantwell,1958-10-13,F,sen,WA,,Democrat,",
		"400057,Chuck,Grassley,1933-09-17,M,sen,IA,,Republican,",
	)

	got, err := directory.List(context.Background(), model.Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestGet_NotFound(t *testing.T) {
	freezeClock(t, "2025-06-01")

	directory, _ := seedDirectory(t)
	_, err := directory.Get(context.Background(), 999999)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUpdateNotes(t *testing.T) {
	freezeClock(t, "2025-06-01")

	directory, store := seedDirectory(t,
		"400001,Maria,Cantwell,1958-10-13,F,sen,WA,,Democrat,",
	)

	note := "flagged"
	got, err := directory.UpdateNotes(context.Background(), 400001, &note)
	require.NoError(t, err)
	assert.Equal(t, "flagged", got.Notes.String)
	assert.Equal(t, "flagged", store.records[400001].Notes.String)

	// Empty string is a valid note value.
	empty := ""
	got, err = directory.UpdateNotes(context.Background(), 400001, &empty)
	require.NoError(t, err)
	assert.True(t, got.Notes.Valid)
	assert.Equal(t, "", got.Notes.String)
}

func TestUpdateNotes_MissingFieldIsValidationError(t *testing.T) {
	freezeClock(t, "2025-06-01")

	directory, _ := seedDirectory(t,
		"400001,Maria,Cantwell,1958-10-13,F,sen,WA,,Democrat,",
	)

	_, err := directory.UpdateNotes(context.Background(), 400001, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestUpdateNotes_UnknownIDIsNotFound(t *testing.T) {
	freezeClock(t, "2025-06-01")

	directory, _ := seedDirectory(t)
	note := "x"
	_, err := directory.UpdateNotes(context.Background(), 999999, &note)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAgeStatistics(t *testing.T) {
	// Ages on 2025-06-01: 30, 45, 60.
	freezeClock(t, "2025-06-01")

	directory, _ := seedDirectory(t,
		"400001,Alice,Young,1995-01-15,F,rep,CA,12,Democrat,",
		"400002,Brian,Middle,1980-01-15,M,sen,WA,,Democrat,",
		"400003,Carol,Senior,1965-01-15,F,sen,IA,,Republican,",
	)

	stats, err := directory.AgeStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 45.0, stats.AverageAge)
	assert.Equal(t, 30, stats.Youngest.Age)
	assert.Equal(t, "Alice", stats.Youngest.Legislator.FirstName)
	assert.Equal(t, 60, stats.Oldest.Age)
	assert.Equal(t, "Carol", stats.Oldest.Legislator.FirstName)
}

func TestAgeStatistics_RoundsAverage(t *testing.T) {
	// Ages on 2025-06-01: 30, 45, 59 -> mean 44.666... -> 44.67.
	freezeClock(t, "2025-06-01")

	directory, _ := seedDirectory(t,
		"400001,Alice,Young,1995-01-15,F,rep,CA,12,Democrat,",
		"400002,Brian,Middle,1980-01-15,M,sen,WA,,Democrat,",
		"400003,Carol,Senior,1966-01-15,F,sen,IA,,Republican,",
	)

	stats, err := directory.AgeStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 44.67, stats.AverageAge)
}

func TestAgeStatistics_TiesKeepStoreOrder(t *testing.T) {
	freezeClock(t, "2025-06-01")

	// All the same age; youngest and oldest fall out of id order.
	directory, _ := seedDirectory(t,
		"400003,Carol,Third,1980-01-15,F,sen,IA,,Republican,",
		"400001,Alice,First,1980-01-15,F,rep,CA,12,Democrat,",
		"400002,Brian,Second,1980-01-15,M,sen,WA,,Democrat,",
	)

	stats, err := directory.AgeStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 400001, stats.Youngest.Legislator.GovtrackID)
	assert.Equal(t, 400003, stats.Oldest.Legislator.GovtrackID)
}

func TestAgeStatistics_EmptyStore(t *testing.T) {
	freezeClock(t, "2025-06-01")

	directory, _ := seedDirectory(t)
	_, err := directory.AgeStatistics(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNoLegislators)
}

func TestAgeStatistics_NoUsableBirthdays(t *testing.T) {
	freezeClock(t, "2025-06-01")

	store := newMemStore()
	store.records[400001] = model.Legislator{GovtrackID: 400001, FirstName: "No", LastName: "Birthday"}
	directory := service.NewDirectory(store)

	_, err := directory.AgeStatistics(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNoBirthdays)
	assert.NotErrorIs(t, err, model.ErrNoLegislators)
}
