package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jjenkins/legislators/internal/model"
)

// DirectoryStore is the read/annotate surface the directory service needs
// from the record store.
type DirectoryStore interface {
	List(ctx context.Context, filter model.Filter) ([]model.Legislator, error)
	Get(ctx context.Context, govtrackID int) (*model.Legislator, error)
	UpdateNotes(ctx context.Context, govtrackID int, note string) (*model.Legislator, error)
}

// Directory answers filtered listings, point lookups, the notes mutation,
// and the derived age-statistics report over the current store snapshot.
type Directory struct {
	store DirectoryStore
}

// NewDirectory creates a new Directory
func NewDirectory(store DirectoryStore) *Directory {
	return &Directory{store: store}
}

// List returns all legislators matching the filter. The state filter is
// normalized to uppercase before the exact match; the party filter is a
// case-insensitive substring match done by the store.
func (d *Directory) List(ctx context.Context, filter model.Filter) ([]model.Legislator, error) {
	filter.State = strings.ToUpper(strings.TrimSpace(filter.State))
	filter.Party = strings.TrimSpace(filter.Party)

	legislators, err := d.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list legislators: %w", err)
	}
	return legislators, nil
}

// Get returns the legislator with the given id, or ErrNotFound.
func (d *Directory) Get(ctx context.Context, govtrackID int) (*model.Legislator, error) {
	legislator, err := d.store.Get(ctx, govtrackID)
	if err != nil {
		return nil, fmt.Errorf("failed to get legislator %d: %w", govtrackID, err)
	}
	if legislator == nil {
		return nil, fmt.Errorf("legislator %d: %w", govtrackID, model.ErrNotFound)
	}
	return legislator, nil
}

// UpdateNotes overwrites the notes annotation for a legislator. A nil note
// means the field was absent from the request and is a validation error;
// an empty string is a valid value. This is the only write path outside
// ingestion.
func (d *Directory) UpdateNotes(ctx context.Context, govtrackID int, note *string) (*model.Legislator, error) {
	if note == nil {
		return nil, fmt.Errorf("note field is required: %w", model.ErrValidation)
	}

	legislator, err := d.store.UpdateNotes(ctx, govtrackID, *note)
	if err != nil {
		return nil, fmt.Errorf("failed to update notes for legislator %d: %w", govtrackID, err)
	}
	if legislator == nil {
		return nil, fmt.Errorf("legislator %d: %w", govtrackID, model.ErrNotFound)
	}
	return legislator, nil
}

// AgeStatistics computes the age report over all records with a usable
// birthday. Ties in age keep the store's scan order (stable sort); the
// average is rounded half away from zero to two decimal places.
func (d *Directory) AgeStatistics(ctx context.Context) (*model.AgeStats, error) {
	legislators, err := d.store.List(ctx, model.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load legislators: %w", err)
	}
	if len(legislators) == 0 {
		return nil, model.ErrNoLegislators
	}

	now := model.Now()
	var brackets []model.AgeBracket
	for _, l := range legislators {
		if l.Birthday.IsZero() {
			continue
		}
		brackets = append(brackets, model.AgeBracket{Age: l.Age(now), Legislator: l})
	}
	if len(brackets) == 0 {
		return nil, model.ErrNoBirthdays
	}

	sort.SliceStable(brackets, func(a, b int) bool {
		return brackets[a].Age < brackets[b].Age
	})

	sum := 0
	for _, b := range brackets {
		sum += b.Age
	}
	average := float64(sum) / float64(len(brackets))

	return &model.AgeStats{
		AverageAge: math.Round(average*100) / 100,
		Youngest:   brackets[0],
		Oldest:     brackets[len(brackets)-1],
	}, nil
}
