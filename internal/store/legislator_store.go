package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jjenkins/legislators/internal/model"
)

const legislatorColumns = `govtrack_id, first_name, last_name, birthday, gender,
	       type, state, district, party, url, notes`

// LegislatorStore handles database operations for legislators
type LegislatorStore struct {
	db *sql.DB
}

// NewLegislatorStore creates a new LegislatorStore
func NewLegislatorStore(db *sql.DB) *LegislatorStore {
	return &LegislatorStore{db: db}
}

// Get retrieves a legislator by govtrack_id. Returns nil when no row exists.
func (s *LegislatorStore) Get(ctx context.Context, govtrackID int) (*model.Legislator, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM legislators
		WHERE govtrack_id = $1
	`, legislatorColumns)

	l, err := scanLegislator(s.db.QueryRowContext(ctx, query, govtrackID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get legislator %d: %v: %w", govtrackID, err, model.ErrStorage)
	}

	return l, nil
}

// List retrieves all legislators matching the filter, in govtrack_id order
// so results are deterministic within a snapshot. The state filter is an
// exact match; the party filter is a case-insensitive substring match.
func (s *LegislatorStore) List(ctx context.Context, filter model.Filter) ([]model.Legislator, error) {
	query := fmt.Sprintf(`SELECT %s FROM legislators`, legislatorColumns)

	var conditions []string
	var args []interface{}
	if filter.State != "" {
		args = append(args, filter.State)
		conditions = append(conditions, fmt.Sprintf("state = $%d", len(args)))
	}
	if filter.Party != "" {
		args = append(args, "%"+filter.Party+"%")
		conditions = append(conditions, fmt.Sprintf("party ILIKE $%d", len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY govtrack_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list legislators: %v: %w", err, model.ErrStorage)
	}
	defer rows.Close()

	var legislators []model.Legislator
	for rows.Next() {
		l, err := scanLegislator(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan legislator: %v: %w", err, model.ErrStorage)
		}
		legislators = append(legislators, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read legislators: %v: %w", err, model.ErrStorage)
	}

	return legislators, nil
}

// UpdateNotes overwrites the notes annotation for a legislator and returns
// the updated record. Returns nil when no row exists. The single UPDATE
// statement takes a row lock, so a racing ingestion upsert cannot produce
// a lost update.
func (s *LegislatorStore) UpdateNotes(ctx context.Context, govtrackID int, note string) (*model.Legislator, error) {
	query := fmt.Sprintf(`
		UPDATE legislators
		SET notes = $2
		WHERE govtrack_id = $1
		RETURNING %s
	`, legislatorColumns)

	l, err := scanLegislator(s.db.QueryRowContext(ctx, query, govtrackID, note))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update notes for legislator %d: %v: %w", govtrackID, err, model.ErrStorage)
	}

	return l, nil
}

// upsertQuery is the per-row upsert used by both ingest modes. Existing
// rows keep their notes: the conflict SET list deliberately omits the
// column. xmax = 0 distinguishes a fresh insert from an overwrite.
const upsertQuery = `
	INSERT INTO legislators (govtrack_id, first_name, last_name, birthday, gender,
	                         type, state, district, party, url, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULL)
	ON CONFLICT (govtrack_id) DO UPDATE SET
		first_name = EXCLUDED.first_name,
		last_name = EXCLUDED.last_name,
		birthday = EXCLUDED.birthday,
		gender = EXCLUDED.gender,
		type = EXCLUDED.type,
		state = EXCLUDED.state,
		district = EXCLUDED.district,
		party = EXCLUDED.party,
		url = EXCLUDED.url
	RETURNING (xmax = 0) AS inserted
`

func upsertLegislator(ctx context.Context, tx *sql.Tx, l *model.Legislator) (inserted bool, err error) {
	err = tx.QueryRowContext(ctx, upsertQuery,
		l.GovtrackID,
		l.FirstName,
		l.LastName,
		l.Birthday,
		l.Gender,
		l.Type,
		l.State,
		l.District,
		l.Party,
		l.URL,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert legislator %d: %v: %w", l.GovtrackID, err, model.ErrStorage)
	}
	return inserted, nil
}

// ApplyMerge upserts each record by govtrack_id in a single transaction.
// Returns how many rows were inserted vs updated.
func (s *LegislatorStore) ApplyMerge(ctx context.Context, records []model.Legislator) (added, updated int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %v: %w", err, model.ErrStorage)
	}
	defer tx.Rollback()

	for i := range records {
		inserted, err := upsertLegislator(ctx, tx, &records[i])
		if err != nil {
			return 0, 0, err
		}
		if inserted {
			added++
		} else {
			updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit transaction: %v: %w", err, model.ErrStorage)
	}

	return added, updated, nil
}

// ApplyReplace clears the table and repopulates it with the same per-row
// upsert as ApplyMerge, all in one transaction. The upsert keeps a feed
// that carries the same govtrack_id twice from failing the run: the later
// row overwrites the earlier one. An interrupted run rolls back to the
// pre-run contents rather than leaving the table empty.
func (s *LegislatorStore) ApplyReplace(ctx context.Context, records []model.Legislator) (added int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %v: %w", err, model.ErrStorage)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM legislators`); err != nil {
		return 0, fmt.Errorf("failed to clear legislators: %v: %w", err, model.ErrStorage)
	}

	for i := range records {
		inserted, err := upsertLegislator(ctx, tx, &records[i])
		if err != nil {
			return 0, err
		}
		if inserted {
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %v: %w", err, model.ErrStorage)
	}

	return added, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLegislator(row scanner) (*model.Legislator, error) {
	var l model.Legislator
	err := row.Scan(
		&l.GovtrackID,
		&l.FirstName,
		&l.LastName,
		&l.Birthday,
		&l.Gender,
		&l.Type,
		&l.State,
		&l.District,
		&l.Party,
		&l.URL,
		&l.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
