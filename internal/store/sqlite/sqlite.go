package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/somnologia/somnologia/internal/model"
	"github.com/somnologia/somnologia/internal/store"
)

// New opens (or creates) a SQLite database file, applies the schema, and
// returns a store backed by it.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB constructs a SQLite store over an existing connection and ensures
// the schema is present.
func NewWithDB(db *sql.DB) (store.Store, error) {
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &sqlStore{db: db}, nil
}

type sqlStore struct{ db *sql.DB }

func (s *sqlStore) Persons() store.Persons     { return &persons{db: s.db} }
func (s *sqlStore) Tags() store.Tags           { return &tags{db: s.db} }
func (s *sqlStore) Dreams() store.Dreams       { return &dreams{db: s.db} }
func (s *sqlStore) Dashboard() store.Dashboard { return &dashboard{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *sqlStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DB exposes the underlying connection for test fixtures.
func (s *sqlStore) DB() *sql.DB { return s.db }

// querier is satisfied by both *sql.DB and *sql.Tx so read helpers can run
// inside or outside a transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// --- Persons ---

type persons struct{ db *sql.DB }

func (p *persons) Create(ctx context.Context, m *model.Person) (*model.Person, error) {
	now := time.Now().UTC()
	res, err := p.db.ExecContext(ctx, `
        INSERT INTO persons (name, description, photo_url, creation_time)
        VALUES (?,?,?,?)
    `, m.Name, m.Description, m.PhotoURL, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("person name %q already exists: %w", m.Name, model.ErrConflict)
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *m
	out.ID = id
	out.CreationTime = now
	return &out, nil
}

func (p *persons) Get(ctx context.Context, id int64) (*model.Person, error) {
	return getPerson(ctx, p.db, id)
}

func getPerson(ctx context.Context, q querier, id int64) (*model.Person, error) {
	var out model.Person
	row := q.QueryRowContext(ctx, `
        SELECT id, name, description, photo_url, creation_time FROM persons WHERE id=?
    `, id)
	if err := row.Scan(&out.ID, &out.Name, &out.Description, &out.PhotoURL, &out.CreationTime); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("person %d: %w", id, model.ErrNotFound)
		}
		return nil, err
	}
	return &out, nil
}

func (p *persons) List(ctx context.Context) ([]*model.Person, error) {
	rows, err := p.db.QueryContext(ctx, `
        SELECT id, name, description, photo_url, creation_time FROM persons ORDER BY name
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	res := make([]*model.Person, 0)
	for rows.Next() {
		var m model.Person
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.PhotoURL, &m.CreationTime); err != nil {
			return nil, err
		}
		res = append(res, &m)
	}
	return res, rows.Err()
}

func (p *persons) Update(ctx context.Context, m *model.Person) (*model.Person, error) {
	res, err := p.db.ExecContext(ctx, `
        UPDATE persons SET name=?, description=?, photo_url=? WHERE id=?
    `, m.Name, m.Description, m.PhotoURL, m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("person name %q already exists: %w", m.Name, model.ErrConflict)
		}
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("person %d: %w", m.ID, model.ErrNotFound)
	}
	return getPerson(ctx, p.db, m.ID)
}

func (p *persons) Delete(ctx context.Context, id int64) error {
	// Join rows go with the person via ON DELETE CASCADE (detach policy).
	res, err := p.db.ExecContext(ctx, `DELETE FROM persons WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("person %d: %w", id, model.ErrNotFound)
	}
	return nil
}

// --- Tags ---

type tags struct{ db *sql.DB }

func (t *tags) Create(ctx context.Context, m *model.Tag) (*model.Tag, error) {
	now := time.Now().UTC()
	res, err := t.db.ExecContext(ctx, `
        INSERT INTO tags (name, description, creation_time) VALUES (?,?,?)
    `, m.Name, m.Description, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("tag name %q already exists: %w", m.Name, model.ErrConflict)
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *m
	out.ID = id
	out.CreationTime = now
	return &out, nil
}

func (t *tags) Get(ctx context.Context, id int64) (*model.Tag, error) {
	return getTag(ctx, t.db, id)
}

func getTag(ctx context.Context, q querier, id int64) (*model.Tag, error) {
	var out model.Tag
	row := q.QueryRowContext(ctx, `
        SELECT id, name, description, creation_time FROM tags WHERE id=?
    `, id)
	if err := row.Scan(&out.ID, &out.Name, &out.Description, &out.CreationTime); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("tag %d: %w", id, model.ErrNotFound)
		}
		return nil, err
	}
	return &out, nil
}

func (t *tags) List(ctx context.Context) ([]*model.Tag, error) {
	rows, err := t.db.QueryContext(ctx, `
        SELECT id, name, description, creation_time FROM tags ORDER BY name
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	res := make([]*model.Tag, 0)
	for rows.Next() {
		var m model.Tag
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.CreationTime); err != nil {
			return nil, err
		}
		res = append(res, &m)
	}
	return res, rows.Err()
}

func (t *tags) Update(ctx context.Context, m *model.Tag) (*model.Tag, error) {
	res, err := t.db.ExecContext(ctx, `
        UPDATE tags SET name=?, description=? WHERE id=?
    `, m.Name, m.Description, m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("tag name %q already exists: %w", m.Name, model.ErrConflict)
		}
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("tag %d: %w", m.ID, model.ErrNotFound)
	}
	return getTag(ctx, t.db, m.ID)
}

func (t *tags) Delete(ctx context.Context, id int64) error {
	res, err := t.db.ExecContext(ctx, `DELETE FROM tags WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("tag %d: %w", id, model.ErrNotFound)
	}
	return nil
}

// --- Dreams ---

type dreams struct{ db *sql.DB }

func (d *dreams) Create(ctx context.Context, m *model.Dream, personIDs, tagIDs []int64) (*model.Dream, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
        INSERT INTO dreams (description, dream_date, interpretation, generated_image_url, creation_time)
        VALUES (?,?,?,?,?)
    `, m.Description, m.DreamDate, m.Interpretation, m.GeneratedImageURL, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if err := setAssociations(ctx, tx, id, personIDs, tagIDs); err != nil {
		return nil, err
	}

	out, err := getDream(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// setAssociations replaces join rows for the dream. A nil slice leaves the
// corresponding association set untouched. Every referenced ID is checked for
// existence so a dangling reference fails the enclosing transaction.
func setAssociations(ctx context.Context, tx *sql.Tx, dreamID int64, personIDs, tagIDs []int64) error {
	if personIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM dream_persons WHERE dream_id=?`, dreamID); err != nil {
			return err
		}
		for _, pid := range personIDs {
			if _, err := getPerson(ctx, tx, pid); err != nil {
				return fmt.Errorf("person %d does not exist: %w", pid, model.ErrValidation)
			}
			if _, err := tx.ExecContext(ctx, `
                INSERT OR IGNORE INTO dream_persons (dream_id, person_id) VALUES (?,?)
            `, dreamID, pid); err != nil {
				return err
			}
		}
	}
	if tagIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM dream_tags WHERE dream_id=?`, dreamID); err != nil {
			return err
		}
		for _, tid := range tagIDs {
			if _, err := getTag(ctx, tx, tid); err != nil {
				return fmt.Errorf("tag %d does not exist: %w", tid, model.ErrValidation)
			}
			if _, err := tx.ExecContext(ctx, `
                INSERT OR IGNORE INTO dream_tags (dream_id, tag_id) VALUES (?,?)
            `, dreamID, tid); err != nil {
				return err
			}
		}
	}
	return nil
}

func getDream(ctx context.Context, q querier, id int64) (*model.Dream, error) {
	var out model.Dream
	row := q.QueryRowContext(ctx, `
        SELECT id, description, dream_date, interpretation, generated_image_url, creation_time
        FROM dreams WHERE id=?
    `, id)
	if err := row.Scan(&out.ID, &out.Description, &out.DreamDate, &out.Interpretation, &out.GeneratedImageURL, &out.CreationTime); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("dream %d: %w", id, model.ErrNotFound)
		}
		return nil, err
	}
	if err := loadAssociations(ctx, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func loadAssociations(ctx context.Context, q querier, d *model.Dream) error {
	d.Persons = make([]*model.Person, 0)
	d.Tags = make([]*model.Tag, 0)

	rows, err := q.QueryContext(ctx, `
        SELECT p.id, p.name, p.description, p.photo_url, p.creation_time
        FROM persons p JOIN dream_persons dp ON dp.person_id = p.id
        WHERE dp.dream_id=? ORDER BY p.name
    `, d.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var m model.Person
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.PhotoURL, &m.CreationTime); err != nil {
			_ = rows.Close()
			return err
		}
		d.Persons = append(d.Persons, &m)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	_ = rows.Close()

	rows, err = q.QueryContext(ctx, `
        SELECT t.id, t.name, t.description, t.creation_time
        FROM tags t JOIN dream_tags dt ON dt.tag_id = t.id
        WHERE dt.dream_id=? ORDER BY t.name
    `, d.ID)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var m model.Tag
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.CreationTime); err != nil {
			return err
		}
		d.Tags = append(d.Tags, &m)
	}
	return rows.Err()
}

func (d *dreams) Get(ctx context.Context, id int64) (*model.Dream, error) {
	return getDream(ctx, d.db, id)
}

func (d *dreams) List(ctx context.Context) ([]*model.Dream, error) {
	return listDreams(ctx, d.db, 0)
}

// listDreams returns dreams most recent first; limit 0 means no limit.
func listDreams(ctx context.Context, q querier, limit int) ([]*model.Dream, error) {
	query := `
        SELECT id, description, dream_date, interpretation, generated_image_url, creation_time
        FROM dreams ORDER BY creation_time DESC, id DESC
    `
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	res := make([]*model.Dream, 0)
	for rows.Next() {
		var m model.Dream
		if err := rows.Scan(&m.ID, &m.Description, &m.DreamDate, &m.Interpretation, &m.GeneratedImageURL, &m.CreationTime); err != nil {
			_ = rows.Close()
			return nil, err
		}
		res = append(res, &m)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	for _, m := range res {
		if err := loadAssociations(ctx, q, m); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (d *dreams) Update(ctx context.Context, m *model.Dream, personIDs, tagIDs []int64) (*model.Dream, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
        UPDATE dreams SET description=?, dream_date=? WHERE id=?
    `, m.Description, m.DreamDate, m.ID)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("dream %d: %w", m.ID, model.ErrNotFound)
	}

	if err := setAssociations(ctx, tx, m.ID, personIDs, tagIDs); err != nil {
		return nil, err
	}

	out, err := getDream(ctx, tx, m.ID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *dreams) SetInterpretation(ctx context.Context, id int64, interpretation string, imageURL *string) error {
	res, err := d.db.ExecContext(ctx, `
        UPDATE dreams SET interpretation=?, generated_image_url=COALESCE(?, generated_image_url) WHERE id=?
    `, interpretation, imageURL, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("dream %d: %w", id, model.ErrNotFound)
	}
	return nil
}

func (d *dreams) Delete(ctx context.Context, id int64) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM dreams WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("dream %d: %w", id, model.ErrNotFound)
	}
	return nil
}

// --- Dashboard ---

type dashboard struct{ db *sql.DB }

func (d *dashboard) Snapshot(ctx context.Context, recent int) (*model.DashboardData, error) {
	// Single transaction so the recent list and the counts reflect one
	// consistent state.
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	latest, err := listDreams(ctx, tx, recent)
	if err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, `
        SELECT p.id, p.name, p.photo_url, COUNT(dp.dream_id)
        FROM persons p LEFT JOIN dream_persons dp ON dp.person_id = p.id
        GROUP BY p.id, p.name, p.photo_url
        ORDER BY p.name
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := &model.DashboardData{
		LatestDreams:   latest,
		PersonsSummary: make([]*model.PersonSummary, 0),
		ChartLabels:    make([]string, 0),
		ChartData:      make([]int, 0),
	}
	for rows.Next() {
		var s model.PersonSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.PhotoURL, &s.QtyDreams); err != nil {
			return nil, err
		}
		out.PersonsSummary = append(out.PersonsSummary, &s)
		out.ChartLabels = append(out.ChartLabels, s.Name)
		out.ChartData = append(out.ChartData, s.QtyDreams)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}
