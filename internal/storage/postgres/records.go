package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/hongminglow/research-tracker/internal/models"
	"github.com/hongminglow/research-tracker/internal/storage"
)

// recordPtr constrains P to a pointer to T that implements models.Record.
type recordPtr[T any] interface {
	*T
	models.Record
}

// RecordRepository implements storage.RecordStore for one record kind.
// Its SQL is derived once from the kind's table and column list.
type RecordRepository[T any, P recordPtr[T]] struct {
	db      DBTX
	kind    models.Kind
	queries recordQueries
}

type recordQueries struct {
	insert      string
	listByOwner string
	listAll     string
	update      string
	delete      string
}

func NewRecordRepository[T any, P recordPtr[T]](db DBTX, kind models.Kind) *RecordRepository[T, P] {
	return &RecordRepository[T, P]{db: db, kind: kind, queries: buildRecordQueries(kind)}
}

func buildRecordQueries(kind models.Kind) recordQueries {
	n := len(kind.Columns)
	cols := strings.Join(kind.Columns, ", ")

	placeholders := make([]string, n)
	assignments := make([]string, n)
	qualified := make([]string, n)
	for i, c := range kind.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		assignments[i] = fmt.Sprintf("%s = $%d", c, i+1)
		qualified[i] = "r." + c
	}

	return recordQueries{
		insert: fmt.Sprintf("INSERT INTO %s (%s, user_id) VALUES (%s, $%d) RETURNING id",
			kind.Table, cols, strings.Join(placeholders, ", "), n+1),
		listByOwner: fmt.Sprintf("SELECT id, %s, user_id FROM %s WHERE user_id = $1 ORDER BY id",
			cols, kind.Table),
		listAll: fmt.Sprintf("SELECT r.id, %s, r.user_id, u.username FROM %s r JOIN users u ON u.id = r.user_id ORDER BY r.id",
			strings.Join(qualified, ", "), kind.Table),
		update: fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d AND user_id = $%d",
			kind.Table, strings.Join(assignments, ", "), n+1, n+2),
		delete: fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND user_id = $2", kind.Table),
	}
}

// Create inserts rec owned by rec.Owned().UserID and returns the generated id.
func (r *RecordRepository[T, P]) Create(ctx context.Context, rec P) (int64, error) {
	args := append(rec.Values(), rec.Owned().UserID)

	var id int64
	if err := r.db.QueryRowContext(ctx, r.queries.insert, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert %s: %w", r.kind.Table, err)
	}
	rec.Owned().ID = id
	return id, nil
}

// ListByOwner returns the owner's rows ordered by id. No rows is an empty slice.
func (r *RecordRepository[T, P]) ListByOwner(ctx context.Context, ownerID int64) ([]P, error) {
	return r.list(ctx, r.queries.listByOwner, false, ownerID)
}

// ListAll returns every row with the owner's username joined in.
func (r *RecordRepository[T, P]) ListAll(ctx context.Context) ([]P, error) {
	return r.list(ctx, r.queries.listAll, true)
}

func (r *RecordRepository[T, P]) list(ctx context.Context, query string, withUsername bool, args ...any) ([]P, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", r.kind.Table, err)
	}
	defer rows.Close()

	result := make([]P, 0)
	for rows.Next() {
		rec := P(new(T))
		meta := rec.Owned()
		dest := append([]any{&meta.ID}, rec.Fields()...)
		dest = append(dest, &meta.UserID)
		if withUsername {
			dest = append(dest, &meta.Username)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.kind.Table, err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites the data columns of the row matching both id and owner.
// storage.ErrNotFound covers a missing row and a row owned by someone else.
func (r *RecordRepository[T, P]) Update(ctx context.Context, rec P) error {
	meta := rec.Owned()
	args := append(rec.Values(), meta.ID, meta.UserID)
	return r.execOwned(ctx, "update", r.queries.update, args...)
}

// Delete removes the row matching both id and owner, with the same error contract as Update.
func (r *RecordRepository[T, P]) Delete(ctx context.Context, id, ownerID int64) error {
	return r.execOwned(ctx, "delete", r.queries.delete, id, ownerID)
}

func (r *RecordRepository[T, P]) execOwned(ctx context.Context, op, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, r.kind.Table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return storage.ErrNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

var (
	_ storage.RecordStore[*models.Patent]      = (*RecordRepository[models.Patent, *models.Patent])(nil)
	_ storage.RecordStore[*models.Publication] = (*RecordRepository[models.Publication, *models.Publication])(nil)
	_ storage.RecordStore[*models.Event]       = (*RecordRepository[models.Event, *models.Event])(nil)
	_ storage.RecordStore[*models.Conference]  = (*RecordRepository[models.Conference, *models.Conference])(nil)
)
