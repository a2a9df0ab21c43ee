package memory

import (
	"context"

	"github.com/hongminglow/research-tracker/internal/models"
	"github.com/hongminglow/research-tracker/internal/storage"
)

type recordPtr[T any] interface {
	*T
	models.Record
}

// Records is the in-memory storage.RecordStore for one kind.
// Rows are copied on the way in and out so callers never alias stored state.
type Records[T any, P recordPtr[T]] struct {
	store  *Store
	kind   models.Kind
	rows   []P
	nextID int64
}

func newRecords[T any, P recordPtr[T]](s *Store, kind models.Kind) *Records[T, P] {
	return &Records[T, P]{store: s, kind: kind}
}

var (
	_ storage.RecordStore[*models.Patent]      = (*Records[models.Patent, *models.Patent])(nil)
	_ storage.RecordStore[*models.Publication] = (*Records[models.Publication, *models.Publication])(nil)
	_ storage.RecordStore[*models.Event]       = (*Records[models.Event, *models.Event])(nil)
	_ storage.RecordStore[*models.Conference]  = (*Records[models.Conference, *models.Conference])(nil)
)

func clone[T any, P recordPtr[T]](rec P) P {
	cp := P(new(T))
	*cp = *(*T)(rec)
	return cp
}

func (r *Records[T, P]) Create(_ context.Context, rec P) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.nextID++
	rec.Owned().ID = r.nextID
	cp := clone[T](rec)
	cp.Owned().Username = ""
	r.rows = append(r.rows, cp)
	return r.nextID, nil
}

func (r *Records[T, P]) ListByOwner(_ context.Context, ownerID int64) ([]P, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]P, 0)
	for _, row := range r.rows {
		if row.Owned().UserID == ownerID {
			out = append(out, clone[T](row))
		}
	}
	return out, nil
}

func (r *Records[T, P]) ListAll(_ context.Context) ([]P, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]P, 0, len(r.rows))
	for _, row := range r.rows {
		cp := clone[T](row)
		cp.Owned().Username = r.store.username(cp.Owned().UserID)
		out = append(out, cp)
	}
	return out, nil
}

func (r *Records[T, P]) Update(_ context.Context, rec P) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.indexOf(rec.Owned().ID, rec.Owned().UserID)
	if i < 0 {
		return storage.ErrNotFound
	}
	cp := clone[T](rec)
	cp.Owned().Username = ""
	r.rows[i] = cp
	return nil
}

func (r *Records[T, P]) Delete(_ context.Context, id, ownerID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.indexOf(id, ownerID)
	if i < 0 {
		return storage.ErrNotFound
	}
	r.rows = append(r.rows[:i], r.rows[i+1:]...)
	return nil
}

func (r *Records[T, P]) indexOf(id, ownerID int64) int {
	for i, row := range r.rows {
		if o := row.Owned(); o.ID == id && o.UserID == ownerID {
			return i
		}
	}
	return -1
}

// summaries must be called with the store lock held.
func (r *Records[T, P]) summaries(fields func(P) (title, description string, date models.Date)) []summary {
	out := make([]summary, 0, len(r.rows))
	for _, row := range r.rows {
		title, desc, date := fields(row)
		o := row.Owned()
		out = append(out, summary{kind: r.kind, id: o.ID, userID: o.UserID, title: title, description: desc, date: date})
	}
	return out
}
