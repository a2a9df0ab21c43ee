package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/research-tracker/internal/models"
)

// ErrNotFound indicates a record does not exist, or exists but belongs to
// another owner. Callers cannot tell the two apart.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore is the credential store.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

// RecordStore persists one record kind. Every mutation is scoped to the
// owner carried in the record or passed explicitly.
type RecordStore[P models.Record] interface {
	Create(ctx context.Context, rec P) (int64, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]P, error)
	// ListAll ignores ownership and fills in the owner's username.
	ListAll(ctx context.Context) ([]P, error)
	Update(ctx context.Context, rec P) error
	Delete(ctx context.Context, id, ownerID int64) error
}

// StatsStore serves read-only aggregates across the four record kinds.
type StatsStore interface {
	EntryCounts(ctx context.Context) (models.EntryCounts, error)
	RecentlyAdded(ctx context.Context, limit int) ([]models.RecentEntry, error)
	TopContributors(ctx context.Context, limit int) ([]models.Contributor, error)
	UserStats(ctx context.Context, ownerID int64) (models.UserStats, error)
	UserEntries(ctx context.Context, ownerID int64) ([]models.UserEntry, error)
}
