package postgres

import (
	"context"
	"fmt"

	"github.com/hongminglow/research-tracker/internal/models"
	"github.com/hongminglow/research-tracker/internal/storage"
)

var _ storage.StatsStore = (*StatsRepository)(nil)

// StatsRepository runs the cross-kind aggregate queries.
type StatsRepository struct {
	db DBTX
}

func NewStatsRepository(db DBTX) *StatsRepository {
	return &StatsRepository{db: db}
}

const entryCountsQuery = `
	SELECT
		(SELECT COUNT(*) FROM patents),
		(SELECT COUNT(*) FROM publications),
		(SELECT COUNT(*) FROM events),
		(SELECT COUNT(*) FROM conferences)`

// Equal dates are ordered by id, then type.
const recentlyAddedQuery = `
	SELECT type, id, title, description, added_date FROM (
		SELECT 'patents' AS type, id, title, description, date AS added_date FROM patents
		UNION ALL
		SELECT 'publications', id, title, authors, published_date FROM publications
		UNION ALL
		SELECT 'conferences', id, title, description, conference_date FROM conferences
		UNION ALL
		SELECT 'events', id, title, description, date FROM events
	) entries
	ORDER BY added_date DESC, id ASC, type ASC
	LIMIT $1`

const topContributorsQuery = `
	SELECT u.id, u.username,
		(SELECT COUNT(*) FROM patents p WHERE p.user_id = u.id)
		+ (SELECT COUNT(*) FROM publications pub WHERE pub.user_id = u.id)
		+ (SELECT COUNT(*) FROM events e WHERE e.user_id = u.id)
		+ (SELECT COUNT(*) FROM conferences c WHERE c.user_id = u.id) AS contribution_count
	FROM users u
	ORDER BY contribution_count DESC, u.id ASC
	LIMIT $1`

const userStatsQuery = `
	SELECT
		(SELECT COUNT(*) FROM patents WHERE user_id = $1),
		(SELECT COUNT(*) FROM events WHERE user_id = $1),
		(SELECT COUNT(*) FROM publications WHERE user_id = $1),
		(SELECT COUNT(*) FROM conferences WHERE user_id = $1)`

const userEntriesQuery = `
	SELECT type, id, title, description, entry_date FROM (
		SELECT 'Patent' AS type, id, title, description, date AS entry_date FROM patents WHERE user_id = $1
		UNION ALL
		SELECT 'Event', id, title, description, date FROM events WHERE user_id = $1
		UNION ALL
		SELECT 'Publication', id, title, description, published_date FROM publications WHERE user_id = $1
		UNION ALL
		SELECT 'Conference', id, title, description, conference_date FROM conferences WHERE user_id = $1
	) entries
	ORDER BY entry_date DESC, id ASC, type ASC`

func (r *StatsRepository) EntryCounts(ctx context.Context) (models.EntryCounts, error) {
	var c models.EntryCounts
	if err := r.db.QueryRowContext(ctx, entryCountsQuery).
		Scan(&c.Patents, &c.Publications, &c.Events, &c.Conferences); err != nil {
		return models.EntryCounts{}, fmt.Errorf("count entries: %w", err)
	}
	return c, nil
}

func (r *StatsRepository) RecentlyAdded(ctx context.Context, limit int) ([]models.RecentEntry, error) {
	rows, err := r.db.QueryContext(ctx, recentlyAddedQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("select recently added: %w", err)
	}
	defer rows.Close()

	out := make([]models.RecentEntry, 0, limit)
	for rows.Next() {
		var e models.RecentEntry
		if err := rows.Scan(&e.Type, &e.ID, &e.Title, &e.Description, &e.AddedDate); err != nil {
			return nil, fmt.Errorf("scan recently added: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StatsRepository) TopContributors(ctx context.Context, limit int) ([]models.Contributor, error) {
	rows, err := r.db.QueryContext(ctx, topContributorsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("select top contributors: %w", err)
	}
	defer rows.Close()

	out := make([]models.Contributor, 0, limit)
	for rows.Next() {
		var c models.Contributor
		if err := rows.Scan(&c.ID, &c.Name, &c.ContributionCount); err != nil {
			return nil, fmt.Errorf("scan top contributors: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StatsRepository) UserStats(ctx context.Context, ownerID int64) (models.UserStats, error) {
	var s models.UserStats
	if err := r.db.QueryRowContext(ctx, userStatsQuery, ownerID).
		Scan(&s.PatentCount, &s.EventCount, &s.PublicationCount, &s.ConferenceCount); err != nil {
		return models.UserStats{}, fmt.Errorf("count user entries: %w", err)
	}
	return s, nil
}

func (r *StatsRepository) UserEntries(ctx context.Context, ownerID int64) ([]models.UserEntry, error) {
	rows, err := r.db.QueryContext(ctx, userEntriesQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("select user entries: %w", err)
	}
	defer rows.Close()

	out := make([]models.UserEntry, 0)
	for rows.Next() {
		var e models.UserEntry
		if err := rows.Scan(&e.Type, &e.ID, &e.Title, &e.Description, &e.EntryDate); err != nil {
			return nil, fmt.Errorf("scan user entries: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
