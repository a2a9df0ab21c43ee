// Package memory provides in-process implementations of the storage
// interfaces. It backs handler tests and local runs without Postgres.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hongminglow/research-tracker/internal/models"
	"github.com/hongminglow/research-tracker/internal/storage"
)

// Store holds users and the four record kinds behind a single lock.
type Store struct {
	mu     sync.RWMutex
	users  []models.User
	nextID int64

	patents      *Records[models.Patent, *models.Patent]
	publications *Records[models.Publication, *models.Publication]
	events       *Records[models.Event, *models.Event]
	conferences  *Records[models.Conference, *models.Conference]
}

func NewStore() *Store {
	s := &Store{}
	s.patents = newRecords[models.Patent](s, models.Patents)
	s.publications = newRecords[models.Publication](s, models.Publications)
	s.events = newRecords[models.Event](s, models.Events)
	s.conferences = newRecords[models.Conference](s, models.Conferences)
	return s
}

// Users returns the store as a storage.UserStore.
func (s *Store) Users() *Store { return s }

func (s *Store) Patents() *Records[models.Patent, *models.Patent] { return s.patents }

func (s *Store) Publications() *Records[models.Publication, *models.Publication] {
	return s.publications
}

func (s *Store) Events() *Records[models.Event, *models.Event] { return s.events }

func (s *Store) Conferences() *Records[models.Conference, *models.Conference] {
	return s.conferences
}

// Stats returns the store as a storage.StatsStore.
func (s *Store) Stats() *Store { return s }

var (
	_ storage.UserStore  = (*Store)(nil)
	_ storage.StatsStore = (*Store)(nil)
)

func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now().UTC()
	s.users = append(s.users, user)
	return user, nil
}

func (s *Store) FindByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *Store) username(id int64) string {
	for _, u := range s.users {
		if u.ID == id {
			return u.Username
		}
	}
	return ""
}

// summary is the kind-independent view the aggregates work on.
type summary struct {
	kind        models.Kind
	id          int64
	userID      int64
	title       string
	description string
	date        models.Date
}

func (s *Store) summaries() []summary {
	var out []summary
	out = append(out, s.patents.summaries(func(p *models.Patent) (string, string, models.Date) {
		return p.Title, p.Description, p.Date
	})...)
	out = append(out, s.publications.summaries(func(p *models.Publication) (string, string, models.Date) {
		return p.Title, p.Description, p.PublishedDate
	})...)
	out = append(out, s.events.summaries(func(e *models.Event) (string, string, models.Date) {
		return e.Title, e.Description, e.Date
	})...)
	out = append(out, s.conferences.summaries(func(c *models.Conference) (string, string, models.Date) {
		return c.Title, c.Description, c.ConferenceDate
	})...)
	return out
}

// byDateDesc orders newest first, then by id, then by type.
func byDateDesc(typeOf func(summary) string) func(a, b summary) int {
	return func(a, b summary) int {
		if c := b.date.Compare(a.date.Time); c != 0 {
			return c
		}
		if c := cmp.Compare(a.id, b.id); c != 0 {
			return c
		}
		return cmp.Compare(typeOf(a), typeOf(b))
	}
}

func (s *Store) EntryCounts(_ context.Context) (models.EntryCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.EntryCounts{
		Patents:      int64(len(s.patents.rows)),
		Publications: int64(len(s.publications.rows)),
		Events:       int64(len(s.events.rows)),
		Conferences:  int64(len(s.conferences.rows)),
	}, nil
}

func (s *Store) RecentlyAdded(_ context.Context, limit int) ([]models.RecentEntry, error) {
	s.mu.RLock()
	all := s.summaries()
	pubAuthors := make(map[int64]string, len(s.publications.rows))
	for _, p := range s.publications.rows {
		pubAuthors[p.ID] = p.Authors
	}
	s.mu.RUnlock()

	plural := func(e summary) string { return e.kind.Name }
	slices.SortFunc(all, byDateDesc(plural))

	out := make([]models.RecentEntry, 0, min(limit, len(all)))
	for _, e := range all[:min(limit, len(all))] {
		desc := e.description
		if e.kind.Name == models.Publications.Name {
			desc = pubAuthors[e.id]
		}
		out = append(out, models.RecentEntry{
			Type:        e.kind.Name,
			ID:          e.id,
			Title:       e.title,
			Description: desc,
			AddedDate:   e.date,
		})
	}
	return out, nil
}

func (s *Store) TopContributors(_ context.Context, limit int) ([]models.Contributor, error) {
	s.mu.RLock()
	counts := make(map[int64]int64)
	for _, e := range s.summaries() {
		counts[e.userID]++
	}
	out := make([]models.Contributor, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, models.Contributor{ID: u.ID, Name: u.Username, ContributionCount: counts[u.ID]})
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b models.Contributor) int {
		if c := cmp.Compare(b.ContributionCount, a.ContributionCount); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out[:min(limit, len(out))], nil
}

func (s *Store) UserStats(_ context.Context, ownerID int64) (models.UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st models.UserStats
	for _, e := range s.summaries() {
		if e.userID != ownerID {
			continue
		}
		switch e.kind.Name {
		case models.Patents.Name:
			st.PatentCount++
		case models.Events.Name:
			st.EventCount++
		case models.Publications.Name:
			st.PublicationCount++
		case models.Conferences.Name:
			st.ConferenceCount++
		}
	}
	return st, nil
}

func (s *Store) UserEntries(_ context.Context, ownerID int64) ([]models.UserEntry, error) {
	s.mu.RLock()
	all := s.summaries()
	s.mu.RUnlock()

	label := func(e summary) string { return e.kind.Label }
	slices.SortFunc(all, byDateDesc(label))

	out := make([]models.UserEntry, 0)
	for _, e := range all {
		if e.userID != ownerID {
			continue
		}
		out = append(out, models.UserEntry{
			Type:        e.kind.Label,
			ID:          e.id,
			Title:       e.title,
			Description: e.description,
			EntryDate:   e.date,
		})
	}
	return out, nil
}
