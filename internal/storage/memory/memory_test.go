package memory

import (
	"context"
	"testing"

	"github.com/hongminglow/research-tracker/internal/models"
	"github.com/hongminglow/research-tracker/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, s *Store, name string) models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), models.User{
		Username: name, Email: name + "@example.com", PasswordHash: "x", Role: models.RoleUser,
	})
	require.NoError(t, err)
	return u
}

func TestCreateUser_Duplicate(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "alice")

	_, err := s.CreateUser(context.Background(), models.User{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = s.CreateUser(context.Background(), models.User{Username: "other", Email: "alice@example.com"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestFindByUsername(t *testing.T) {
	s := NewStore()
	alice := seedUser(t, s, "alice")

	got, err := s.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = s.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRecords_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	p := &models.Patent{Ownership: models.Ownership{UserID: alice.ID}, Title: "Widget", Date: models.NewDate(2024, 1, 5)}
	id, err := s.Patents().Create(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	bobList, err := s.Patents().ListByOwner(ctx, bob.ID)
	require.NoError(t, err)
	assert.NotNil(t, bobList)
	assert.Empty(t, bobList)

	assert.ErrorIs(t, s.Patents().Delete(ctx, id, bob.ID), storage.ErrNotFound)
	err = s.Patents().Update(ctx, &models.Patent{Ownership: models.Ownership{ID: id, UserID: bob.ID}, Title: "Stolen"})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	aliceList, err := s.Patents().ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceList, 1)
	assert.Equal(t, "Widget", aliceList[0].Title)

	require.NoError(t, s.Patents().Delete(ctx, id, alice.ID))
	assert.ErrorIs(t, s.Patents().Delete(ctx, id, alice.ID), storage.ErrNotFound)
}

func TestRecords_CopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	alice := seedUser(t, s, "alice")

	e := &models.Event{Ownership: models.Ownership{UserID: alice.ID}, Title: "Meetup"}
	_, err := s.Events().Create(ctx, e)
	require.NoError(t, err)
	e.Title = "mutated"

	list, err := s.Events().ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	list[0].Title = "also mutated"

	list, err = s.Events().ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Meetup", list[0].Title)
}

func TestRecords_ListAllJoinsUsername(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	alice := seedUser(t, s, "alice")

	_, err := s.Conferences().Create(ctx, &models.Conference{Ownership: models.Ownership{UserID: alice.ID}, Title: "GopherCon"})
	require.NoError(t, err)

	all, err := s.Conferences().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "alice", all[0].Username)

	own, err := s.Conferences().ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, own[0].Username)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")
	carol := seedUser(t, s, "carol")

	mustCreate := func(_ int64, err error) { require.NoError(t, err) }
	mustCreate(s.Patents().Create(ctx, &models.Patent{Ownership: models.Ownership{UserID: alice.ID}, Title: "P1", Description: "pd", Date: models.NewDate(2024, 1, 1)}))
	mustCreate(s.Publications().Create(ctx, &models.Publication{Ownership: models.Ownership{UserID: bob.ID}, Title: "Pub1", Authors: "B. Ob", Description: "x", PublishedDate: models.NewDate(2024, 3, 1)}))
	mustCreate(s.Events().Create(ctx, &models.Event{Ownership: models.Ownership{UserID: bob.ID}, Title: "E1", Date: models.NewDate(2024, 1, 1)}))
	mustCreate(s.Conferences().Create(ctx, &models.Conference{Ownership: models.Ownership{UserID: alice.ID}, Title: "C1", ConferenceDate: models.NewDate(2024, 2, 1)}))
	mustCreate(s.Events().Create(ctx, &models.Event{Ownership: models.Ownership{UserID: bob.ID}, Title: "E2", Date: models.NewDate(2023, 12, 1)}))

	counts, err := s.EntryCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.EntryCounts{Patents: 1, Publications: 1, Events: 2, Conferences: 1}, counts)

	recent, err := s.RecentlyAdded(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "publications", recent[0].Type)
	assert.Equal(t, "B. Ob", recent[0].Description)
	assert.Equal(t, "conferences", recent[1].Type)
	// P1 and E1 share a date and id 1; type breaks the tie.
	assert.Equal(t, "events", recent[2].Type)

	top, err := s.TopContributors(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []models.Contributor{
		{ID: bob.ID, Name: "bob", ContributionCount: 3},
		{ID: alice.ID, Name: "alice", ContributionCount: 2},
		{ID: carol.ID, Name: "carol", ContributionCount: 0},
	}, top)

	top, err = s.TopContributors(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)

	st, err := s.UserStats(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStats{EventCount: 2, PublicationCount: 1}, st)

	entries, err := s.UserEntries(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Conference", entries[0].Type)
	assert.Equal(t, "Patent", entries[1].Type)

	none, err := s.UserEntries(ctx, carol.ID)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
