package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindByName(t *testing.T) {
	for _, k := range Kinds {
		got, ok := KindByName(k.Name)
		assert.True(t, ok)
		assert.Equal(t, k.Table, got.Table)
	}
	_, ok := KindByName("users")
	assert.False(t, ok)
}

func TestKind_IDKey(t *testing.T) {
	assert.Equal(t, "patentId", Patents.IDKey())
	assert.Equal(t, "publicationId", Publications.IDKey())
	assert.Equal(t, "eventId", Events.IDKey())
	assert.Equal(t, "conferenceId", Conferences.IDKey())
}

func TestRecords_FieldsMatchColumns(t *testing.T) {
	records := map[string]Record{
		Patents.Name:      &Patent{},
		Publications.Name: &Publication{},
		Events.Name:       &Event{},
		Conferences.Name:  &Conference{},
	}
	for _, k := range Kinds {
		rec := records[k.Name]
		assert.Len(t, rec.Fields(), len(k.Columns), k.Name)
		assert.Len(t, rec.Values(), len(k.Columns), k.Name)
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleUser))
	assert.False(t, ValidRole("player"))
}
