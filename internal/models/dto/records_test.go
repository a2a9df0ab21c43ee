package dto

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/research-tracker/internal/validation"
)

func TestPatentRequest_Record(t *testing.T) {
	rec, err := PatentRequest{Title: " T ", Description: "D", Date: "2024-01-01"}.Record()
	require.NoError(t, err)
	assert.Equal(t, "T", rec.Title)
	assert.Equal(t, "2024-01-01", rec.Date.String())
}

func TestConferenceRequest_BadDate(t *testing.T) {
	_, err := ConferenceRequest{Title: "T", Description: "D", Location: "L", ConferenceDate: "soon"}.Record()
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"conference_date"}, verr.Fields)
}

func TestPublicationRequest_Validation(t *testing.T) {
	err := validation.Struct(PublicationRequest{Title: "T", Description: "D", Date: "2024-01-01"})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"authors"}, verr.Fields)
}

func TestEventRequest_Record(t *testing.T) {
	rec, err := EventRequest{Title: "T", Description: "D", Location: "Oslo", Date: "2023-06-01"}.Record()
	require.NoError(t, err)
	assert.Equal(t, "Oslo", rec.Location)
	assert.Zero(t, rec.ID)
}

func TestRegisterRequest_Validation(t *testing.T) {
	assert.NoError(t, validation.Struct(RegisterRequest{Username: "alice", Email: "a@x.com", Password: "pw123", Role: "user"}))

	err := validation.Struct(RegisterRequest{Username: "alice", Email: "a@x.com", Password: "pw123", Role: "root"})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"role"}, verr.Fields)
}

func TestPatentRequest_ZeroDate(t *testing.T) {
	_, err := PatentRequest{Title: "T", Description: "D", Date: "0001-01-01"}.Record()
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"date"}, verr.Fields)
}

func TestRegisterRequest_PasswordByteLimit(t *testing.T) {
	err := validation.Struct(RegisterRequest{
		Username: "alice", Email: "a@x.com", Password: strings.Repeat("é", 40), Role: "user",
	})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"password"}, verr.Fields)
}
