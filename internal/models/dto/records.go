package dto

import (
	"strings"

	"github.com/hongminglow/research-tracker/internal/models"
	"github.com/hongminglow/research-tracker/internal/validation"
)

// Request bodies for the four record kinds. Each Record method turns a
// validated body into the stored model; ownership is filled in by the caller.

type PatentRequest struct {
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	Date        string `json:"date" validate:"required,notblank"`
}

func (r PatentRequest) Record() (*models.Patent, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return nil, err
	}
	return &models.Patent{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Date:        date,
	}, nil
}

type PublicationRequest struct {
	Title       string `json:"title" validate:"required,notblank"`
	Authors     string `json:"authors" validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	Date        string `json:"date" validate:"required,notblank"`
}

func (r PublicationRequest) Record() (*models.Publication, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return nil, err
	}
	return &models.Publication{
		Title:         strings.TrimSpace(r.Title),
		Authors:       strings.TrimSpace(r.Authors),
		Description:   strings.TrimSpace(r.Description),
		PublishedDate: date,
	}, nil
}

type EventRequest struct {
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	Location    string `json:"location" validate:"required,notblank"`
	Date        string `json:"date" validate:"required,notblank"`
}

func (r EventRequest) Record() (*models.Event, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return nil, err
	}
	return &models.Event{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Location:    strings.TrimSpace(r.Location),
		Date:        date,
	}, nil
}

type ConferenceRequest struct {
	Title          string `json:"title" validate:"required,notblank"`
	Description    string `json:"description" validate:"required,notblank"`
	Location       string `json:"location" validate:"required,notblank"`
	ConferenceDate string `json:"conference_date" validate:"required,notblank"`
}

func (r ConferenceRequest) Record() (*models.Conference, error) {
	date, err := parseDate("conference_date", r.ConferenceDate)
	if err != nil {
		return nil, err
	}
	return &models.Conference{
		Title:          strings.TrimSpace(r.Title),
		Description:    strings.TrimSpace(r.Description),
		Location:       strings.TrimSpace(r.Location),
		ConferenceDate: date,
	}, nil
}

func parseDate(field, value string) (models.Date, error) {
	date, err := models.ParseDate(value)
	// The zero date is stored as NULL, which no date column accepts.
	if err != nil || date.IsZero() {
		return models.Date{}, validation.Field(field)
	}
	return date, nil
}
