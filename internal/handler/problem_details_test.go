package handler_test

import (
	"testing"

	"go-gin-catalog/internal/handler"

	"github.com/stretchr/testify/assert"
)

func TestMalformedBodyDetail(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"", "The request body is malformed or contains invalid JSON. Please verify the request format."},
		{"EOF", "Request body is required but was not provided."},
		{"unexpected EOF", "Invalid JSON format. Please verify the JSON syntax."},
		{"invalid character 'j' looking for beginning of value", "Invalid JSON format. Please verify the JSON syntax."},
		{"json: cannot unmarshal string into Go struct field VenueRequest.capacity of type int", "Invalid value type in request body. Please check data types."},
		{`parsing time "tomorrow" as "2006-01-02T15:04:05"`, "Invalid value type in request body. Please check data types."},
		{"something else", "The request body is malformed or contains invalid JSON. Please verify the request format."},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, handler.MalformedBodyDetail(tt.msg))
		})
	}
}

func TestIntegrityDetail(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"", "A data integrity constraint was violated. Please verify your request data."},
		{`duplicate key value violates UNIQUE constraint "venues_name_key"`, "A resource with the same unique identifier already exists."},
		{`insert or update on table "events" violates foreign key constraint "fk_events_venue"`, "The operation references a resource that does not exist."},
		{`null value in column "name" violates not-null constraint`, "A required field is missing or null."},
		{`check constraint on EVENT_DATE failed`, "Event date is required and must have a valid format (e.g., 2025-12-15T20:00:00)."},
		{`bad venue_id`, "Venue ID is required and must reference an existing venue."},
		{"disk full", "A data integrity constraint was violated. Please verify your request data."},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, handler.IntegrityDetail(tt.msg))
		})
	}
}

func TestExtractFieldName(t *testing.T) {
	assert.Equal(t, "name", handler.ExtractFieldName("create.venue.name"))
	assert.Equal(t, "id", handler.ExtractFieldName("getVenue.id"))
	assert.Equal(t, "name", handler.ExtractFieldName("name"))
	assert.Equal(t, ".name", handler.ExtractFieldName(".name"))
	assert.Equal(t, "", handler.ExtractFieldName(""))
}
