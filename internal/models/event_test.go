package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeEventStatus(t *testing.T) {
	eventDate := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)
	endDate := eventDate.Add(4 * time.Hour)

	tests := []struct {
		name    string
		endDate *time.Time
		now     time.Time
		want    EventStatus
	}{
		{"before start", &endDate, eventDate.Add(-time.Minute), EventUpcoming},
		{"between start and end", &endDate, eventDate.Add(time.Hour), EventOngoing},
		{"after end", &endDate, endDate.Add(time.Minute), EventPast},
		{"no end date, before start", nil, eventDate.Add(-time.Hour), EventUpcoming},
		{"no end date, after start", nil, eventDate.Add(time.Minute), EventPast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeEventStatus(eventDate, tt.endDate, tt.now))
		})
	}
}

func TestRefreshStatusOverridesStoredValue(t *testing.T) {
	eventDate := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)
	event := Event{EventDate: eventDate, Status: EventPast}

	event.RefreshStatus(eventDate.Add(-24 * time.Hour))
	assert.Equal(t, EventUpcoming, event.Status)
}
