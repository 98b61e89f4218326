package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"booking-engine/internal/domain/booking"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/pkg/errs"
)

var (
	ErrNotConfigured = errs.New("calendar service not configured")
	ErrSyncRejected  = errs.New("calendar service rejected event")
)

// Client pushes confirmed bookings to the external calendar service
// over its REST API. Failures here are advisory by contract: callers
// record them against the booking and retry later, they never unwind a
// committed booking.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func NewClient(cfg config.CalendarConfig) *Client {
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

type eventRequest struct {
	Summary       string    `json:"summary"`
	Description   string    `json:"description,omitempty"`
	StartTime     time.Time `json:"start_time"`
	AttendeeEmail string    `json:"attendee_email"`
	AttendeeName  string    `json:"attendee_name"`
}

type eventResponse struct {
	EventID  string `json:"event_id"`
	MeetLink string `json:"meet_link"`
}

func (c *Client) SyncBooking(ctx context.Context, b *booking.Booking) (booking.CalendarEvent, error) {
	if c.baseURL == "" {
		return booking.CalendarEvent{}, ErrNotConfigured
	}

	payload := eventRequest{
		Summary:       fmt.Sprintf("Consultation: %s", b.CustomerName()),
		Description:   b.Business().Notes,
		StartTime:     b.BookedAt(),
		AttendeeEmail: b.CustomerEmail().String(),
		AttendeeName:  b.CustomerName().String(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return booking.CalendarEvent{}, errs.Wrap(err, "failed to encode calendar event")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/events", bytes.NewReader(body))
	if err != nil {
		return booking.CalendarEvent{}, errs.Wrap(err, "failed to build calendar request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return booking.CalendarEvent{}, errs.Wrap(err, "calendar request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return booking.CalendarEvent{}, errs.Mark(
			fmt.Errorf("calendar service returned %d: %s", resp.StatusCode, snippet),
			ErrSyncRejected,
		)
	}

	var out eventResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return booking.CalendarEvent{}, errs.Wrap(err, "failed to decode calendar response")
	}

	return booking.CalendarEvent{EventID: out.EventID, MeetLink: out.MeetLink}, nil
}
