package api

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"airclient/internal/domain"
)

type DelayReport struct {
	BookingID             int64     `json:"bookingId"`
	FlightID              int64     `json:"flightId"`
	Reason                string    `json:"reason"`
	OriginalDepartureTime time.Time `json:"originalDepartureTime"`
	NewDepartureTime      time.Time `json:"newDepartureTime"`
}

type suggestionsResponse struct {
	Suggestions []domain.RebookingSuggestion `json:"suggestions"`
}

// NotifyDelay reports a (simulated) delay for a booking.
func (c *Client) NotifyDelay(ctx context.Context, report DelayReport) error {
	return c.http.Post(ctx, "/api/recommendations/notify-delay", report, nil)
}

// RebookingSuggestions returns ranked alternative flights for a delayed
// booking, in the backend's order.
func (c *Client) RebookingSuggestions(ctx context.Context, bookingID int64) ([]domain.RebookingSuggestion, error) {
	query := url.Values{"bookingId": []string{strconv.FormatInt(bookingID, 10)}}
	var resp suggestionsResponse
	if err := c.http.Get(ctx, "/api/recommendations/suggestions", query, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}
