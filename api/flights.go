package api

import (
	"context"
	"fmt"

	"airclient/internal/domain"
)

func (c *Client) ListFlights(ctx context.Context) ([]domain.Flight, error) {
	var flights []domain.Flight
	if err := c.http.Get(ctx, "/api/flights", nil, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *Client) GetFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	var flight domain.Flight
	if err := c.http.Get(ctx, fmt.Sprintf("/api/flights/%d", id), nil, &flight); err != nil {
		return nil, err
	}
	return &flight, nil
}
