// Package api is the typed client for the airline booking REST backend.
// Each method maps to one documented endpoint; transport concerns (bearer
// tokens, error classification, forced logout on 401) live one layer down.
package api

import "airclient/internal/transport"

type Client struct {
	http *transport.Client
}

func NewClient(http *transport.Client) *Client {
	return &Client{http: http}
}
