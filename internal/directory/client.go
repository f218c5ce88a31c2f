package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"credauth/internal/domain"
)

const defaultTimeout = 5 * time.Second

// Client talks to the user-directory service that owns user records.
// Every failure crossing this boundary is mapped to the closed error
// taxonomy in internal/domain; raw transport errors never escape.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = "http://localhost:8083"
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// GetByEmail looks up the stored credential for an email address.
func (c *Client) GetByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	url := c.baseURL + "/api/users/by-email/" + email
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.ExternalServiceError{Message: err.Error(), Transient: true}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.ExternalServiceError{Message: err.Error(), Transient: true}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrUserNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, readError(resp)
	}

	var cred domain.Credential
	if err := json.NewDecoder(resp.Body).Decode(&cred); err != nil {
		return nil, &domain.ExternalServiceError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("decode credential: %v", err),
		}
	}
	return &cred, nil
}

// UpdatePassword asks the directory to replace the stored hash.
func (c *Client) UpdatePassword(ctx context.Context, id int, newHash string) error {
	payload, err := json.Marshal(map[string]string{"password": newHash})
	if err != nil {
		return &domain.ExternalServiceError{Message: err.Error()}
	}

	url := fmt.Sprintf("%s/api/users/%d/password", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return &domain.ExternalServiceError{Message: err.Error(), Transient: true}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.ExternalServiceError{Message: err.Error(), Transient: true}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrUserNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return readError(resp)
	}
	return nil
}

func readError(resp *http.Response) *domain.ExternalServiceError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = resp.Status
	}
	return &domain.ExternalServiceError{Status: resp.StatusCode, Message: msg}
}
