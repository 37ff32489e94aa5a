package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/praxislegal/praxis/internal/domain"
)

// ErrStale reports a response that arrived after a newer request for the same
// collection was issued. The caller's state was already superseded, so the
// result is dropped rather than committed.
var ErrStale = errors.New("response superseded by a newer request")

const defaultRequestTimeout = 10 * time.Second

// Fetcher retrieves one resource collection and owns the page's last good
// envelope. Responses commit in issue order: each Fetch takes a generation
// token, and only the latest generation may replace the envelope, so a slow
// early response can never clobber the result of a later one.
type Fetcher[T any] struct {
	httpClient *http.Client
	url        domain.URL
	state      *FilterState

	mu         sync.Mutex
	generation uint64
	envelope   *domain.Envelope[T]
	lastErr    error
}

// NewFetcher wires a fetcher for the collection at rawURL, driven by state.
// A nil httpClient gets a default with a request timeout.
func NewFetcher[T any](rawURL string, state *FilterState, httpClient *http.Client) (*Fetcher[T], error) {
	collectionURL, err := domain.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid collection URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &Fetcher[T]{
		httpClient: httpClient,
		url:        collectionURL,
		state:      state,
	}, nil
}

// Fetch requests the given page under the applied filter state, commits the
// decoded envelope, and reconciles the state with the server's echo. On any
// failure the previously committed envelope is left in place.
func (f *Fetcher[T]) Fetch(ctx context.Context, page int) (*domain.Envelope[T], error) {
	f.mu.Lock()
	f.generation++
	token := f.generation
	f.mu.Unlock()

	envelope, err := f.request(ctx, page)

	f.mu.Lock()
	defer f.mu.Unlock()
	if token != f.generation {
		return f.envelope, ErrStale
	}
	if err != nil {
		f.lastErr = err
		return f.envelope, err
	}
	f.envelope = envelope
	f.lastErr = nil
	f.state.Reconcile(envelope.Filters)
	return f.envelope, nil
}

func (f *Fetcher[T]) request(ctx context.Context, page int) (*domain.Envelope[T], error) {
	target := f.url.WithQuery(f.state.Query(page)).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var flash domain.FlashError
		if decodeErr := json.NewDecoder(res.Body).Decode(&flash); decodeErr == nil && flash.Error != "" {
			return nil, fmt.Errorf("server rejected request: %s", flash.Error)
		}
		return nil, fmt.Errorf("unexpected response status %d", res.StatusCode)
	}

	var envelope domain.Envelope[T]
	if err = json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode page envelope: %w", err)
	}
	return &envelope, nil
}

// Envelope returns the last successfully committed envelope, which survives
// later failed fetches untouched. Nil before the first success.
func (f *Fetcher[T]) Envelope() *domain.Envelope[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.envelope
}

// Err returns the failure of the most recent committed fetch, or nil.
func (f *Fetcher[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Refetch re-requests the page the applied state currently points at.
func (f *Fetcher[T]) Refetch(ctx context.Context) error {
	_, err := f.Fetch(ctx, f.state.Applied().Page)
	return err
}
