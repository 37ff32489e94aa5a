package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/praxislegal/praxis/internal/domain"
)

// ErrPending reports a mutation rejected because another mutation for the
// same record is still in flight.
var ErrPending = errors.New("a mutation for this record is already pending")

// Notifier receives exactly one Loading call per dispatched mutation,
// followed by exactly one of Success or Error.
type Notifier interface {
	Loading(message string)
	Success(message string)
	Error(message string)
}

// Dispatcher sends mutations against one resource collection. Every
// successful mutation triggers a refetch of the current page rather than a
// local patch of the envelope, so the client's rows are always the server's
// rows. Deletes in particular never remove a row optimistically.
type Dispatcher struct {
	httpClient *http.Client
	url        domain.URL
	notifier   Notifier
	refetch    func(ctx context.Context) error

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewDispatcher wires a dispatcher for the collection at rawURL. refetch is
// called after every confirmed mutation; a Fetcher's Refetch method fits.
func NewDispatcher(rawURL string, notifier Notifier, refetch func(ctx context.Context) error, httpClient *http.Client) (*Dispatcher, error) {
	collectionURL, err := domain.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid collection URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &Dispatcher{
		httpClient: httpClient,
		url:        collectionURL,
		notifier:   notifier,
		refetch:    refetch,
		pending:    make(map[string]struct{}),
	}, nil
}

// Create POSTs a new record.
func (d *Dispatcher) Create(ctx context.Context, payload any, loadingMessage string) error {
	return d.dispatch(ctx, "create", http.MethodPost, "", payload, loadingMessage, "Created successfully")
}

// Update PUTs a full replacement of the record.
func (d *Dispatcher) Update(ctx context.Context, id string, payload any, loadingMessage string) error {
	return d.dispatch(ctx, id, http.MethodPut, id, payload, loadingMessage, "Updated successfully")
}

// Delete removes the record. The row disappears only when the refetch after
// server confirmation no longer returns it.
func (d *Dispatcher) Delete(ctx context.Context, id string, loadingMessage string) error {
	return d.dispatch(ctx, id, http.MethodDelete, id, nil, loadingMessage, "Deleted successfully")
}

// ToggleStatus flips a record between its active and inactive states.
func (d *Dispatcher) ToggleStatus(ctx context.Context, id string, loadingMessage string) error {
	return d.dispatch(ctx, id, http.MethodPut, id+"/toggle-status", nil, loadingMessage, "Status updated successfully")
}

// AdvanceStatus moves a record one step along its status chain.
func (d *Dispatcher) AdvanceStatus(ctx context.Context, id string, loadingMessage string) error {
	return d.dispatch(ctx, id, http.MethodPut, id+"/status", nil, loadingMessage, "Status updated successfully")
}

// dispatch runs the shared mutation lifecycle: single-flight guard, loading
// notification, request, then exactly one success or error notification
// sourced from the server's flash message when it sent one.
func (d *Dispatcher) dispatch(ctx context.Context, guardKey string, method string, path string, payload any, loadingMessage string, fallbackMessage string) error {
	if !d.acquire(guardKey) {
		return fmt.Errorf("%w: %s", ErrPending, guardKey)
	}
	defer d.release(guardKey)

	if loadingMessage == "" {
		loadingMessage = "Working..."
	}
	d.notifier.Loading(loadingMessage)

	outcome, err := d.send(ctx, method, path, payload)
	if err != nil {
		d.notifier.Error(err.Error())
		return err
	}

	message := outcome.Message()
	if message == "" {
		message = fallbackMessage
	}
	d.notifier.Success(message)

	if d.refetch != nil {
		if refetchErr := d.refetch(ctx); refetchErr != nil && !errors.Is(refetchErr, ErrStale) {
			return fmt.Errorf("mutation confirmed but refetch failed: %w", refetchErr)
		}
	}
	return nil
}

func (d *Dispatcher) acquire(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, inFlight := d.pending[key]; inFlight {
		return false
	}
	d.pending[key] = struct{}{}
	return true
}

func (d *Dispatcher) release(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.pending, key)
}

func (d *Dispatcher) send(ctx context.Context, method string, path string, payload any) (domain.MutationOutcome, error) {
	var outcome domain.MutationOutcome

	target := d.url.Clone()
	if path != "" {
		target.Path = strings.TrimSuffix(target.Path, "/") + "/" + path
	}

	var body *bytes.Buffer
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return outcome, fmt.Errorf("failed to encode payload: %w", err)
		}
		body = bytes.NewBuffer(encoded)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return outcome, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := d.httpClient.Do(req)
	if err != nil {
		return outcome, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if decodeErr := json.NewDecoder(res.Body).Decode(&outcome); decodeErr != nil && res.StatusCode < 300 {
		// A confirmed mutation with an unreadable body still succeeded;
		// the fallback message covers it.
		outcome = domain.MutationOutcome{}
	}

	if res.StatusCode >= 300 {
		message := outcome.Message()
		if message == "" {
			message = fmt.Sprintf("unexpected response status %d", res.StatusCode)
		}
		return outcome, errors.New(message)
	}
	return outcome, nil
}
