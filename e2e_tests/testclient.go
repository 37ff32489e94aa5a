package e2e_tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type TestClient struct {
	baseURL url.URL
}

func NewTestClient(baseURL url.URL) *TestClient {
	return &TestClient{baseURL: baseURL}
}

func (client *TestClient) endpoint(path ...string) string {
	return client.baseURL.JoinPath(path...).String()
}

func (client *TestClient) sendRequest(method string, endpoint string, body any) (res *http.Response, err error) {
	var payload *bytes.Buffer
	if body != nil {
		jsonBody, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			err = fmt.Errorf("failed to serialize JSON payload: %w", marshalErr)
			return
		}
		payload = bytes.NewBuffer(jsonBody)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, endpoint, payload)
	if err != nil {
		err = fmt.Errorf("failed to create request: %w", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	res, err = http.DefaultClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed to send request: %s", err)
		return
	}
	return
}

// Get fetches an absolute URL, used for following envelope page links.
func (client *TestClient) Get(rawURL string) (*http.Response, error) {
	return client.sendRequest("GET", rawURL, nil)
}

// List fetches a resource collection with the given query parameters.
func (client *TestClient) List(resource string, query url.Values) (*http.Response, error) {
	endpoint := client.baseURL.JoinPath(resource)
	endpoint.RawQuery = query.Encode()
	return client.sendRequest("GET", endpoint.String(), nil)
}

func (client *TestClient) Create(resource string, payload any) (*http.Response, error) {
	return client.sendRequest("POST", client.endpoint(resource), payload)
}

func (client *TestClient) Fetch(resource string, id string) (*http.Response, error) {
	return client.sendRequest("GET", client.endpoint(resource, id), nil)
}

func (client *TestClient) Update(resource string, id string, payload any) (*http.Response, error) {
	return client.sendRequest("PUT", client.endpoint(resource, id), payload)
}

func (client *TestClient) Delete(resource string, id string) (*http.Response, error) {
	return client.sendRequest("DELETE", client.endpoint(resource, id), nil)
}

func (client *TestClient) ToggleCourtStatus(id string) (*http.Response, error) {
	return client.sendRequest("PUT", client.endpoint("courts", id, "toggle-status"), nil)
}

func (client *TestClient) AdvanceInvoiceStatus(id string) (*http.Response, error) {
	return client.sendRequest("PUT", client.endpoint("invoices", id, "status"), nil)
}
