package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/praxislegal/praxis/internal/domain"
)

type courtRow struct {
	ID   string `json:"id"`
	City string `json:"city"`
}

var courtSchema = domain.ListSchema{
	FilterNames: []string{"status", "city"},
	SortFields:  []string{"city", "created_at"},
}

// serveEnvelope answers every request with an envelope echoing the parsed
// query, holding one row whose city names the served page.
func serveEnvelope(total int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, _ := domain.ParseListQuery(r.URL.Query(), courtSchema)
		if last := query.LastPage(total); query.Page > last {
			query.Page = last
		}
		envelope := domain.Envelope[courtRow]{
			Data:    []courtRow{{ID: "1", City: "page " + strconv.Itoa(query.Page)}},
			From:    query.Offset() + 1,
			To:      query.Offset() + 1,
			Total:   total,
			Filters: query.Echo(),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(envelope)
	}
}

var _ = Describe("Fetcher", func() {
	var (
		state   *FilterState
		fetcher *Fetcher[courtRow]
	)

	newFetcher := func(serverURL string) *Fetcher[courtRow] {
		f, err := NewFetcher[courtRow](serverURL+"/courts", state, nil)
		Expect(err).NotTo(HaveOccurred())
		return f
	}

	BeforeEach(func() {
		state = NewFilterState(courtSchema)
	})

	It("decodes the envelope and reconciles the echoed state", func() {
		server := httptest.NewServer(serveEnvelope(45))
		defer server.Close()
		fetcher = newFetcher(server.URL)

		envelope, err := fetcher.Fetch(context.Background(), 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(envelope.Total).To(BeEquivalentTo(45))
		Expect(envelope.Data).To(HaveLen(1))
		Expect(state.Applied().Page).To(Equal(2))
	})

	It("adopts the server's clamped page number", func() {
		server := httptest.NewServer(serveEnvelope(45))
		defer server.Close()
		fetcher = newFetcher(server.URL)

		envelope, err := fetcher.Fetch(context.Background(), 99)
		Expect(err).NotTo(HaveOccurred())
		Expect(envelope.Filters.Page).To(Equal(3))
		Expect(state.Applied().Page).To(Equal(3))
	})

	It("sends only non-default parameters", func() {
		var captured atomic.Value
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured.Store(r.URL.Query())
			serveEnvelope(1)(w, r)
		}))
		defer server.Close()
		fetcher = newFetcher(server.URL)

		state.SetFilter("status", "active")
		state.Apply()
		_, err := fetcher.Fetch(context.Background(), 1)
		Expect(err).NotTo(HaveOccurred())

		query := captured.Load().(url.Values)
		Expect(query.Get("status")).To(Equal("active"))
		Expect(query.Has("city")).To(BeFalse())
		Expect(query.Has("per_page")).To(BeFalse())
		Expect(query.Get("page")).To(Equal("1"))
	})

	It("keeps the last good envelope across a failed fetch", func() {
		var failing atomic.Bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if failing.Load() {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			serveEnvelope(45)(w, r)
		}))
		defer server.Close()
		fetcher = newFetcher(server.URL)

		_, err := fetcher.Fetch(context.Background(), 1)
		Expect(err).NotTo(HaveOccurred())
		good := fetcher.Envelope()

		failing.Store(true)
		stale, err := fetcher.Fetch(context.Background(), 2)
		Expect(err).To(HaveOccurred())
		Expect(stale).To(BeIdenticalTo(good))
		Expect(fetcher.Envelope()).To(BeIdenticalTo(good))
		Expect(fetcher.Err()).To(HaveOccurred())
	})

	It("drops a response that a newer request has overtaken", func() {
		release := make(chan struct{})
		var requests atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requests.Add(1) == 1 {
				<-release
			}
			serveEnvelope(45)(w, r)
		}))
		defer server.Close()
		fetcher = newFetcher(server.URL)

		firstDone := make(chan error, 1)
		go func() {
			_, err := fetcher.Fetch(context.Background(), 1)
			firstDone <- err
		}()
		Eventually(requests.Load).Should(BeEquivalentTo(1))

		envelope, err := fetcher.Fetch(context.Background(), 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(envelope.Filters.Page).To(Equal(2))

		close(release)
		Expect(<-firstDone).To(MatchError(ErrStale))
		Expect(fetcher.Envelope().Filters.Page).To(Equal(2))
		Expect(state.Applied().Page).To(Equal(2))
	})
})
