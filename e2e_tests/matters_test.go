package e2e_tests

import (
	"net/http"
	"net/url"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/praxislegal/praxis/e2e_tests/matchers"
	"github.com/praxislegal/praxis/internal/domain"
)

var _ = Describe("/matters", func() {
	It("de-duplicates and orders practice areas", func() {
		res, err := apiClient.Create("matters", map[string]any{
			"reference":      "M-2026-100",
			"title":          map[string]string{"ar": "نزاع عمالي"},
			"client_name":    "Saudi Cement Co",
			"practice_areas": []string{"labor", "commercial", "labor"},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(HaveHTTPStatus(http.StatusCreated))
		id := readJSONBody[domain.FlashSuccess](res, nil).ID

		matter := readJSONBody[domain.Matter](apiClient.Fetch("matters", id))
		Expect(matter.PracticeAreas.Values()).To(Equal([]string{"commercial", "labor"}))
		Expect(matter.Status).To(Equal(domain.MatterStatusOpen))
	})

	It("rejects a duplicate reference as a field error", func() {
		createMatter("M-2026-101")

		res, err := apiClient.Create("matters", map[string]any{
			"reference":   "M-2026-101",
			"title":       map[string]string{"en": "Another dispute"},
			"client_name": "Other Client",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(HaveHTTPStatus(http.StatusUnprocessableEntity))
		Expect(res).To(HaveHTTPBody(matchers.MatchJSONObject(
			`{"errors": {"reference": ["a matter with this reference already exists"]}}`,
		)))
	})

	It("filters by practice area", func() {
		createMatter("M-2026-102")
		res, err := apiClient.Create("matters", map[string]any{
			"reference":      "M-2026-103",
			"title":          map[string]string{"en": "Tax appeal"},
			"client_name":    "Retail Group",
			"practice_areas": []string{"tax"},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(HaveHTTPStatus(http.StatusCreated))

		envelope := readJSONBody[domain.Envelope[domain.Matter]](
			apiClient.List("matters", url.Values{"practice_area": []string{"tax"}}))
		Expect(envelope.Total).To(BeEquivalentTo(1))
		Expect(envelope.Data[0].Reference).To(Equal("M-2026-103"))
	})
})

var _ = Describe("/hearings", func() {
	var matterID, courtID string

	BeforeEach(func() {
		matterID = createMatter("M-2026-200")
		courtID = createCourt(map[string]string{"en": "Criminal Court"}, "Riyadh", "")
	})

	It("schedules a hearing against a matter and court", func() {
		res, err := apiClient.Create("hearings", map[string]any{
			"matter_id":    matterID,
			"court_id":     courtID,
			"scheduled_at": time.Now().Add(72 * time.Hour).Format(time.RFC3339),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(HaveHTTPStatus(http.StatusCreated))
		flash := readJSONBody[domain.FlashSuccess](res, nil)
		Expect(flash.Success).To(Equal("Hearing scheduled successfully"))
		id := flash.ID

		hearing := readJSONBody[domain.Hearing](apiClient.Fetch("hearings", id))
		Expect(hearing.Status).To(Equal(domain.HearingStatusScheduled))
		Expect(hearing.MatterID.String()).To(Equal(matterID))
		Expect(hearing.CourtID.String()).To(Equal(courtID))
	})

	It("filters hearings by court", func() {
		otherCourt := createCourt(map[string]string{"en": "Family Court"}, "Jeddah", "")
		for _, court := range []string{courtID, otherCourt} {
			res, err := apiClient.Create("hearings", map[string]any{
				"matter_id":    matterID,
				"court_id":     court,
				"scheduled_at": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(HaveHTTPStatus(http.StatusCreated))
		}

		envelope := readJSONBody[domain.Envelope[domain.Hearing]](
			apiClient.List("hearings", url.Values{"court_id": []string{courtID}}))
		Expect(envelope.Total).To(BeEquivalentTo(1))
		Expect(envelope.Data[0].CourtID.String()).To(Equal(courtID))
	})
})
