package domain

import (
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var courtSchema = ListSchema{
	FilterNames: []string{"status", "city"},
	SortFields:  []string{"city", "created_at"},
}

var _ = Describe("ParseListQuery", func() {
	It("applies defaults for an empty query", func() {
		lq, errs := ParseListQuery(url.Values{}, courtSchema)
		Expect(errs).To(BeNil())
		Expect(lq.Page).To(Equal(1))
		Expect(lq.PerPage).To(Equal(DefaultPerPage))
		Expect(lq.Search).To(BeEmpty())
		Expect(lq.SortField).To(BeEmpty())
		Expect(lq.Filters).To(Equal(map[string]string{"status": FilterAll, "city": FilterAll}))
	})

	It("treats an explicit all as no constraint", func() {
		lq, errs := ParseListQuery(url.Values{"status": {"all"}}, courtSchema)
		Expect(errs).To(BeNil())
		Expect(lq.Filters["status"]).To(Equal(FilterAll))
	})

	It("keeps non-default filter values", func() {
		lq, errs := ParseListQuery(url.Values{"status": {"active"}}, courtSchema)
		Expect(errs).To(BeNil())
		Expect(lq.Filters["status"]).To(Equal("active"))
	})

	It("clamps per_page to the maximum", func() {
		lq, errs := ParseListQuery(url.Values{"per_page": {"5000"}}, courtSchema)
		Expect(errs).To(BeNil())
		Expect(lq.PerPage).To(Equal(MaxPerPage))
	})

	It("rejects a non-positive page", func() {
		_, errs := ParseListQuery(url.Values{"page": {"0"}}, courtSchema)
		Expect(errs).To(HaveKey("page"))
	})

	It("rejects sort fields outside the schema", func() {
		_, errs := ParseListQuery(url.Values{"sort_field": {"password"}}, courtSchema)
		Expect(errs).To(HaveKey("sort_field"))
	})

	It("defaults sort_direction to ascending when only sort_field is given", func() {
		lq, errs := ParseListQuery(url.Values{"sort_field": {"city"}}, courtSchema)
		Expect(errs).To(BeNil())
		Expect(lq.SortDirection).To(Equal(SortAscending))
	})

	It("rejects sort_direction without sort_field", func() {
		_, errs := ParseListQuery(url.Values{"sort_direction": {"desc"}}, courtSchema)
		Expect(errs).To(HaveKey("sort_direction"))
	})
})

var _ = Describe("ListQuery.Encode", func() {
	It("omits every filter at its default", func() {
		lq := ListQuery{
			Filters: map[string]string{"status": FilterAll, "city": ""},
			PerPage: DefaultPerPage,
			Page:    1,
		}
		values := lq.Encode()
		Expect(values).NotTo(HaveKey("status"))
		Expect(values).NotTo(HaveKey("city"))
		Expect(values).NotTo(HaveKey("search"))
		Expect(values).NotTo(HaveKey("per_page"))
		Expect(values.Get("page")).To(Equal("1"))
	})

	It("includes every non-default value exactly", func() {
		lq := ListQuery{
			Search:        "ABC123",
			Filters:       map[string]string{"status": "active"},
			SortField:     "city",
			SortDirection: SortDescending,
			PerPage:       50,
			Page:          3,
		}
		values := lq.Encode()
		Expect(values.Get("search")).To(Equal("ABC123"))
		Expect(values.Get("status")).To(Equal("active"))
		Expect(values.Get("sort_field")).To(Equal("city"))
		Expect(values.Get("sort_direction")).To(Equal("desc"))
		Expect(values.Get("per_page")).To(Equal("50"))
		Expect(values.Get("page")).To(Equal("3"))
	})

	It("is deterministic regardless of filter map iteration order", func() {
		lq := ListQuery{
			Filters: map[string]string{"status": "active", "city": "amman"},
			Page:    1,
		}
		first := lq.Encode().Encode()
		for i := 0; i < 10; i++ {
			Expect(lq.Encode().Encode()).To(Equal(first))
		}
	})

	It("round-trips through ParseListQuery", func() {
		lq, errs := ParseListQuery(url.Values{
			"search":     {"estate"},
			"status":     {"inactive"},
			"sort_field": {"city"},
			"per_page":   {"25"},
			"page":       {"2"},
		}, courtSchema)
		Expect(errs).To(BeNil())
		reparsed, errs := ParseListQuery(lq.Encode(), courtSchema)
		Expect(errs).To(BeNil())
		Expect(reparsed).To(Equal(lq))
	})
})

var _ = Describe("ListQuery paging math", func() {
	It("computes the offset from the 1-based page", func() {
		Expect(ListQuery{PerPage: 15, Page: 3}.Offset()).To(Equal(30))
		Expect(ListQuery{}.Offset()).To(Equal(0))
	})

	It("reports the last non-empty page", func() {
		Expect(ListQuery{PerPage: 10}.LastPage(35)).To(Equal(4))
		Expect(ListQuery{PerPage: 10}.LastPage(40)).To(Equal(4))
		Expect(ListQuery{PerPage: 10}.LastPage(0)).To(Equal(1))
	})
})
