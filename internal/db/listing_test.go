package db

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/praxislegal/praxis/internal/domain"
)

var _ = Describe("listSpec clauses", func() {
	spec := listSpec{
		table:         "courts",
		selectColumns: "id, city",
		searchColumns: []string{"city"},
		filterColumns: map[string]string{
			"status": "status = ?",
			"city":   "city = ?",
		},
		sortColumns: map[string]string{"city": "city"},
		defaultSort: "created_at DESC, id",
	}

	query := func(search string, filters map[string]string) domain.ListQuery {
		return domain.ListQuery{
			Search:  search,
			Filters: filters,
			PerPage: domain.DefaultPerPage,
			Page:    1,
		}
	}

	It("binds search terms with LIKE metacharacters escaped", func() {
		clauses := spec.clauses(query(`100%_done\`, nil))
		Expect(clauses.args).To(Equal([]any{`100\%\_done\\`}))
		Expect(clauses.where).To(ContainSubstring(`ESCAPE '\'`))
	})

	It("passes plain search terms through unchanged", func() {
		clauses := spec.clauses(query("Jeddah", nil))
		Expect(clauses.args).To(Equal([]any{"Jeddah"}))
	})

	It("applies filters in name order with bound parameters", func() {
		clauses := spec.clauses(query("", map[string]string{
			"status": "active",
			"city":   "Riyadh",
		}))
		Expect(clauses.where).To(Equal(" WHERE city = $1 AND status = $2"))
		Expect(clauses.args).To(Equal([]any{"Riyadh", "active"}))
	})

	It("skips filters at the all sentinel", func() {
		clauses := spec.clauses(query("", map[string]string{
			"status": domain.FilterAll,
			"city":   "Riyadh",
		}))
		Expect(clauses.where).To(Equal(" WHERE city = $1"))
	})

	It("ignores filter and sort names outside the spec", func() {
		lq := query("", map[string]string{"password": "x"})
		lq.SortField = "password"
		clauses := spec.clauses(lq)
		Expect(clauses.where).To(BeEmpty())
		Expect(clauses.orderBy).To(Equal(" ORDER BY created_at DESC, id"))
	})

	It("orders by the whitelisted column with an id tiebreak", func() {
		lq := query("", nil)
		lq.SortField = "city"
		lq.SortDirection = domain.SortDescending
		Expect(spec.clauses(lq).orderBy).To(Equal(" ORDER BY city DESC, id"))
	})
})
