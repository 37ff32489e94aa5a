package client

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Table", func() {
	table := Table{
		Locale: "ar",
		Columns: []Column{
			{Key: "name", Title: "Name"},
			{Key: "matter.reference", Title: "Reference"},
			{Key: "city", Title: "City", Sortable: true},
		},
	}

	It("lists headers in column order", func() {
		Expect(table.Headers()).To(Equal([]string{"Name", "Reference", "City"}))
	})

	It("follows dotted paths into nested rows", func() {
		row := map[string]any{
			"name": "Labor Court",
			"matter": map[string]any{
				"reference": "M-2024-001",
			},
			"city": "Dammam",
		}
		Expect(table.Row(row)).To(Equal([]string{"Labor Court", "M-2024-001", "Dammam"}))
	})

	It("renders a placeholder for missing, nil, and empty values", func() {
		Expect(table.Row(map[string]any{
			"name":   "",
			"matter": nil,
			"city":   map[string]any{},
		})).To(Equal([]string{"-", "-", "-"}))
	})

	It("renders a placeholder when an intermediate segment is not an object", func() {
		row := map[string]any{"matter": "not-an-object"}
		Expect(table.Cell(row, table.Columns[1])).To(Equal("-"))
	})

	Describe("localized values", func() {
		column := Column{Key: "name", Title: "Name"}

		It("prefers the table's locale", func() {
			row := map[string]any{"name": map[string]any{"en": "Supreme Court", "ar": "المحكمة العليا"}}
			Expect(table.Cell(row, column)).To(Equal("المحكمة العليا"))
		})

		It("falls back to English, then Arabic", func() {
			english := Table{Locale: "en", Columns: table.Columns}
			Expect(english.Cell(map[string]any{"name": map[string]any{"ar": "المحكمة"}}, column)).To(Equal("المحكمة"))

			arabic := Table{Locale: "ar", Columns: table.Columns}
			Expect(arabic.Cell(map[string]any{"name": map[string]any{"en": "Court"}}, column)).To(Equal("Court"))
		})

		It("renders a placeholder when every translation is empty", func() {
			row := map[string]any{"name": map[string]any{"en": "", "ar": ""}}
			Expect(table.Cell(row, column)).To(Equal("-"))
		})
	})

	It("prefers a column's render func", func() {
		custom := Column{
			Key:   "grand_total",
			Title: "Total",
			Render: func(row map[string]any) string {
				return Formatter{}.Money(int64(row["grand_total"].(float64)), "SAR")
			},
		}
		row := map[string]any{"grand_total": float64(1234550)}
		Expect(table.Cell(row, custom)).To(Equal("12,345.50 SAR"))
	})

	It("stringifies numbers without a float suffix", func() {
		column := Column{Key: "total", Title: "Total"}
		Expect(table.Cell(map[string]any{"total": float64(42)}, column)).To(Equal("42"))
	})
})
