package client

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FormAdapter", func() {
	adapter := FormAdapter{LocalizedFields: []string{"name"}}

	It("expands localized fields into one input per locale", func() {
		flat := adapter.Flatten(map[string]any{
			"name": map[string]any{"en": "Supreme Court", "ar": "المحكمة العليا"},
			"city": "Riyadh",
		})
		Expect(flat).To(Equal(map[string]string{
			"name.en": "Supreme Court",
			"name.ar": "المحكمة العليا",
			"city":    "Riyadh",
		}))
	})

	It("seeds every locale input from a plain-string localized value", func() {
		flat := adapter.Flatten(map[string]any{"name": "Supreme Court"})
		Expect(flat).To(Equal(map[string]string{
			"name.en": "Supreme Court",
			"name.ar": "Supreme Court",
		}))
	})

	It("leaves missing translations as empty inputs", func() {
		flat := adapter.Flatten(map[string]any{
			"name": map[string]any{"en": "Supreme Court"},
		})
		Expect(flat).To(HaveKeyWithValue("name.ar", ""))
	})

	It("reassembles the nested record from form values", func() {
		record := adapter.Reassemble(map[string]string{
			"name.en": "Supreme Court",
			"name.ar": "المحكمة العليا",
			"city":    "Riyadh",
		})
		Expect(record).To(Equal(map[string]any{
			"name": map[string]any{"en": "Supreme Court", "ar": "المحكمة العليا"},
			"city": "Riyadh",
		}))
	})

	It("drops a translation left empty", func() {
		record := adapter.Reassemble(map[string]string{
			"name.en": "Supreme Court",
			"name.ar": "",
		})
		Expect(record).To(Equal(map[string]any{
			"name": map[string]any{"en": "Supreme Court"},
		}))
	})

	It("omits a localized field when every input is empty", func() {
		record := adapter.Reassemble(map[string]string{
			"name.en": "",
			"name.ar": "",
			"city":    "Riyadh",
		})
		Expect(record).To(Equal(map[string]any{"city": "Riyadh"}))
	})

	It("round-trips a fully populated record", func() {
		original := map[string]any{
			"name": map[string]any{"en": "Supreme Court", "ar": "المحكمة العليا"},
			"city": "Riyadh",
		}
		Expect(adapter.Reassemble(adapter.Flatten(original))).To(Equal(original))
	})
})
