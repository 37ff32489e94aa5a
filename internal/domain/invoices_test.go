package domain

import (
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Invoice status chain", func() {
	It("advances draft through to billed", func() {
		status := InvoiceStatusDraft
		for _, expected := range []InvoiceStatus{InvoiceStatusSubmitted, InvoiceStatusApproved, InvoiceStatusBilled} {
			next, err := AdvanceInvoiceStatus(status)
			Expect(err).NotTo(HaveOccurred())
			Expect(next).To(Equal(expected))
			status = next
		}
	})

	It("refuses to advance a billed invoice", func() {
		_, err := AdvanceInvoiceStatus(InvoiceStatusBilled)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ValidateInvoice", func() {
	makeInvoice := func() Invoice {
		return Invoice{
			Number:     "INV-0001",
			MatterID:   uuid.New(),
			Currency:   "JOD",
			Subtotal:   10000,
			VATTotal:   1600,
			GrandTotal: 11600,
			Status:     InvoiceStatusDraft,
		}
	}

	It("accepts a consistent invoice", func() {
		Expect(ValidateInvoice(makeInvoice())).To(BeNil())
	})

	It("rejects totals that do not add up", func() {
		invoice := makeInvoice()
		invoice.GrandTotal = 99
		Expect(ValidateInvoice(invoice)).To(HaveKey("grand_total"))
	})

	It("collects every missing field", func() {
		errs := ValidateInvoice(Invoice{})
		Expect(errs).To(HaveKey("number"))
		Expect(errs).To(HaveKey("matter_id"))
		Expect(errs).To(HaveKey("currency"))
	})
})

var _ = Describe("FieldErrors", func() {
	It("joins every message with commas in field order", func() {
		errs := FieldErrors{}
		errs.Add("number", "number is required")
		errs.Add("currency", "currency is required")
		Expect(errs.Join()).To(Equal("currency is required, number is required"))
	})
})

var _ = Describe("Set", func() {
	It("orders and de-duplicates its elements", func() {
		Expect(NewSet("litigation", "corporate", "litigation")).
			To(Equal(NewSet("corporate", "litigation")))
	})

	It("reports membership", func() {
		Expect(NewSet("corporate").Contains("corporate")).To(BeTrue())
		Expect(NewSet("corporate").Contains("tax")).To(BeFalse())
	})
})
