// Package finance turns raw marketplace receipts into finance sheets.
package finance

import (
	"fmt"
	"strings"

	"github.com/sangkips/shopdash-api/internal/domain/entity"
)

// Deriver computes finance sheets under a fixed fee policy. It holds no
// state between calls and never fails: missing amounts count as zero.
type Deriver struct {
	policy FeePolicy
}

// NewDeriver creates a new deriver
func NewDeriver(policy FeePolicy) *Deriver {
	if policy.Location == nil {
		policy.Location = DefaultFeePolicy().Location
	}
	return &Deriver{policy: policy}
}

// Policy returns the fee policy in use
func (d *Deriver) Policy() FeePolicy {
	return d.policy
}

// Derive maps every receipt to a finance sheet, preserving length and order.
func (d *Deriver) Derive(receipts []entity.ShopReceipt) []entity.FinanceSheet {
	sheets := make([]entity.FinanceSheet, len(receipts))
	for i := range receipts {
		sheets[i] = d.DeriveOne(receipts[i], i)
	}
	return sheets
}

// DeriveOne computes the finance sheet of a single receipt. index is the
// receipt's 0-based position in its batch and only selects the avatar.
func (d *Deriver) DeriveOne(r entity.ShopReceipt, index int) entity.FinanceSheet {
	p := d.policy
	first, middle, last := splitName(r.Name)
	quantity := r.TotalQuantity()
	orderTime := r.CreatedAt().In(p.Location)

	sheet := entity.FinanceSheet{
		FirstName:  first,
		MiddleName: middle,
		LastName:   last,
		OrderDate:  orderTime.Format(p.DateLayout),
		OrderTime:  orderTime,

		ItemPrice:         d.scale(r.TotalPrice),
		Discount:          d.scale(r.DiscountAmt),
		SubTotal:          d.scale(r.Subtotal),
		TotalShippingCost: d.scale(r.TotalShippingCost),
		Tax:               d.scale(r.TotalTaxCost),
		Total:             d.scale(r.Grandtotal),

		TotalQuantity: quantity,
		AvatarURL:     fmt.Sprintf(p.AvatarPathFormat, index+1),
		ShopReceipt:   &r,
	}

	if r.Subtotal.Present() {
		sheet.TransactionFees = float64(r.Subtotal.Raw()) * p.TransactionFeeRate
		sheet.TFVAT = sheet.TransactionFees * p.TransactionVATRate
	}
	if r.Grandtotal.Present() {
		raw := float64(r.Grandtotal.Raw())
		sheet.ProcessingFees = raw*p.ProcessingFeeRate + p.ProcessingFeeFixed
		sheet.PFVAT = raw*p.ProcessingVATRate + p.ProcessingVATFixed
	}
	if quantity != 0 {
		sheet.ListingFee = float64(quantity) * p.ListingFeePerUnit
		sheet.LFVAT = float64(quantity) * p.ListingVATPerUnit
	}
	if r.TotalShippingCost.Present() {
		sheet.ShippingFee = float64(r.TotalShippingCost.Raw()) * p.ShippingFeeRate
		sheet.SFVAT = sheet.ShippingFee * p.ShippingVATRate
	}

	sheet.NetProfit = NetProfit(&sheet)
	return sheet
}

// NetProfit is subtotal plus shipping minus every fee and its VAT
func NetProfit(s *entity.FinanceSheet) float64 {
	return s.SubTotal + s.TotalShippingCost -
		s.TransactionFees - s.TFVAT -
		s.ProcessingFees - s.PFVAT -
		s.ListingFee - s.LFVAT -
		s.ShippingFee - s.SFVAT
}

func (d *Deriver) scale(m *entity.Money) float64 {
	if !m.Present() {
		return 0
	}
	if d.policy.UseAmountDivisor {
		return m.Decimal().InexactFloat64()
	}
	return m.ScaledBy(d.policy.MinorUnitScale).InexactFloat64()
}

// splitName splits a display name into first, middle and last names.
// With three or more tokens the second is the middle name and the third the
// last name; otherwise the second token (if any) is the last name.
func splitName(name string) (first, middle, last string) {
	parts := strings.Fields(name)
	switch {
	case len(parts) == 0:
		return "", "", ""
	case len(parts) > 2:
		return parts[0], parts[1], parts[2]
	case len(parts) == 2:
		return parts[0], "", parts[1]
	default:
		return parts[0], "", ""
	}
}
