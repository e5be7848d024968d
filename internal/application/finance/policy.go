package finance

import (
	"time"

	"github.com/sangkips/shopdash-api/internal/config"
)

// FeePolicy holds the marketplace fee rates. Rates marked raw apply to the
// minor-unit amount of the receipt, not to the scaled currency value.
type FeePolicy struct {
	TransactionFeeRate float64 // raw subtotal
	TransactionVATRate float64 // of the transaction fee
	ProcessingFeeRate  float64 // raw grand total
	ProcessingFeeFixed float64
	ProcessingVATRate  float64 // raw grand total
	ProcessingVATFixed float64
	ListingFeePerUnit  float64
	ListingVATPerUnit  float64
	ShippingFeeRate    float64 // raw shipping cost
	ShippingVATRate    float64 // of the shipping fee

	// MinorUnitScale divides raw amounts into currency units unless
	// UseAmountDivisor is set, in which case each amount's own divisor is used.
	MinorUnitScale   int64
	UseAmountDivisor bool

	DateLayout       string
	Location         *time.Location
	AvatarPathFormat string
}

// DefaultFeePolicy returns the current marketplace rates
func DefaultFeePolicy() FeePolicy {
	return FeePolicy{
		TransactionFeeRate: 0.00065,
		TransactionVATRate: 0.2,
		ProcessingFeeRate:  0.0004,
		ProcessingFeeFixed: 0.3,
		ProcessingVATRate:  0.00008,
		ProcessingVATFixed: 0.06,
		ListingFeePerUnit:  0.18,
		ListingVATPerUnit:  0.04,
		ShippingFeeRate:    0.00065,
		ShippingVATRate:    0.2,
		MinorUnitScale:     100,
		DateLayout:         "1/2/2006",
		Location:           time.UTC,
		AvatarPathFormat:   "/assets/images/avatars/avatar_%d.jpg",
	}
}

// NewFeePolicy builds a policy from configuration. An empty timezone means UTC.
func NewFeePolicy(cfg config.FinanceConfig) (FeePolicy, error) {
	loc := time.UTC
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return FeePolicy{}, err
		}
		loc = l
	}

	p := FeePolicy{
		TransactionFeeRate: cfg.TransactionFeeRate,
		TransactionVATRate: cfg.TransactionVATRate,
		ProcessingFeeRate:  cfg.ProcessingFeeRate,
		ProcessingFeeFixed: cfg.ProcessingFeeFixed,
		ProcessingVATRate:  cfg.ProcessingVATRate,
		ProcessingVATFixed: cfg.ProcessingVATFixed,
		ListingFeePerUnit:  cfg.ListingFeePerUnit,
		ListingVATPerUnit:  cfg.ListingVATPerUnit,
		ShippingFeeRate:    cfg.ShippingFeeRate,
		ShippingVATRate:    cfg.ShippingVATRate,
		MinorUnitScale:     cfg.MinorUnitScale,
		UseAmountDivisor:   cfg.UseAmountDivisor,
		DateLayout:         cfg.DateLayout,
		Location:           loc,
		AvatarPathFormat:   cfg.AvatarPathFormat,
	}
	defaults := DefaultFeePolicy()
	if p.DateLayout == "" {
		p.DateLayout = defaults.DateLayout
	}
	if p.AvatarPathFormat == "" {
		p.AvatarPathFormat = defaults.AvatarPathFormat
	}
	return p, nil
}
