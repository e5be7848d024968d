package enum

import (
	"encoding/json"
	"strings"
)

// ReceiptStatus is a lower-cased marketplace receipt status.
// The receipts API returns free text ("Completed", "Fully Refunded", ...);
// anything it sends is accepted, the constants below are the known values.
type ReceiptStatus string

const (
	ReceiptStatusAll               ReceiptStatus = "all"
	ReceiptStatusCompleted         ReceiptStatus = "completed"
	ReceiptStatusPaid              ReceiptStatus = "paid"
	ReceiptStatusOpen              ReceiptStatus = "open"
	ReceiptStatusCanceled          ReceiptStatus = "canceled"
	ReceiptStatusFullyRefunded     ReceiptStatus = "fully refunded"
	ReceiptStatusPartiallyRefunded ReceiptStatus = "partially refunded"
)

// KnownReceiptStatuses lists the statuses shown as dashboard tabs, "all" first
var KnownReceiptStatuses = []ReceiptStatus{
	ReceiptStatusAll,
	ReceiptStatusCompleted,
	ReceiptStatusPaid,
	ReceiptStatusOpen,
	ReceiptStatusCanceled,
	ReceiptStatusFullyRefunded,
	ReceiptStatusPartiallyRefunded,
}

// ParseReceiptStatus lower-cases a status for comparison. Whitespace is
// kept, so " Completed " does not match completed.
func ParseReceiptStatus(s string) ReceiptStatus {
	return ReceiptStatus(strings.ToLower(s))
}

func (s ReceiptStatus) String() string {
	return string(s)
}

// IsAll reports whether s is the "match every status" selector
func (s ReceiptStatus) IsAll() bool {
	return s == ReceiptStatusAll
}

// Label returns the title-cased tab label of the status
func (s ReceiptStatus) Label() string {
	words := strings.Fields(string(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func (s ReceiptStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *ReceiptStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = ParseReceiptStatus(str)
	return nil
}
