package delivery

import (
	"time"

	"github.com/google/uuid"

	"github.com/spacehash/portal/internal/contract"
)

// SummaryLine is one selected equipment item as it appears in the email
// summary.
type SummaryLine struct {
	Name string
	Qty  int
	Cost float64
}

// ContractSet owns one batch of generated contracts for the lifetime of the
// preview/download/email sequence. It lives in the session cache and is
// deleted (releasing the document buffers) when closed or superseded by a
// new generation pass.
type ContractSet struct {
	ID        string
	State     string
	Current   int
	CreatedAt time.Time

	RenterName  string
	Dates       []time.Time
	Documents   []contract.Generated
	Lines       []SummaryLine
	PerDayTotal float64
	Comments    string
}

// NewContractSet wraps freshly generated documents into a set that starts in
// the previewing state. Document order is the generation order, which
// matches the selected date order.
func NewContractSet(renterName string, docs []contract.Generated, lines []SummaryLine, perDayTotal float64, comments string) *ContractSet {
	dates := make([]time.Time, len(docs))
	for i, doc := range docs {
		dates[i] = doc.Date
	}
	return &ContractSet{
		ID:          uuid.NewString(),
		State:       StatePreviewing,
		CreatedAt:   time.Now(),
		RenterName:  renterName,
		Dates:       dates,
		Documents:   docs,
		Lines:       lines,
		PerDayTotal: perDayTotal,
		Comments:    comments,
	}
}

// Advance moves the set to the given flow state, rejecting illegal
// transitions.
func (s *ContractSet) Advance(to string) error {
	return Transition(&s.State, to)
}

// Document returns the generated document at the given position.
func (s *ContractSet) Document(index int) (contract.Generated, bool) {
	if index < 0 || index >= len(s.Documents) {
		return contract.Generated{}, false
	}
	return s.Documents[index], true
}

// DownloadNameAt returns the download filename for the document at index,
// derived from the renter name and the document's rental date.
func (s *ContractSet) DownloadNameAt(index int) string {
	doc, ok := s.Document(index)
	if !ok {
		return ""
	}
	return DownloadName(s.RenterName, doc.Date)
}

// Total is the email-summary total: the per-day rate multiplied by the
// number of rental dates. The per-document payment amount intentionally
// stays the per-day rate; the two totals differ by design.
func (s *ContractSet) Total() float64 {
	return s.PerDayTotal * float64(len(s.Dates))
}
