package contract

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacehash/portal/internal/catalog"
	"github.com/spacehash/portal/internal/errl"
)

// Generated is one filled contract: the rental date it was produced for and
// the serialized document bytes. Generated documents live in the session
// cache until released, never in durable storage.
type Generated struct {
	Date time.Time
	Data []byte
}

// Request describes one generation pass: one document per date, in date
// order, all sharing the same renter and equipment selection.
type Request struct {
	Dates       []time.Time
	Items       []catalog.EquipmentItem
	Quantity    func(itemID int) int
	Renter      RenterInfo
	PerDayTotal float64
}

// formEngine is the PDF manipulation boundary: list the template's text
// field names and produce a filled copy. The template bytes are never
// mutated, each Fill works on an independent document instance.
type formEngine interface {
	FieldNames(template []byte) ([]string, error)
	Fill(template []byte, values map[string]string) ([]byte, error)
}

// Filler produces filled contracts from a fixed PDF template.
type Filler struct {
	template []byte
	owner    string
	engine   formEngine
}

// NewFiller creates a Filler over the given template bytes. ownerName is
// written into the owner signature field of every contract.
func NewFiller(template []byte, ownerName string) *Filler {
	return &Filler{template: template, owner: ownerName, engine: pdfEngine{}}
}

func newFillerWithEngine(template []byte, ownerName string, engine formEngine) *Filler {
	return &Filler{template: template, owner: ownerName, engine: engine}
}

// Fill produces one document per requested date, in the same order as
// req.Dates. Field writes are best-effort: names absent from the template
// are skipped without error. Any failure inside the per-date loop fails the
// whole batch; no partial document set is returned.
func (f *Filler) Fill(ctx context.Context, req Request) ([]Generated, error) {
	if len(f.template) == 0 {
		return nil, errl.Errorf("contract template not loaded")
	}

	// The template evolves independently of the field list, so fields that
	// no longer exist must not fail the fill. Learn the template's fields
	// once and write only the intersection.
	known, err := f.engine.FieldNames(f.template)
	if err != nil {
		slog.Warn("Listing contract template fields failed, writing all fields", "error", err)
		known = nil
	}

	generated := make([]Generated, 0, len(req.Dates))
	for _, date := range req.Dates {
		select {
		case <-ctx.Done():
			return nil, errl.Error(ctx.Err())
		default:
		}

		values := FieldValues(date, req.Items, req.Quantity, req.Renter, f.owner, req.PerDayTotal)
		if known != nil {
			values = intersect(values, known)
		}

		data, err := f.engine.Fill(f.template, values)
		if err != nil {
			return nil, errl.Errorf("filling contract for %s: %w", date.Format("2006-01-02"), err)
		}
		generated = append(generated, Generated{Date: date, Data: data})
	}

	return generated, nil
}

func intersect(values map[string]string, names []string) map[string]string {
	known := make(map[string]bool, len(names))
	for _, name := range names {
		known[name] = true
	}
	out := make(map[string]string, len(values))
	for name, value := range values {
		if known[name] {
			out[name] = value
		}
	}
	return out
}
