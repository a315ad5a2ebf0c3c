// Package contract fills the rental contract PDF template, one document per
// selected rental date.
package contract

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spacehash/portal/internal/catalog"
)

// RenterInfo is the identity block written into every contract.
type RenterInfo struct {
	Name        string
	Business    string
	Address     string
	Phone       string
	ContactInfo string
}

// Amount renders a dollar amount the way the contract and email expect it:
// no trailing zeros, no thousands separators ("130", "62.5").
func Amount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FieldValues computes the flat field-name to value mapping for one rental
// date. The business name, when present, is the primary renter label. Every
// selected item gets an equipment row: the template carries five, surplus
// rows are silently skipped by the filler. Contract date and lease start are
// the date itself, lease end is the next day, and payment_amount is the
// per-day total, identical across all documents of a submission.
//
// Empty values are omitted so optional template fields keep their defaults.
func FieldValues(date time.Time, items []catalog.EquipmentItem, qty func(int) int, renter RenterInfo, ownerName string, perDayTotal float64) map[string]string {
	displayName := renter.Business
	if displayName == "" {
		displayName = renter.Name
	}

	fields := make(map[string]string)
	set := func(name, value string) {
		if value == "" {
			return
		}
		fields[name] = value
	}

	set("renter_name", displayName)
	set("renter_print_name", renter.Name)
	set("renter_address", renter.Address)
	set("renter_phone", renter.Phone)
	set("renter_contact_info", renter.ContactInfo)

	set("owner_print_name", ownerName)

	for i, item := range items {
		q := qty(item.ID)
		label := item.Name
		if q > 1 {
			label = fmt.Sprintf("(%d) %s", q, item.Name)
		}
		set(fmt.Sprintf("equipment_name_%d", i+1), label)
		set(fmt.Sprintf("equipment_value_%d", i+1), "$"+Amount(item.Value*float64(q)))
	}

	set("contract_month", date.Format("01"))
	set("contract_day", date.Format("02"))
	set("contract_year", date.Format("2006"))

	set("lease_start_month", date.Format("01"))
	set("lease_start_day", date.Format("02"))
	set("lease_start_year", date.Format("2006"))

	end := date.AddDate(0, 0, 1)
	set("lease_end_month", end.Format("01"))
	set("lease_end_day", end.Format("02"))
	set("lease_end_year", end.Format("2006"))

	set("payment_amount", Amount(perDayTotal))

	return fields
}
