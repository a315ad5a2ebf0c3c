package delivery

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spacehash/portal/internal/contract"
)

const emailSubject = "RENTAL REQUEST"

// EmailSummary is everything the pre-filled request email needs. The
// contract attachments stay manual: mailto links cannot carry files.
type EmailSummary struct {
	To          string
	Name        string
	Dates       []time.Time
	Lines       []SummaryLine
	PerDayTotal float64
	Comments    string
}

// EmailSummaryFor builds the email summary for a contract set.
func EmailSummaryFor(set *ContractSet, to string) EmailSummary {
	return EmailSummary{
		To:          to,
		Name:        set.RenterName,
		Dates:       set.Dates,
		Lines:       set.Lines,
		PerDayTotal: set.PerDayTotal,
		Comments:    set.Comments,
	}
}

// ComposeMailto renders the mailto: URI with percent-encoded subject and
// body. The body lists the renter name, the selected dates, the itemized
// equipment with per-day cost, and the multi-day total (per-day rate times
// number of dates).
func ComposeMailto(s EmailSummary) string {
	items := make([]string, 0, len(s.Lines))
	for _, line := range s.Lines {
		items = append(items, fmt.Sprintf("%s x%d @ $%s/day", line.Name, line.Qty, contract.Amount(line.Cost)))
	}

	days := make([]string, 0, len(s.Dates))
	for _, d := range s.Dates {
		days = append(days, d.Format("2006-01-02"))
	}

	total := s.PerDayTotal * float64(len(s.Dates))
	unit := "day"
	if len(s.Dates) > 1 {
		unit = "days"
	}

	body := fmt.Sprintf("Name: %s\nDate(s): %s\n\nEquipment:\n%s\n\nTotal: $%s (%d %s)",
		s.Name,
		strings.Join(days, ", "),
		strings.Join(items, "\n"),
		contract.Amount(total),
		len(s.Dates),
		unit,
	)
	if s.Comments != "" {
		body += "\n\nComments:\n" + s.Comments
	}

	return "mailto:" + s.To + "?subject=" + percentEncode(emailSubject) + "&body=" + percentEncode(body)
}

// percentEncode encodes like the browser's encodeURIComponent: query
// escaping, but spaces as %20 rather than '+'.
func percentEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
