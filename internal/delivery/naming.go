package delivery

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// SanitizeName collapses every run of non-alphanumeric characters into a
// single hyphen and trims hyphens at the edges, so the name segment of a
// download filename contains only [a-zA-Z0-9-].
func SanitizeName(name string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(name, "-"), "-")
}

// DownloadName is the filename a contract is saved under:
// contract-<sanitized-renter-name>-<YYYY-MM-DD>.pdf. Names are unique per
// date within one submission.
func DownloadName(renterName string, date time.Time) string {
	return fmt.Sprintf("contract-%s-%s.pdf", SanitizeName(renterName), date.Format("2006-01-02"))
}
