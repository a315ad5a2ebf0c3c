// Package catalog holds the rental equipment catalog and the unavailable date
// ranges, both sourced from static CSV resources.
package catalog

import (
	"strconv"
	"strings"
	"time"
)

// EquipmentItem is one row of the equipment catalog. IDs are 1-based row
// order, assigned at parse time. Items are immutable after load.
type EquipmentItem struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	MaxQty      int     `json:"max_qty"`
	Cost        float64 `json:"cost"`
	Value       float64 `json:"value"`
}

// UnavailableRange is an inclusive date interval during which equipment
// cannot be booked.
type UnavailableRange struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

const dateLayout = "2006-01-02"

// ParseEquipment parses the equipment CSV. The first line is a header and is
// discarded. Lines are split positionally on commas, no quoting support.
// A maxQty that does not parse defaults to 1; cost and value default to 0.
func ParseEquipment(text string) []EquipmentItem {
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil
	}

	items := make([]EquipmentItem, 0, len(lines)-1)
	for i, line := range lines[1:] {
		values := strings.Split(line, ",")
		items = append(items, EquipmentItem{
			ID:          i + 1,
			Name:        column(values, 0),
			Description: column(values, 1),
			MaxQty:      parseIntDefault(column(values, 2), 1),
			Cost:        parseFloatDefault(column(values, 3), 0),
			Value:       parseFloatDefault(column(values, 4), 0),
		})
	}
	return items
}

// ParseUnavailable parses the unavailable-ranges CSV (startDate,endDate after
// a header line). Rows whose dates do not parse are dropped.
func ParseUnavailable(text string) []UnavailableRange {
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil
	}

	ranges := make([]UnavailableRange, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := strings.Split(line, ",")
		start, err1 := time.Parse(dateLayout, strings.TrimSpace(column(values, 0)))
		end, err2 := time.Parse(dateLayout, strings.TrimSpace(column(values, 1)))
		if err1 != nil || err2 != nil {
			continue
		}
		ranges = append(ranges, UnavailableRange{Start: start, End: end})
	}
	return ranges
}

func splitLines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

func column(values []string, i int) string {
	if i >= len(values) {
		return ""
	}
	return values[i]
}

func parseIntDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func parseFloatDefault(s string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return f
}
