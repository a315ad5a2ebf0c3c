package catalog

import (
	"log/slog"
	"os"
)

// Catalog is the loaded equipment catalog plus the unavailable date ranges.
// Loading never fails hard: a resource that cannot be read is logged and
// observed by callers as an empty slice, with Loaded reporting false.
type Catalog struct {
	Equipment   []EquipmentItem
	Unavailable []UnavailableRange

	loaded bool
}

// Load reads and parses both CSV resources. Errors are logged, not returned;
// there is no retry.
func Load(equipmentFile, unavailableFile string) *Catalog {
	c := &Catalog{loaded: true}

	if data, err := os.ReadFile(equipmentFile); err != nil {
		slog.Error("Failed to load equipment catalog", "file", equipmentFile, "error", err)
		c.loaded = false
	} else {
		c.Equipment = ParseEquipment(string(data))
	}

	if data, err := os.ReadFile(unavailableFile); err != nil {
		slog.Error("Failed to load unavailable ranges", "file", unavailableFile, "error", err)
		c.loaded = false
	} else {
		c.Unavailable = ParseUnavailable(string(data))
	}

	slog.Info("Catalog loaded",
		"equipment_items", len(c.Equipment),
		"unavailable_ranges", len(c.Unavailable))

	return c
}

// Loaded reports whether both resources were read successfully.
func (c *Catalog) Loaded() bool {
	return c.loaded
}

// Item returns the equipment item with the given ID.
func (c *Catalog) Item(id int) (EquipmentItem, bool) {
	for _, item := range c.Equipment {
		if item.ID == id {
			return item, true
		}
	}
	return EquipmentItem{}, false
}
