package model

import "github.com/shopspring/decimal"

// Missing-field tags, in the order they are checked.
const (
	TagPhoto            = "Photo"
	TagQRNumber         = "QR Number"
	TagLocation         = "Location"
	TagFinalAssetNumber = "Final Asset No."
)

// FinalAssetThreshold is the purchase amount above which an item needs a
// final asset number.
var FinalAssetThreshold = decimal.NewFromInt(200000)

// MissingFields returns the tags of the fields the item still needs filled in.
func (it Item) MissingFields() []string {
	var missing []string
	if it.PhotoBase64 == "" {
		missing = append(missing, TagPhoto)
	}
	if it.QRNumber == "" {
		missing = append(missing, TagQRNumber)
	}
	if it.StorageLocation == "" {
		missing = append(missing, TagLocation)
	}
	if it.PurchaseAmount.GreaterThan(FinalAssetThreshold) && it.FinalAssetNumber == "" {
		missing = append(missing, TagFinalAssetNumber)
	}
	return missing
}

// FlaggedItem is an item together with its missing-field tags.
type FlaggedItem struct {
	Item
	MissingFields []string `json:"missing_fields"`
}

// Stats summarises the collection for the dashboard.
type Stats struct {
	TotalItems             int           `json:"totalItems"`
	ItemsWithMissingFields []FlaggedItem `json:"itemsWithMissingFields"`
}

// ComputeStats counts the items and flags those with missing fields,
// preserving the order of items.
func ComputeStats(items []Item) Stats {
	stats := Stats{
		TotalItems:             len(items),
		ItemsWithMissingFields: []FlaggedItem{},
	}
	for _, it := range items {
		if missing := it.MissingFields(); len(missing) > 0 {
			stats.ItemsWithMissingFields = append(stats.ItemsWithMissingFields, FlaggedItem{
				Item:          it,
				MissingFields: missing,
			})
		}
	}
	return stats
}
