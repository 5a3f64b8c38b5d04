package model

import "strings"

// SearchField selects which item fields a search term is matched against.
type SearchField string

// Search fields.
const (
	SearchAll                    SearchField = "all"
	SearchItemName               SearchField = "item_name"
	SearchQRNumber               SearchField = "qr_number"
	SearchProvisionalAssetNumber SearchField = "provisional_asset_number"
	SearchDocumentNumber         SearchField = "document_number"
)

// SearchFields lists the recognised search fields.
var SearchFields = []SearchField{
	SearchAll,
	SearchItemName,
	SearchQRNumber,
	SearchProvisionalAssetNumber,
	SearchDocumentNumber,
}

// Valid reports whether f is a recognised search field. The empty field is
// treated as SearchAll.
func (f SearchField) Valid() bool {
	if f == "" {
		return true
	}
	for _, known := range SearchFields {
		if f == known {
			return true
		}
	}
	return false
}

// Matches reports whether term occurs in the selected field(s) of the item,
// ignoring case. An empty term matches every item; an unrecognised field
// matches none.
func (it Item) Matches(term string, field SearchField) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), term)
	}

	switch field {
	case SearchAll, "":
		return contains(it.ItemName) ||
			contains(it.DocumentNumber) ||
			contains(it.ProvisionalAssetNumber) ||
			contains(it.QRNumber)
	case SearchItemName:
		return contains(it.ItemName)
	case SearchQRNumber:
		return contains(it.QRNumber)
	case SearchProvisionalAssetNumber:
		return contains(it.ProvisionalAssetNumber)
	case SearchDocumentNumber:
		return contains(it.DocumentNumber)
	default:
		return false
	}
}
