package model

import "testing"

func TestMatches(t *testing.T) {
	it := Item{
		ID:             "a",
		DocumentNumber: "2024-03-05-1709596800000",
		ItemFields: ItemFields{
			ItemName:               "abcdef",
			ProvisionalAssetNumber: "PA-77",
			QRNumber:               "QR-0042",
			Remarks:                "hidden-in-remarks",
		},
	}

	tests := []struct {
		term     string
		field    SearchField
		expected bool
	}{
		{"", SearchAll, true},
		{"", "bogus", true},
		{"ABC", SearchItemName, true},
		{"abc", SearchAll, true},
		{"2024-03", SearchAll, true},
		{"pa-7", SearchAll, true},
		{"qr-00", SearchAll, true},
		{"qr-00", "", true},
		{"hidden", SearchAll, false},
		{"qr", SearchItemName, false},
		{"QR-0042", SearchQRNumber, true},
		{"77", SearchProvisionalAssetNumber, true},
		{"1709596800000", SearchDocumentNumber, true},
		{"abc", SearchDocumentNumber, false},
		{"abc", "remarks", false},
	}

	for _, tt := range tests {
		got := it.Matches(tt.term, tt.field)
		if got != tt.expected {
			t.Errorf("Matches(%q, %q) = %v, want %v", tt.term, tt.field, got, tt.expected)
		}
	}
}

func TestMatchesAbsentFieldIsEmpty(t *testing.T) {
	it := Item{ItemFields: ItemFields{ItemName: "Desk"}}

	if it.Matches("x", SearchQRNumber) {
		t.Error("absent qr_number should not match a non-empty term")
	}
	if it.Matches("x", SearchProvisionalAssetNumber) {
		t.Error("absent provisional_asset_number should not match a non-empty term")
	}
}

func TestSearchFieldValid(t *testing.T) {
	for _, f := range append(SearchFields, "") {
		if !f.Valid() {
			t.Errorf("%q should be valid", f)
		}
	}
	for _, f := range []SearchField{"remarks", "ALL", "id"} {
		if f.Valid() {
			t.Errorf("%q should not be valid", f)
		}
	}
}
