package model

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ItemFields are the caller-editable fields of an item.
// Optional string fields are considered absent when empty.
type ItemFields struct {
	ItemName               string `json:"item_name"`
	PurchaserName          string `json:"purchaser_name"`
	PurchaseDate           string `json:"purchase_date"`
	PurchaseAmount         Amount `json:"purchase_amount"`
	StorageLocation        string `json:"storage_location,omitempty"`
	ProvisionalAssetNumber string `json:"provisional_asset_number,omitempty"`
	QRNumber               string `json:"qr_number,omitempty"`
	Remarks                string `json:"remarks,omitempty"`
	PhotoBase64            string `json:"photo_base64,omitempty"`
	FinalAssetNumber       string `json:"final_asset_number,omitempty"`
}

// Item is a single purchased asset. ID, DocumentNumber and CreatedAt are
// assigned once at creation and never change afterwards.
type Item struct {
	ID             string `json:"id"`
	DocumentNumber string `json:"document_number"`
	ItemFields
	CreatedAt int64 `json:"created_at"`
}

// ItemPatch is a partial update. A nil field is left untouched; a non-nil
// field replaces the stored value, so a pointer to "" clears it.
type ItemPatch struct {
	ItemName               *string          `json:"item_name,omitempty"`
	PurchaserName          *string          `json:"purchaser_name,omitempty"`
	PurchaseDate           *string          `json:"purchase_date,omitempty"`
	PurchaseAmount         *decimal.Decimal `json:"purchase_amount,omitempty"`
	StorageLocation        *string          `json:"storage_location,omitempty"`
	ProvisionalAssetNumber *string          `json:"provisional_asset_number,omitempty"`
	QRNumber               *string          `json:"qr_number,omitempty"`
	Remarks                *string          `json:"remarks,omitempty"`
	PhotoBase64            *string          `json:"photo_base64,omitempty"`
	FinalAssetNumber       *string          `json:"final_asset_number,omitempty"`
}

// Apply returns a copy of the item with every supplied patch field overwritten.
func (it Item) Apply(p ItemPatch) Item {
	setString(&it.ItemName, p.ItemName)
	setString(&it.PurchaserName, p.PurchaserName)
	setString(&it.PurchaseDate, p.PurchaseDate)
	if p.PurchaseAmount != nil {
		it.PurchaseAmount = NewAmount(*p.PurchaseAmount)
	}
	setString(&it.StorageLocation, p.StorageLocation)
	setString(&it.ProvisionalAssetNumber, p.ProvisionalAssetNumber)
	setString(&it.QRNumber, p.QRNumber)
	setString(&it.Remarks, p.Remarks)
	setString(&it.PhotoBase64, p.PhotoBase64)
	setString(&it.FinalAssetNumber, p.FinalAssetNumber)
	return it
}

// Empty reports whether the patch supplies no fields.
func (p ItemPatch) Empty() bool {
	return p == ItemPatch{}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// DocumentNumber formats the document number for an item created at the
// given epoch milliseconds: the UTC creation date followed by the millis.
func DocumentNumber(createdAt int64) string {
	day := time.UnixMilli(createdAt).UTC().Format(time.DateOnly)
	return day + "-" + strconv.FormatInt(createdAt, 10)
}
