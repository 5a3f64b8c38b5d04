// Package qr renders item labels as QR code images.
package qr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/erazemk/inventar/internal/model"
)

// DefaultSize is the default PNG edge length in pixels.
const DefaultSize = 256

// ErrNoQRNumber is returned for items without a QR number.
var ErrNoQRNumber = errors.New("item has no QR number")

// Payload returns the text encoded into an item's label, one "key: value"
// line per non-empty field. The photo is never included.
func Payload(it model.Item) string {
	lines := []struct{ key, value string }{
		{"item_name", it.ItemName},
		{"purchaser_name", it.PurchaserName},
		{"purchase_date", it.PurchaseDate},
		{"purchase_amount", it.PurchaseAmount.String()},
		{"storage_location", it.StorageLocation},
		{"provisional_asset_number", it.ProvisionalAssetNumber},
		{"qr_number", it.QRNumber},
		{"remarks", it.Remarks},
		{"final_asset_number", it.FinalAssetNumber},
		{"id", it.ID},
		{"document_number", it.DocumentNumber},
		{"created_at", strconv.FormatInt(it.CreatedAt, 10)},
	}

	var b strings.Builder
	for _, l := range lines {
		if l.value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.key)
		b.WriteString(": ")
		b.WriteString(l.value)
	}
	return b.String()
}

// PNG renders the item's label as a square PNG of the given size.
// Items must carry a QR number to get a label.
func PNG(it model.Item, size int) ([]byte, error) {
	if it.QRNumber == "" {
		return nil, ErrNoQRNumber
	}
	if size <= 0 {
		size = DefaultSize
	}

	png, err := qrcode.Encode(Payload(it), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encoding QR code: %w", err)
	}
	return png, nil
}
