// Package form validates user-entered item data before it reaches the store.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/erazemk/inventar/internal/model"
)

// Draft is user input for a new item.
type Draft struct {
	ItemName               string `json:"item_name" validate:"required"`
	PurchaserName          string `json:"purchaser_name" validate:"required"`
	PurchaseDate           string `json:"purchase_date" validate:"required,datetime=2006-01-02,notpast"`
	PurchaseAmount         string `json:"purchase_amount" validate:"required,numeric"`
	StorageLocation        string `json:"storage_location"`
	ProvisionalAssetNumber string `json:"provisional_asset_number"`
	QRNumber               string `json:"qr_number"`
	Remarks                string `json:"remarks"`
	PhotoBase64            string `json:"photo_base64"`
	FinalAssetNumber       string `json:"final_asset_number"`
}

// Patch is user input for editing an item. Nil fields were not supplied.
type Patch struct {
	ItemName               *string `json:"item_name" validate:"omitnil,min=1"`
	PurchaserName          *string `json:"purchaser_name" validate:"omitnil,min=1"`
	PurchaseDate           *string `json:"purchase_date" validate:"omitnil,datetime=2006-01-02"`
	PurchaseAmount         *string `json:"purchase_amount" validate:"omitnil,numeric"`
	StorageLocation        *string `json:"storage_location"`
	ProvisionalAssetNumber *string `json:"provisional_asset_number"`
	QRNumber               *string `json:"qr_number"`
	Remarks                *string `json:"remarks"`
	PhotoBase64            *string `json:"photo_base64"`
	FinalAssetNumber       *string `json:"final_asset_number"`
}

// Validator checks drafts and patches.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewValidator returns a validator that judges dates against the local
// calendar day.
func NewValidator() *Validator {
	v := &Validator{validate: validator.New(), now: time.Now}

	// Report fields by their JSON names.
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// notpast accepts dates from today onwards.
	v.validate.RegisterValidation("notpast", func(fl validator.FieldLevel) bool {
		day, err := time.ParseInLocation(time.DateOnly, fl.Field().String(), time.Local)
		if err != nil {
			return false
		}
		y, m, d := v.now().Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
		return !day.Before(today)
	})

	return v
}

// Draft validates a new item and converts it to store fields.
func (v *Validator) Draft(d Draft) (model.ItemFields, error) {
	if err := v.validate.Struct(d); err != nil {
		return model.ItemFields{}, describe(err)
	}

	amount, err := decimal.NewFromString(d.PurchaseAmount)
	if err != nil {
		return model.ItemFields{}, fmt.Errorf("purchase_amount: %w", err)
	}

	return model.ItemFields{
		ItemName:               d.ItemName,
		PurchaserName:          d.PurchaserName,
		PurchaseDate:           d.PurchaseDate,
		PurchaseAmount:         model.NewAmount(amount),
		StorageLocation:        d.StorageLocation,
		ProvisionalAssetNumber: d.ProvisionalAssetNumber,
		QRNumber:               d.QRNumber,
		Remarks:                d.Remarks,
		PhotoBase64:            d.PhotoBase64,
		FinalAssetNumber:       d.FinalAssetNumber,
	}, nil
}

// Patch validates an edit and converts it to a store patch.
func (v *Validator) Patch(p Patch) (model.ItemPatch, error) {
	if err := v.validate.Struct(p); err != nil {
		return model.ItemPatch{}, describe(err)
	}

	patch := model.ItemPatch{
		ItemName:               p.ItemName,
		PurchaserName:          p.PurchaserName,
		PurchaseDate:           p.PurchaseDate,
		StorageLocation:        p.StorageLocation,
		ProvisionalAssetNumber: p.ProvisionalAssetNumber,
		QRNumber:               p.QRNumber,
		Remarks:                p.Remarks,
		PhotoBase64:            p.PhotoBase64,
		FinalAssetNumber:       p.FinalAssetNumber,
	}
	if p.PurchaseAmount != nil {
		amount, err := decimal.NewFromString(*p.PurchaseAmount)
		if err != nil {
			return model.ItemPatch{}, fmt.Errorf("purchase_amount: %w", err)
		}
		patch.PurchaseAmount = &amount
	}
	return patch, nil
}

// describe turns validator errors into one readable error.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return &Error{Fields: msgs}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		return fe.Field() + " is required"
	case "datetime":
		return fe.Field() + " must be a date (YYYY-MM-DD)"
	case "notpast":
		return fe.Field() + " must not be in the past"
	case "numeric":
		return fe.Field() + " must be a number"
	default:
		return fe.Field() + " is invalid"
	}
}

// Error lists every field that failed validation.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return "invalid item: " + strings.Join(e.Fields, "; ")
}
