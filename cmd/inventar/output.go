package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/erazemk/inventar/internal/config"
	"github.com/erazemk/inventar/internal/imaging"
	"github.com/erazemk/inventar/internal/model"
)

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printItem(it *model.Item) error {
	if a.cfg.Format == config.FormatJSON {
		return a.printJSON(it)
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	row := func(k, v string) {
		if v != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", k, v)
		}
	}
	row("ID", it.ID)
	row("Document No.", it.DocumentNumber)
	row("Created", time.UnixMilli(it.CreatedAt).Format(time.DateTime))
	row("Item", it.ItemName)
	row("Purchaser", it.PurchaserName)
	row("Purchase date", it.PurchaseDate)
	row("Amount", it.PurchaseAmount.String())
	row("Location", it.StorageLocation)
	row("Provisional No.", it.ProvisionalAssetNumber)
	row("QR Number", it.QRNumber)
	row("Final Asset No.", it.FinalAssetNumber)
	row("Remarks", it.Remarks)
	row("Photo", photoSummary(it.PhotoBase64))
	return tw.Flush()
}

func (a *app) printItems(items []model.Item) error {
	if a.cfg.Format == config.FormatJSON {
		return a.printJSON(items)
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDOCUMENT NO.\tITEM\tPURCHASER\tDATE\tAMOUNT\tLOCATION\tQR")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ID, it.DocumentNumber, it.ItemName, it.PurchaserName,
			it.PurchaseDate, dash(it.PurchaseAmount.String()), dash(it.StorageLocation), dash(it.QRNumber))
	}
	return tw.Flush()
}

func (a *app) printStats(s *model.Stats) error {
	if a.cfg.Format == config.FormatJSON {
		return a.printJSON(s)
	}

	fmt.Fprintf(a.stdout, "Total items: %d\n", s.TotalItems)
	fmt.Fprintf(a.stdout, "Items with missing fields: %d\n", len(s.ItemsWithMissingFields))
	if len(s.ItemsWithMissingFields) == 0 {
		return nil
	}

	fmt.Fprintln(a.stdout)
	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDOCUMENT NO.\tITEM\tMISSING")
	for _, f := range s.ItemsWithMissingFields {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ID, f.DocumentNumber, f.ItemName, strings.Join(f.MissingFields, ", "))
	}
	return tw.Flush()
}

func photoSummary(dataURL string) string {
	if dataURL == "" {
		return ""
	}
	data, mime, err := imaging.DecodeDataURL(dataURL)
	if err != nil {
		return "(unreadable)"
	}
	return fmt.Sprintf("%s, %d bytes", mime, len(data))
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
