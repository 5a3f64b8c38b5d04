package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/erazemk/inventar/internal/config"
	"github.com/erazemk/inventar/internal/form"
	"github.com/erazemk/inventar/internal/imaging"
	"github.com/erazemk/inventar/internal/model"
	"github.com/erazemk/inventar/internal/qr"
	"github.com/erazemk/inventar/internal/store"
)

// app carries what every command needs.
type app struct {
	store  *store.Store
	form   *form.Validator
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
}

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"create": cmdCreate,
	"show":   cmdShow,
	"list":   cmdList,
	"update": cmdUpdate,
	"stats":  cmdStats,
	"qr":     cmdQR,
	"photo":  cmdPhoto,
}

var errNoPhoto = errors.New("item has no photo")

// usageError marks mistakes in how a command was invoked.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() { fmt.Fprint(a.stdout, usage) }
	return fs
}

// parse parses command flags. A leading id argument is allowed before the
// flags, so both "update <id> -name x" and "update -name x <id>" work.
// It returns the positional arguments.
func parse(fs *flag.FlagSet, args []string) ([]string, error) {
	var lead []string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		lead, args = args[:1], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, &usageError{msg: err.Error()}
	}
	return append(lead, fs.Args()...), nil
}

// oneID extracts the single id argument of commands like show and update.
func oneID(fs *flag.FlagSet, args []string) (string, error) {
	rest, err := parse(fs, args)
	if err != nil {
		return "", err
	}
	switch len(rest) {
	case 0:
		return "", usagef("%s: missing item id", fs.Name())
	case 1:
		return rest[0], nil
	default:
		return "", usagef("%s: unexpected argument: %s", fs.Name(), rest[1])
	}
}

// itemFlags are the flags shared by create and update.
type itemFlags struct {
	name        string
	purchaser   string
	date        string
	amount      string
	location    string
	provisional string
	qr          string
	remarks     string
	final       string
	photo       string
}

func (f *itemFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "")
	fs.StringVar(&f.purchaser, "purchaser", "", "")
	fs.StringVar(&f.date, "date", "", "")
	fs.StringVar(&f.amount, "amount", "", "")
	fs.StringVar(&f.location, "location", "", "")
	fs.StringVar(&f.provisional, "provisional", "", "")
	fs.StringVar(&f.qr, "qr", "", "")
	fs.StringVar(&f.remarks, "remarks", "", "")
	fs.StringVar(&f.final, "final", "", "")
	fs.StringVar(&f.photo, "photo", "", "")
}

func (f *itemFlags) draft() (form.Draft, error) {
	photo, err := loadPhoto(f.photo)
	if err != nil {
		return form.Draft{}, err
	}
	return form.Draft{
		ItemName:               f.name,
		PurchaserName:          f.purchaser,
		PurchaseDate:           f.date,
		PurchaseAmount:         f.amount,
		StorageLocation:        f.location,
		ProvisionalAssetNumber: f.provisional,
		QRNumber:               f.qr,
		Remarks:                f.remarks,
		PhotoBase64:            photo,
		FinalAssetNumber:       f.final,
	}, nil
}

// patch builds a form patch from the flags that were given. An empty value
// clears an optional field; an empty -photo removes the photo.
func (f *itemFlags) patch(fs *flag.FlagSet) (form.Patch, error) {
	var p form.Patch
	var err error
	fs.Visit(func(fl *flag.Flag) {
		v := fl.Value.String()
		switch fl.Name {
		case "name":
			p.ItemName = &v
		case "purchaser":
			p.PurchaserName = &v
		case "date":
			p.PurchaseDate = &v
		case "amount":
			p.PurchaseAmount = &v
		case "location":
			p.StorageLocation = &v
		case "provisional":
			p.ProvisionalAssetNumber = &v
		case "qr":
			p.QRNumber = &v
		case "remarks":
			p.Remarks = &v
		case "final":
			p.FinalAssetNumber = &v
		case "photo":
			var photo string
			photo, err = loadPhoto(v)
			p.PhotoBase64 = &photo
		}
	})
	return p, err
}

// loadPhoto reads and normalises an image file into a data URL.
func loadPhoto(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening photo: %w", err)
	}
	defer f.Close()

	photo, err := imaging.Process(f)
	if err != nil {
		return "", fmt.Errorf("processing photo %s: %w", path, err)
	}
	return photo.DataURL(), nil
}

func cmdCreate(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("create")
	var f itemFlags
	f.register(fs)

	rest, err := parse(fs, args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return usagef("create: unexpected argument: %s", rest[0])
	}

	draft, err := f.draft()
	if err != nil {
		return err
	}
	fields, err := a.form.Draft(draft)
	if err != nil {
		return err
	}

	item, err := a.store.Create(ctx, fields)
	if err != nil {
		return fmt.Errorf("creating item: %w", err)
	}
	slog.Info("item created", "id", item.ID, "document_number", item.DocumentNumber)
	return a.printItem(item)
}

func cmdShow(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("show")
	id, err := oneID(fs, args)
	if err != nil {
		return err
	}

	item, err := a.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("getting item %s: %w", id, err)
	}
	return a.printItem(item)
}

func cmdList(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("list")
	var term, field string
	fs.StringVar(&term, "q", "", "")
	fs.StringVar(&field, "field", string(model.SearchAll), "")

	rest, err := parse(fs, args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return usagef("list: unexpected argument: %s", rest[0])
	}
	if !model.SearchField(field).Valid() {
		slog.Warn("unknown search field", "field", field)
		fmt.Fprintf(a.stderr, "warning: unknown search field %q matches nothing (use one of %s)\n", field, searchFieldNames())
	}

	items, err := a.store.List(ctx, term, model.SearchField(field))
	if err != nil {
		return fmt.Errorf("listing items: %w", err)
	}
	return a.printItems(items)
}

func cmdUpdate(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("update")
	var f itemFlags
	f.register(fs)

	id, err := oneID(fs, args)
	if err != nil {
		return err
	}

	p, err := f.patch(fs)
	if err != nil {
		return err
	}
	patch, err := a.form.Patch(p)
	if err != nil {
		return err
	}

	item, err := a.store.Update(ctx, id, patch)
	if err != nil {
		return fmt.Errorf("updating item %s: %w", id, err)
	}
	slog.Info("item updated", "id", item.ID, "document_number", item.DocumentNumber)
	return a.printItem(item)
}

func cmdStats(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("stats")
	rest, err := parse(fs, args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return usagef("stats: unexpected argument: %s", rest[0])
	}

	stats, err := a.store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}
	return a.printStats(stats)
}

func cmdQR(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("qr")
	var out string
	var payload bool
	size := a.cfg.QRSize
	fs.StringVar(&out, "o", "", "")
	fs.IntVar(&size, "size", size, "")
	fs.BoolVar(&payload, "payload", false, "")

	id, err := oneID(fs, args)
	if err != nil {
		return err
	}

	item, err := a.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("getting item %s: %w", id, err)
	}

	if payload {
		_, err := fmt.Fprintln(a.stdout, qr.Payload(*item))
		return err
	}

	png, err := qr.PNG(*item, size)
	if err != nil {
		return err
	}
	if out == "" {
		_, err := a.stdout.Write(png)
		return err
	}
	if err := os.WriteFile(out, png, 0644); err != nil {
		return fmt.Errorf("writing QR code: %w", err)
	}
	slog.Info("qr code written", "id", item.ID, "path", out)
	return nil
}

func cmdPhoto(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("photo")
	var out string
	fs.StringVar(&out, "o", "", "")

	id, err := oneID(fs, args)
	if err != nil {
		return err
	}

	item, err := a.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("getting item %s: %w", id, err)
	}
	if item.PhotoBase64 == "" {
		return errNoPhoto
	}

	data, mime, err := imaging.DecodeDataURL(item.PhotoBase64)
	if err != nil {
		return fmt.Errorf("reading photo of item %s: %w", id, err)
	}
	if out == "" {
		out = item.DocumentNumber + imaging.Extension(mime)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("writing photo: %w", err)
	}
	slog.Info("photo written", "id", item.ID, "path", out)
	_, err = fmt.Fprintln(a.stdout, out)
	return err
}

func searchFieldNames() string {
	names := make([]string, len(model.SearchFields))
	for i, f := range model.SearchFields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
