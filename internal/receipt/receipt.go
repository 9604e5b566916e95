package receipt

import (
	"bytes"
	"errors"
	htmltemplate "html/template"
	"strconv"
	"strings"
	"text/template"
	"time"

	"kebab-sayank-be/internal/config"
	"kebab-sayank-be/internal/order"
	"kebab-sayank-be/internal/utils"
)

var (
	ErrIncompleteOrder = errors.New("data pesanan belum lengkap untuk dicetak")
	ErrCancelledOrder  = errors.New("pesanan yang dibatalkan tidak dapat dicetak")
)

// wib is Western Indonesian Time. It has no daylight saving.
var wib = time.FixedZone("WIB", 7*60*60)

var months = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Store is the shop identity printed on every receipt.
type Store struct {
	Name    string
	Address string
	Phone   string
}

func StoreFromConfig(cfg *config.Config) Store {
	return Store{Name: cfg.StoreName, Address: cfg.StoreAddress, Phone: cfg.StorePhone}
}

type view struct {
	Store Store
	Order *order.Order
	Date  string
}

// FormatDate renders t in WIB the way receipts show it, e.g.
// "1 Mei 2024 pukul 17.00.00".
func FormatDate(t time.Time) string {
	t = t.In(wib)
	return strconv.Itoa(t.Day()) + " " + months[t.Month()-1] + " " + strconv.Itoa(t.Year()) +
		" pukul " + t.Format("15.04.05")
}

func check(o *order.Order) error {
	if o == nil || len(o.Products) == 0 || strings.TrimSpace(o.Customer.Name) == "" {
		return ErrIncompleteOrder
	}
	if o.Status == order.StatusCancelled {
		return ErrCancelledOrder
	}
	return nil
}

func newView(o *order.Order, store Store) view {
	return view{Store: store, Order: o, Date: FormatDate(o.CreatedAt)}
}

var funcs = map[string]any{
	"rupiah": utils.FormatRupiah,
	"upper":  strings.ToUpper,
	"change": func(o *order.Order) int64 { return o.Change() },
}

var textTmpl = template.Must(template.New("receipt.txt").Funcs(funcs).Parse(textLayout))

var htmlTmpl = htmltemplate.Must(htmltemplate.New("receipt.html").Funcs(funcs).Parse(htmlLayout))

// Render returns the plain text receipt.
func Render(o *order.Order, store Store) (string, error) {
	if err := check(o); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := textTmpl.Execute(&buf, newView(o, store)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderHTML returns a standalone HTML receipt for download.
func RenderHTML(o *order.Order, store Store) (string, error) {
	if err := check(o); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, newView(o, store)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func Filename(o *order.Order) string {
	return "Resi_Pesanan_" + strconv.FormatInt(o.OrderNumber, 10) + ".html"
}
