package receipt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Sink consumes a finalized order and produces a printable document. It
// returns nothing; failures are the sink's own business.
type Sink func(models.Order)

const width = 40

var tmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"center": center,
	"line":   func() string { return strings.Repeat("-", width) },
	"money":  money,
	"row":    row,
	"date":   displayDate,
}).Parse(`{{center "Hardware Store Inc."}}
{{center "123 Tool Street"}}
{{center "Tel: (555) 123-4567"}}
{{line}}
Receipt #: {{.ID}}
Date: {{date .Date}}
Customer: {{.Customer}}
Type: {{.Type}}
{{line}}
{{range .Items}}{{row (printf "%s x %d" .ProductName .Quantity) (money .TotalPrice)}}
{{end}}{{line}}
{{row "Total:" (money .TotalAmount)}}
{{row "Payment:" (print .PaymentStatus)}}
{{line}}
{{center "Thank you for your business!"}}
`))

// Render writes a fixed-width text receipt for o.
func Render(w io.Writer, o models.Order) error {
	if err := tmpl.Execute(w, o); err != nil {
		return fmt.Errorf("render receipt %s: %w", o.ID, err)
	}
	return nil
}

// DirSink writes each receipt to <dir>/<order id>.txt.
func DirSink(dir string) Sink {
	return func(o models.Order) {
		if err := writeFile(dir, o); err != nil {
			log.Error().Err(err).Str("order_id", o.ID).Msg("failed to print receipt")
			return
		}
		log.Info().Str("order_id", o.ID).Str("dir", dir).Msg("receipt printed")
	}
}

// Delayed runs sink after delay on its own goroutine. There is no ordering
// guarantee relative to later requests and no way to cancel it.
func Delayed(sink Sink, delay time.Duration) Sink {
	return func(o models.Order) {
		time.AfterFunc(delay, func() { sink(o) })
	}
}

func writeFile(dir string, o models.Order) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create receipt dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, o.ID+".txt"))
	if err != nil {
		return fmt.Errorf("create receipt file: %w", err)
	}

	if err := Render(f, o); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// row and center measure in runes so accented names keep the columns.
func row(left, right string) string {
	pad := width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func center(s string) string {
	pad := (width - utf8.RuneCountInString(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

func displayDate(s string) string {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("01/02/2006")
}
