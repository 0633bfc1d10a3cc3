package utils

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"nhtransport/ledger"
	"nhtransport/models"
	"nhtransport/templates"
)

var invoiceTmpl = template.Must(
	template.New(templates.Invoice).
		Funcs(template.FuncMap{"inr": FormatINR}).
		ParseFS(templates.FS, templates.Invoice),
)

// PDFRenderer turns a complete HTML document into PDF bytes.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html []byte) ([]byte, error)
}

// BuildInvoiceData prepares the template input. The booking must already be
// recalculated; the amount due is clamped at zero for printing.
func BuildInvoiceData(company *models.CompanyProfile, b *models.Booking, now time.Time) models.InvoiceData {
	if company == nil {
		company = &models.CompanyProfile{}
	}

	date := "-"
	if !b.BookingDate.IsZero() {
		date = b.BookingDate.Format("02-Jan-2006")
	}

	contacts := make([]string, 0, len(company.Mobile))
	for _, m := range company.Mobile {
		if m.Label != "" {
			contacts = append(contacts, m.Number+"("+m.Label+")")
		} else {
			contacts = append(contacts, m.Number)
		}
	}

	res := ledger.Calculate(b.LedgerInput())
	due := ledger.AmountDue(res.FinalPendingAmount)

	return models.InvoiceData{
		Company:        company,
		Booking:        b,
		Ledger:         res,
		Contacts:       strings.Join(contacts, ", "),
		Date:           date,
		AmountDue:      due,
		AmountDueWords: AmountInWords(due),
		GeneratedAt:    now,
	}
}

func RenderInvoiceHTML(data models.InvoiceData) ([]byte, error) {
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ChromePDF prints HTML to an A4 PDF with headless Chrome.
type ChromePDF struct {
	Timeout time.Duration
}

func (c *ChromePDF) RenderPDF(ctx context.Context, html []byte) ([]byte, error) {
	// Chrome loads the document from a temp file so relative CSS works offline.
	tmp, err := os.CreateTemp("", "invoice_*.html")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(html); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, cancelChrome := chromedp.NewContext(ctx)
	defer cancelChrome()

	var pdfBuf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate("file://"+tmp.Name()),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
