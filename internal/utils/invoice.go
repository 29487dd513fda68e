package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"

	"yekzen_backend/internal/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	qrcode "github.com/skip2/go-qrcode"
)

// GenerateUPIQR builds a UPI deep-link QR for the order amount, returned as
// a base64 data URI ready for an <img src="...">.
func GenerateUPIQR(vpa, payeeName, ref string, amount float64) (string, error) {
	q := url.Values{}
	q.Set("pa", vpa)
	q.Set("pn", payeeName)
	q.Set("am", fmt.Sprintf("%.2f", amount))
	q.Set("cu", "INR")
	q.Set("tn", ref)

	png, err := qrcode.Encode("upi://pay?"+q.Encode(), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// RenderInvoicePDF loads the storefront invoice page in headless Chrome and
// prints it to PDF. frontendURL looks like http://localhost:3000/invoice.
func RenderInvoicePDF(frontendURL, orderID, qrBase64 string) ([]byte, error) {
	q := url.Values{}
	q.Set("id", orderID)
	q.Set("qr", qrBase64)

	fullURL := fmt.Sprintf("%s?%s", frontendURL, q.Encode())

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate(fullURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

// GenerateInvoicePDF renders the invoice for a completed order with the UPI
// payment QR embedded.
func GenerateInvoicePDF(order models.Order) ([]byte, error) {
	frontURL := os.Getenv("FRONTEND_INVOICE_URL")
	if frontURL == "" {
		frontURL = "http://localhost:3000/invoice"
	}

	vpa := os.Getenv("COMPANY_UPI_VPA")
	if vpa == "" {
		vpa = "yekzen@ybl"
	}
	payeeName := os.Getenv("COMPANY_NAME")
	if payeeName == "" {
		payeeName = "YekZen Retail"
	}

	orderID := order.ID.String()
	qrBase64, err := GenerateUPIQR(vpa, payeeName, "INV-"+orderID, order.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("QR generation failed: %v", err)
	}

	return RenderInvoicePDF(frontURL, orderID, qrBase64)
}
