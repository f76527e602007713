package services

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"

	"cooldeal/entity"
	"cooldeal/repository"

	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"
)

//go:embed templates/receipt.html
var receiptFS embed.FS

var receiptTmpl = template.Must(template.ParseFS(receiptFS, "templates/receipt.html"))

type ReceiptService struct {
	Orders    *OrderService
	Site      *repository.SiteRepository
	Renderer  PDFRenderer
	PublicURL string
	Currency  string
}

func NewReceiptService(orders *OrderService, site *repository.SiteRepository, r PDFRenderer, publicURL, currency string) *ReceiptService {
	return &ReceiptService{Orders: orders, Site: site, Renderer: r, PublicURL: publicURL, Currency: currency}
}

type receiptLine struct {
	Name      string
	Quantity  int
	UnitPrice string
	Total     string
}

type receiptData struct {
	Order       *entity.Order
	Customer    *entity.Customer
	Lines       []receiptLine
	Currency    string
	SiteName    string
	SiteContact string
	LogoURL     template.URL
	QRCode      template.URL
}

// OrderURL is what the receipt's QR code points at: the order as sellers see it.
func (s *ReceiptService) OrderURL(o *entity.Order) string {
	return fmt.Sprintf("%s/seller/orders/%d", s.PublicURL, o.ID)
}

func (s *ReceiptService) HTML(o *entity.Order, cust *entity.Customer) (string, error) {
	png, err := qrcode.Encode(s.OrderURL(o), qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("qr code: %w", err)
	}

	data := receiptData{
		Order:    o,
		Customer: cust,
		Currency: s.Currency,
		SiteName: "CoolDeal",
		QRCode:   template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)),
	}
	if info, err := s.Site.LatestSiteInfo(); err == nil && info != nil {
		if info.Title != "" {
			data.SiteName = info.Title
		}
		data.SiteContact = strings.TrimSpace(info.Email + " " + info.Phone)
		if info.Logo != "" {
			data.LogoURL = template.URL(s.PublicURL + "/uploads/" + info.Logo)
		}
	}
	for _, it := range o.Items {
		data.Lines = append(data.Lines, receiptLine{
			Name:      it.Product.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
			Total:     it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PDF renders the receipt of one of the caller's orders.
func (s *ReceiptService) PDF(ctx context.Context, userID, orderID uint) (string, []byte, error) {
	o, err := s.Orders.DetailForCustomer(userID, orderID)
	if err != nil {
		return "", nil, err
	}
	cust, err := s.Orders.customer(userID)
	if err != nil {
		return "", nil, err
	}
	html, err := s.HTML(o, cust)
	if err != nil {
		return "", nil, err
	}
	pdf, err := s.Renderer.Render(ctx, html)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("Recu_%s.pdf", o.TransactionID), pdf, nil
}
