package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"

	"panelbom_backend/internal/quotation/domain"
)

// SMTPSender delivers quotation summaries via a direct SMTP connection.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

const subjectQuotationIssued = "Your quotation is ready"

var quotationTemplate = template.Must(template.New("quotation").Parse(`
<h2>Quotation {{.ID}}</h2>
{{if .CustomerName}}<p>Dear {{.CustomerName}},</p>{{end}}
<p>Your quotation for {{.ProductName}} is ready.</p>
{{if .DesignChange}}<p><strong>Note:</strong> the requested span needs a design change; the quoted plan includes intermediate supports.</p>{{end}}
<table border="0" cellpadding="4">
{{range .Items}}<tr><td>{{.Description}}</td><td>{{.Quantity}}</td><td>{{.Extended}} {{$.Currency}}</td></tr>
{{end}}</table>
<p>Subtotal: {{.Subtotal}} {{.Currency}}<br>
{{if .HasDiscount}}Discount: -{{.Discount}} {{.Currency}}<br>{{end}}
Tax: {{.Tax}} {{.Currency}}<br>
<strong>Total: {{.Total}} {{.Currency}}</strong></p>
{{range .Warnings}}<p><em>{{.}}</em></p>
{{end}}`))

type quotationEmailData struct {
	ID           string
	CustomerName string
	ProductName  string
	DesignChange bool
	Currency     string
	Items        []quotationEmailItem
	Subtotal     string
	HasDiscount  bool
	Discount     string
	Tax          string
	Total        string
	Warnings     []string
}

type quotationEmailItem struct {
	Description string
	Quantity    int
	Extended    string
}

// SendQuotationIssued emails the itemized quotation summary.
func (s *SMTPSender) SendQuotationIssued(ctx context.Context, toEmail string, quotation *domain.Quotation) error {
	data := quotationEmailData{
		ID:           quotation.ID.String(),
		CustomerName: quotation.Customer.Name,
		ProductName:  quotation.Result.ProductName,
		DesignChange: quotation.Result.Status == domain.StatusRequiresDesignChange,
		Currency:     quotation.Result.Currency,
		Subtotal:     quotation.Result.Totals.Subtotal.String(),
		HasDiscount:  quotation.Result.Totals.Discount > 0,
		Discount:     quotation.Result.Totals.Discount.String(),
		Tax:          quotation.Result.Totals.Tax.String(),
		Total:        quotation.Result.Totals.Total.String(),
		Warnings:     quotation.Result.Warnings,
	}
	for _, item := range quotation.Result.Items {
		data.Items = append(data.Items, quotationEmailItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Extended:    item.ExtendedPrice.String(),
		})
	}

	var body bytes.Buffer
	if err := quotationTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("render quotation email: %w", err)
	}

	return s.send(ctx, toEmail, subjectQuotationIssued, body.String())
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}
