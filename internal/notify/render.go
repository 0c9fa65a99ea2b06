package notify

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"inquirydesk/internal/domain"
)

//go:embed templates/*.txt templates/*.html
var templatesFS embed.FS

var (
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templatesFS, "templates/*.txt"))
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templatesFS, "templates/*.html"))
)

// amountPrinter groups thousands the way the team reads amounts
var amountPrinter = message.NewPrinter(language.English)

// view is the data every notification template renders
type view struct {
	Title      string
	ID         string
	Name       string
	Email      string
	Phone      string
	Subject    string
	Message    string
	Company    string
	Amount     string
	ReceivedAt string
}

func newView(title string, in domain.Inquiry) view {
	v := view{
		Title:      title,
		ID:         in.ID,
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Message:    in.Message,
		ReceivedAt: in.CreatedAt.UTC().Format(time.RFC1123),
	}
	if in.Subject != nil {
		v.Subject = *in.Subject
	}
	return v
}

// FormatAmount renders an investment amount with grouped thousands and two decimals.
func FormatAmount(amount float64) string {
	return amountPrinter.Sprintf("%.2f", amount)
}

// content is a rendered notification
type content struct {
	Subject string
	Text    string
	HTML    string
}

func renderGeneral(in *domain.GeneralInquiry) (content, error) {
	subject := "New contact inquiry from " + in.Name
	if in.Subject != nil && strings.TrimSpace(*in.Subject) != "" {
		subject += ": " + *in.Subject
	}
	return render("general", oneLine(subject), newView("New contact inquiry", in.Inquiry))
}

func renderInvestor(in *domain.InvestorInquiry) (content, error) {
	v := newView("New investor inquiry", in.Inquiry)
	subject := "New investor inquiry from " + in.Name
	if in.Company != nil && *in.Company != "" {
		v.Company = *in.Company
		subject += " (" + v.Company + ")"
	}
	if in.InvestmentAmount != nil {
		v.Amount = FormatAmount(*in.InvestmentAmount)
	}
	return render("investor", oneLine(subject), v)
}

// oneLine collapses whitespace runs, newlines included, into single spaces
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func render(name, subject string, v view) (content, error) {
	var text, html bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&text, name+".txt", v); err != nil {
		return content{}, err
	}
	if err := htmlTemplates.ExecuteTemplate(&html, name+".html", v); err != nil {
		return content{}, err
	}
	return content{Subject: subject, Text: text.String(), HTML: html.String()}, nil
}
