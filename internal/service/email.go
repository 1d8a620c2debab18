package service

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"net/mail"
	texttemplate "text/template"
	"time"

	"lab-portal/internal/client"
)

//go:embed templates
var templateFS embed.FS

var (
	verificationHTML = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/verification.html"))
	verificationText = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/verification.txt"))
)

const verificationSubject = "Your lab dashboard sign-in link"

type verificationData struct {
	Name     string
	Link     string
	ValidFor string
}

func verificationEmail(to mail.Address, link string, ttl time.Duration) (*client.EmailMessage, error) {
	data := verificationData{
		Name:     to.Name,
		Link:     link,
		ValidFor: humanDuration(ttl),
	}

	var html, text bytes.Buffer
	if err := verificationHTML.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("render html email: %w", err)
	}
	if err := verificationText.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("render text email: %w", err)
	}

	return &client.EmailMessage{
		To:          to,
		Subject:     verificationSubject,
		TextContent: text.String(),
		HTMLContent: html.String(),
	}, nil
}

func humanDuration(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	return d.String()
}
