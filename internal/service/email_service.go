package service

import (
	"context"
	"fmt"
	"html"
	"strings"
)

// ContactMessage is a validated contact form submission ready to be sent
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
	Info    *ContactMessageInfo
}

// ContactMessageInfo holds request metadata appended to the email
type ContactMessageInfo struct {
	IPAddress string
	UserAgent string
	Referrer  string
	RequestID string
}

// EmailDispatcher sends contact messages through an email provider
type EmailDispatcher interface {
	SendContactEmail(ctx context.Context, msg *ContactMessage) (messageID string, err error)
}

func contactSubject(msg *ContactMessage) string {
	return "Contact Form: " + msg.Subject
}

func contactHTML(msg *ContactMessage) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString("<h2>New Contact Form Submission</h2>")
	fmt.Fprintf(&b, "<p><strong>From:</strong> %s</p>", html.EscapeString(msg.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(msg.Email))
	fmt.Fprintf(&b, "<p><strong>Subject:</strong> %s</p>", html.EscapeString(msg.Subject))
	b.WriteString("<hr><h3>Message:</h3>")
	fmt.Fprintf(&b, "<p>%s</p>", strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"))
	b.WriteString("</body></html>")
	return b.String()
}

func contactText(msg *ContactMessage) string {
	var b strings.Builder
	b.WriteString("New Contact Form Submission\n\n")
	fmt.Fprintf(&b, "From: %s\n", msg.Name)
	fmt.Fprintf(&b, "Email: %s\n", msg.Email)
	fmt.Fprintf(&b, "Subject: %s\n\n", msg.Subject)
	b.WriteString("Message:\n")
	b.WriteString(msg.Message)
	b.WriteString("\n")

	if info := msg.Info; info != nil {
		b.WriteString("\n--\n")
		if info.IPAddress != "" {
			fmt.Fprintf(&b, "IP: %s\n", info.IPAddress)
		}
		if info.UserAgent != "" {
			fmt.Fprintf(&b, "User-Agent: %s\n", info.UserAgent)
		}
		if info.Referrer != "" {
			fmt.Fprintf(&b, "Referrer: %s\n", info.Referrer)
		}
		if info.RequestID != "" {
			fmt.Fprintf(&b, "Request ID: %s\n", info.RequestID)
		}
	}
	return b.String()
}
