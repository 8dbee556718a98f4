// Package mail delivers rendered reports and the insight digest over SMTP.
package mail

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"datasuite/domain/core"
	"datasuite/ports"

	"github.com/gomarkdown/markdown"
	"github.com/jordan-wright/email"
)

// Notifier sends report emails through a single SMTP account.
type Notifier struct {
	host        string
	port        int
	username    string
	password    string
	companyName string
}

// NewNotifier creates an SMTP notifier. Credentials may be empty; Send
// then fails with core.ErrSMTPNotConfigured instead of attempting delivery.
func NewNotifier(host string, port int, username, password, companyName string) *Notifier {
	return &Notifier{
		host:        host,
		port:        port,
		username:    username,
		password:    password,
		companyName: companyName,
	}
}

// Configured reports whether the notifier has usable credentials.
func (n *Notifier) Configured() bool {
	return n.username != "" && n.password != ""
}

// Send delivers the digest and attachments to the notification's
// recipients. The result lists who was actually addressed; any failure is
// returned as a value alongside a human-readable message and leaves the
// caller's report untouched for retry.
func (n *Notifier) Send(req ports.Notification) (ports.DeliveryResult, error) {
	if !n.Configured() {
		return ports.DeliveryResult{Message: "email credentials are not configured"}, core.ErrSMTPNotConfigured
	}
	if len(req.Recipients) == 0 {
		return ports.DeliveryResult{Message: "no recipients to address"}, core.ErrNoRecipients
	}

	e := email.NewEmail()
	e.From = fmt.Sprintf("%s <%s>", n.companyName, n.username)
	e.To = req.Recipients
	e.Subject = req.Subject
	if e.Subject == "" {
		e.Subject = fmt.Sprintf("%s - Automated Data Report", n.companyName)
	}
	e.Text = []byte(req.Digest)
	e.HTML = buildHTMLBody(req.Digest)

	for _, path := range req.Attachments {
		if _, err := e.AttachFile(path); err != nil {
			return ports.DeliveryResult{
				Message: fmt.Sprintf("failed to attach %s: %v", path, err),
			}, fmt.Errorf("failed to attach %s: %w", path, err)
		}
	}

	addr := fmt.Sprintf("%s:%d", n.host, n.port)
	auth := smtp.PlainAuth("", n.username, n.password, n.host)

	var err error
	if n.port == 465 {
		// Implicit TLS port; everything else negotiates STARTTLS.
		err = e.SendWithTLS(addr, auth, &tls.Config{ServerName: n.host})
	} else {
		err = e.Send(addr, auth)
	}
	if err != nil {
		log.Printf("[Notifier] delivery failed (server: %s): %v", addr, err)
		return ports.DeliveryResult{
			Recipients: req.Recipients,
			Message:    fmt.Sprintf("delivery failed: %v", err),
		}, fmt.Errorf("smtp delivery failed: %w", err)
	}

	log.Printf("[Notifier] report sent to %d recipient(s)", len(req.Recipients))
	return ports.DeliveryResult{
		Sent:       true,
		Recipients: req.Recipients,
		Message:    fmt.Sprintf("report sent to %d recipient(s)", len(req.Recipients)),
	}, nil
}

// buildHTMLBody converts the plain-text digest into an HTML body. The
// digest's fixed structure maps onto markdown: section lines become
// headings, bullet lines become list items.
func buildHTMLBody(digest string) []byte {
	var md []string
	for _, line := range strings.Split(digest, "\n") {
		switch {
		case strings.HasPrefix(line, "     - "):
			md = append(md, "  - "+strings.TrimPrefix(line, "     - "))
		case strings.HasPrefix(line, "   • "):
			md = append(md, "- "+strings.TrimPrefix(line, "   • "))
		case strings.TrimSpace(line) == "":
			md = append(md, "")
		default:
			md = append(md, "## "+line)
		}
	}
	return markdown.ToHTML([]byte(strings.Join(md, "\n")), nil, nil)
}
