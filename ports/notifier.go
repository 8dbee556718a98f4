package ports

// Notification carries everything a delivery needs: the validated,
// deduplicated recipient list, the insight digest for the body, and the
// rendered report files to attach.
type Notification struct {
	Recipients  []string
	Subject     string
	Digest      string
	Attachments []string
}

// DeliveryResult reports the outcome of one delivery attempt. Recipients
// lists the addresses actually addressed; Message is human-readable.
type DeliveryResult struct {
	Sent       bool     `json:"sent"`
	Recipients []string `json:"recipients"`
	Message    string   `json:"message"`
}

// Notifier delivers a notification. Failures are value errors paired with
// a DeliveryResult; the caller's report stays reusable for retry.
type Notifier interface {
	Send(n Notification) (DeliveryResult, error)
}
