package notify

// Notifier delivers one rendered message to one recipient. Delivery is
// best-effort: implementations report success or failure and must never
// block the caller's state transition on the outcome.
type Notifier interface {
	Send(to, subject, htmlBody string) bool
}
