package apimachinery

// Notifier receives user-facing messages emitted by the Gateway as side
// effects of response handling. The CLI's implementation writes to stderr;
// tests substitute a recording implementation.
type Notifier interface {
	// Notify surfaces a message to the user.
	Notify(message string)
	// SessionExpired directs the user back to the login entry point after
	// the credential has been invalidated.
	SessionExpired()
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (n *NopNotifier) Notify(string) {}

func (n *NopNotifier) SessionExpired() {}
