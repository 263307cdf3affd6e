package apimachinery

import "sync"

// fakeCredStore is an in-memory CredentialStore.
type fakeCredStore struct {
	mu      sync.Mutex
	token   string
	cleared bool
}

func (f *fakeCredStore) Token() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, nil
}

func (f *fakeCredStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.cleared = true
	return nil
}

// recordingNotifier captures user-facing side effects for assertions.
type recordingNotifier struct {
	mu             sync.Mutex
	messages       []string
	sessionExpired bool
}

func (r *recordingNotifier) Notify(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *recordingNotifier) SessionExpired() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessionExpired = true
}
