// Package session carries the dashboard session in a fernet-encrypted cookie.
package session

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fernet/fernet-go"
)

const cookieName = "pt_session"

// DefaultCurrency is the preselected currency symbol.
const DefaultCurrency = "₹"

// Currencies is the fixed set of selectable currency symbols.
var Currencies = []string{"₹", "$", "€", "£"}

// ValidCurrency reports whether the symbol is in the fixed selectable set.
func ValidCurrency(symbol string) bool {
	for _, c := range Currencies {
		if c == symbol {
			return true
		}
	}
	return false
}

// Session is the per-user dashboard state that is not part of the
// portfolio itself: UI preferences, the holding selected for the news
// panel, and transient messages consumed on the next render.
type Session struct {
	Currency string   `json:"currency"`
	Selected string   `json:"selected,omitempty"`
	Messages []string `json:"messages,omitempty"`
}

// New returns a session with defaults applied.
func New() Session {
	return Session{Currency: DefaultCurrency}
}

// Manager encrypts and decrypts the session cookie.
type Manager struct {
	key *fernet.Key
}

// NewManager creates a manager from a base64 fernet key. An empty key
// generates an ephemeral one, so sessions reset on restart.
func NewManager(encodedKey string) (*Manager, error) {
	if encodedKey == "" {
		var key fernet.Key
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
		return &Manager{key: &key}, nil
	}

	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_KEY: %w", err)
	}
	return &Manager{key: key}, nil
}

// Load reads the session from the request cookie. A missing, expired, or
// tampered cookie yields a fresh default session rather than an error.
func (m *Manager) Load(r *http.Request) Session {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return New()
	}

	payload := fernet.VerifyAndDecrypt([]byte(cookie.Value), 0, []*fernet.Key{m.key})
	if payload == nil {
		return New()
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return New()
	}
	if !ValidCurrency(sess.Currency) {
		sess.Currency = DefaultCurrency
	}
	return sess
}

// Save writes the session back as an encrypted cookie.
func (m *Manager) Save(w http.ResponseWriter, sess Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	token, err := fernet.EncryptAndSign(payload, m.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    string(token),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
