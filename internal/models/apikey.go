package models

import "fmt"

// APIKey wraps the remote API secret. Its fmt representations only
// ever show a masked preview, so the raw key can't wander into result
// rows or log lines by accident. JSON round-trips keep the raw value,
// which is what the config file persistence relies on.
type APIKey string

// IsSet returns true when a key has been configured
func (k APIKey) IsSet() bool {
	return string(k) != ""
}

// Reveal returns the raw secret, for constructing auth headers only
func (k APIKey) Reveal() string {
	return string(k)
}

// Masked returns a short preview such as 'sk-o…abcd' which is safe
// to surface in result rows
func (k APIKey) Masked() string {
	if !k.IsSet() {
		return "<unset>"
	}
	r := []rune(string(k))
	if len(r) <= 8 {
		return "****"
	}
	return fmt.Sprintf("%s…%s", string(r[:4]), string(r[len(r)-4:]))
}

func (k APIKey) String() string {
	return k.Masked()
}

// GoString masks %#v output as well
func (k APIKey) GoString() string {
	return k.Masked()
}
