// Package secrets resolves sensitive values (API keys, DSNs) that arrive
// either inline in configuration or through a file reference.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a secret comes from. File wins over Value, so a
// checked-in config can name the file while the value itself stays out of
// version control.
type Source struct {
	// Name appears in error messages.
	Name string
	// Value is the inline secret from configuration or flags.
	Value string
	// File points at a file holding the secret. Takes precedence over Value.
	File string
}

// Load resolves the secret, trimmed of surrounding whitespace. It errors
// when neither the file nor the inline value yields a non-empty secret.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	raw := src.Value
	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		raw = string(data)
	}

	secret := strings.TrimSpace(raw)
	if secret == "" {
		if file != "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}
