package utils

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
)

// GetPersistentServerID returns a stable identity for this replica, used as
// the sender ID on cross-replica broadcasts. Resolution order: explicit
// override, the .server_id file under storagePath, the hostname, and as a
// last resort a random ID that is written back so restarts keep it.
func GetPersistentServerID(override, storagePath string) string {
	if override != "" {
		return override
	}

	idFile := filepath.Join(storagePath, ".server_id")
	if data, err := os.ReadFile(idFile); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}

	if hostname, err := os.Hostname(); err == nil && hostname != "" && hostname != "localhost" {
		if clean := sanitizeHostname(hostname); clean != "" {
			return "postpilot-" + clean
		}
	}

	randomPart := make([]byte, 4)
	rand.Read(randomPart)
	id := "postpilot-" + hex.EncodeToString(randomPart)

	_ = os.MkdirAll(storagePath, 0o755)
	_ = os.WriteFile(idFile, []byte(id), 0o644)
	return id
}

// sanitizeHostname keeps only characters that are safe inside Valkey keys.
func sanitizeHostname(hostname string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return -1
	}, hostname)
}
