// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file is one secret: the filename is the key name and the trimmed file
// contents are the value.
//
// Supported key files: session-key (signs web session cookies).
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// SessionKeyName is the file holding the cookie signing key.
const SessionKeyName = "session-key"

// minSessionKeyLen is the shortest accepted session key, in bytes.
const minSessionKeyLen = 16

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error; Load returns an empty map.
// Unreadable files are logged and skipped.
func Load(dir string, logger *zap.Logger) (map[string]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// SessionKey returns the session-key secret from dir, or nil when none is
// configured. A key shorter than 16 bytes is rejected.
func SessionKey(dir string, logger *zap.Logger) ([]byte, error) {
	s, err := Load(dir, logger)
	if err != nil {
		return nil, err
	}
	key, ok := s[SessionKeyName]
	if !ok {
		return nil, nil
	}
	if len(key) < minSessionKeyLen {
		return nil, fmt.Errorf("%s in %s is too short: need at least %d bytes", SessionKeyName, dir, minSessionKeyLen)
	}
	return []byte(key), nil
}
