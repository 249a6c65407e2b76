package db

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

const projectIDPrefix = "pj-"

// NormalizeProjectID ensures a project ID has the pj- prefix
func NormalizeProjectID(id string) string {
	if id == "" {
		return id
	}
	if !strings.HasPrefix(id, projectIDPrefix) {
		return projectIDPrefix + id
	}
	return id
}

// idGenerator can be replaced in tests to control ID generation.
var idGenerator = defaultGenerateID

func defaultGenerateID() (string, error) {
	bytes := make([]byte, 3) // 6 hex characters
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return projectIDPrefix + hex.EncodeToString(bytes), nil
}
