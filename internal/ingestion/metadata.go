package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Source formats recorded in Metadata
const (
	FormatText = "text"
	FormatHTML = "html"
)

// Metadata describes where an ingested job description came from
type Metadata struct {
	Source    string   `json:"source"`
	Format    string   `json:"format"`
	Platform  string   `json:"platform,omitempty"`
	Timestamp string   `json:"timestamp"`         // RFC3339
	Hash      string   `json:"hash"`              // SHA256 hex digest of the cleaned text
	Flagged   []string `json:"flagged,omitempty"` // instruction-like phrases found in the text
}

// NewMetadata creates Metadata for cleaned content with the current timestamp
func NewMetadata(content string, source string) *Metadata {
	return &Metadata{
		Source:    source,
		Format:    FormatText,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to indented JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
