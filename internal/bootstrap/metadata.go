package bootstrap

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// MetadataFile is the name of the metadata file kept inside the environment
// directory.
const MetadataFile = "devstrap.json"

// Metadata records the identity of an environment and the manifest state it
// was last installed from.
type Metadata struct {
	ID           string `json:"id"`
	CreatedAt    string `json:"created_at"`
	Toolchain    string `json:"toolchain"`
	ManifestHash string `json:"manifest_hash,omitempty"`
}

// readMetadata loads the metadata file from an environment directory. A
// missing file is not an error: environments created by the old startup
// scripts carry no metadata.
func readMetadata(envDir string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(envDir, MetadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read environment metadata: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode environment metadata: %w", err)
	}
	return &meta, nil
}

// writeMetadata persists the metadata file into an environment directory.
func writeMetadata(envDir string, meta *Metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode environment metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(envDir, MetadataFile), data, 0644); err != nil {
		return fmt.Errorf("write environment metadata: %w", err)
	}
	return nil
}

// HashManifest returns the hex-encoded SHA-256 of the manifest file.
func HashManifest(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read manifest: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
