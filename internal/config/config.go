package config

import (
	"encoding/json"
	"errors"
	"os"
)

// Config holds application configuration. All paths are explicit so the batch
// driver can be constructed against any workspace; nothing is process-global.
type Config struct {
	// SourceRoot is the directory holding raw story folders.
	SourceRoot string `json:"source_root"`

	// OutputRoot is where converted assets and manifests are written.
	OutputRoot string `json:"output_root"`

	// LogRoot is where per-run processing and error logs are written.
	LogRoot string `json:"log_root"`

	// LedgerPath is the progress ledger file location.
	LedgerPath string `json:"ledger_path"`

	// ImageQuality is the quality setting passed to the image converter.
	ImageQuality int `json:"image_quality,omitempty"`

	// PandocBin overrides the document converter binary name.
	PandocBin string `json:"pandoc_bin,omitempty"`

	// CWebPBin overrides the image converter binary name.
	CWebPBin string `json:"cwebp_bin,omitempty"`

	// TargetUserID is the owner assigned to rows copied by the migrate command.
	TargetUserID string `json:"target_user_id,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SourceRoot:   "stories/incoming",
		OutputRoot:   "stories/processed",
		LogRoot:      "stories/logs",
		LedgerPath:   "stories/.progress.json",
		ImageQuality: 85,
		PandocBin:    "pandoc",
		CWebPBin:     "cwebp",
	}
}

// Load loads configuration from the given JSON file.
// Returns default config if the file doesn't exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs. Overlay values take precedence
// when non-zero.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.SourceRoot = pick(overlay.SourceRoot, base.SourceRoot)
	result.OutputRoot = pick(overlay.OutputRoot, base.OutputRoot)
	result.LogRoot = pick(overlay.LogRoot, base.LogRoot)
	result.LedgerPath = pick(overlay.LedgerPath, base.LedgerPath)
	result.PandocBin = pick(overlay.PandocBin, base.PandocBin)
	result.CWebPBin = pick(overlay.CWebPBin, base.CWebPBin)
	result.TargetUserID = pick(overlay.TargetUserID, base.TargetUserID)

	result.ImageQuality = overlay.ImageQuality
	if result.ImageQuality == 0 {
		result.ImageQuality = base.ImageQuality
	}

	return result
}

func pick(overlay, base string) string {
	if overlay != "" {
		return overlay
	}
	return base
}
