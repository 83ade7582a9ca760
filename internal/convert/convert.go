// Package convert wraps the external format converters behind narrow
// capability interfaces so the batch driver can be tested with doubles.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// DocumentConverter turns a source document into markdown.
type DocumentConverter interface {
	Convert(ctx context.Context, inputPath, outputPath string) error
}

// ImageConverter re-encodes an image at the given quality, preserving pixel
// dimensions.
type ImageConverter interface {
	Convert(ctx context.Context, inputPath, outputPath string, quality int) error
}

// Option configures a converter binary.
type Option func(*binaryRef)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(b *binaryRef) {
		if binary != "" {
			b.binary = binary
		}
	}
}

type binaryRef struct {
	binary string
}

// Pandoc converts .docx documents to markdown via the pandoc CLI.
type Pandoc struct {
	binaryRef
}

// NewPandoc constructs a Pandoc converter using defaults.
func NewPandoc(opts ...Option) *Pandoc {
	p := &Pandoc{binaryRef{binary: "pandoc"}}
	for _, opt := range opts {
		opt(&p.binaryRef)
	}
	return p
}

// Convert runs pandoc on inputPath and writes markdown to outputPath.
// A non-zero exit is a failure; captured stderr is folded into the error.
func (p *Pandoc) Convert(ctx context.Context, inputPath, outputPath string) error {
	if inputPath == "" {
		return errors.New("input path required")
	}
	if outputPath == "" {
		return errors.New("output path required")
	}

	args := []string{inputPath, "-f", "docx", "-t", "markdown", "-o", outputPath}
	return run(ctx, p.binary, args, inputPath)
}

// CWebP re-encodes PNG images to WebP via the cwebp CLI.
type CWebP struct {
	binaryRef
}

// NewCWebP constructs a CWebP converter using defaults.
func NewCWebP(opts ...Option) *CWebP {
	c := &CWebP{binaryRef{binary: "cwebp"}}
	for _, opt := range opts {
		opt(&c.binaryRef)
	}
	return c
}

// Convert re-encodes inputPath to outputPath at the given quality.
func (c *CWebP) Convert(ctx context.Context, inputPath, outputPath string, quality int) error {
	if inputPath == "" {
		return errors.New("input path required")
	}
	if outputPath == "" {
		return errors.New("output path required")
	}

	args := []string{"-q", strconv.Itoa(quality), "-quiet", inputPath, "-o", outputPath}
	return run(ctx, c.binary, args, inputPath)
}

func run(ctx context.Context, binary string, args []string, inputPath string) error {
	cmd := commandContext(ctx, binary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%s %s: %w: %s", binary, filepath.Base(inputPath), err, msg)
		}
		return fmt.Errorf("%s %s: %w", binary, filepath.Base(inputPath), err)
	}
	return nil
}

var (
	_ DocumentConverter = (*Pandoc)(nil)
	_ ImageConverter    = (*CWebP)(nil)
)
