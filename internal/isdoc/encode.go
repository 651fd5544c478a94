package isdoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Encode writes inv as an indented ISDOC document, XML header included.
func Encode(w io.Writer, inv *Invoice) error {
	if inv == nil {
		return fmt.Errorf("isdoc: nil invoice")
	}

	doc := *inv
	if doc.Xmlns == "" {
		doc.Xmlns = Namespace
	}
	if doc.Version == "" {
		doc.Version = Version
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("isdoc: write header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("isdoc: encode invoice %s: %w", inv.ID, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("isdoc: flush invoice %s: %w", inv.ID, err)
	}

	_, err := io.WriteString(w, "\n")
	return err
}

// Marshal returns the encoded document.
func Marshal(inv *Invoice) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, inv); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName returns the output path for the invoice input at inputPath: the
// same directory and base name with the ISDOC extension.
func FileName(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + FileExtension
}
