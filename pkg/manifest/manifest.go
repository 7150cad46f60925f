package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	errs "github.com/matzehuels/libsgen/pkg/errors"
)

// Library is one entry of the libraries file.
type Library struct {
	Name string `json:"name"` // Coordinate, e.g. "com.google.guava:guava:33.0.0-jre"
	URL  string `json:"url"`  // Download URL of the artifact's jar
}

// Manifest is the libraries file: {"libs":[{"name":...,"url":...}]}.
type Manifest struct {
	Libs []Library `json:"libs"`
}

// Encode renders m as JSON. With pretty set the output is indented by two
// spaces. An empty manifest encodes its libs as [] rather than null.
func Encode(m *Manifest, pretty bool) ([]byte, error) {
	out := Manifest{Libs: m.Libs}
	if out.Libs == nil {
		out.Libs = []Library{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode manifest")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decode parses a libraries file.
func Decode(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidManifest, err, "parse manifest")
	}
	return &m, nil
}

// Write replaces the file at path with the encoded manifest. Any existing
// file is removed first and missing parent directories are created.
func Write(path string, m *Manifest, pretty bool) error {
	data, err := Encode(m, pretty)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not delete old libraries file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create parent directory for libraries file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write libraries file: %w", err)
	}
	return nil
}

// Read loads the libraries file at path.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "libraries file not found: %s", path)
		}
		return nil, err
	}
	return Decode(data)
}

// OutputPath returns dir/name. An empty name selects the default
// "<finalName>.<packaging>.json".
func OutputPath(dir, name, finalName, packaging string) (string, error) {
	if name == "" {
		name = DefaultOutputName(finalName, packaging)
	}
	if err := errs.ValidateOutputName(name); err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// DefaultOutputName returns "<finalName>.<packaging>.json".
func DefaultOutputName(finalName, packaging string) string {
	return finalName + "." + packaging + ".json"
}
