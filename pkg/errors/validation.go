package errors

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var mavenIDRegex = regexp.MustCompile(`^[A-Za-z0-9_\-.]+$`)

// ValidateCoordinatePart checks a groupId or artifactId; field names the
// part in the error message.
func ValidateCoordinatePart(field, value string) error {
	if value == "" {
		return New(ErrCodeInvalidCoordinate, "%s cannot be empty", field)
	}
	if len(value) > 256 {
		return New(ErrCodeInvalidCoordinate, "%s too long (max 256 characters)", field)
	}
	if !mavenIDRegex.MatchString(value) {
		return New(ErrCodeInvalidCoordinate, "invalid %s: %q", field, value)
	}
	return nil
}

// ValidateSeparator checks that sep is exactly one printable, non-space character.
func ValidateSeparator(sep string) error {
	if utf8.RuneCountInString(sep) != 1 {
		return New(ErrCodeConfiguration, "separator must be a single character, got %q", sep)
	}
	r, _ := utf8.DecodeRuneInString(sep)
	if unicode.IsControl(r) || unicode.IsSpace(r) {
		return New(ErrCodeConfiguration, "separator must be printable, got %q", sep)
	}
	return nil
}

// ValidateOutputName checks that a libraries file name is a plain base
// name: no directories, no control characters, not "." or "..".
func ValidateOutputName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidManifest, "output name cannot be empty")
	case name == "." || name == "..":
		return New(ErrCodeInvalidManifest, "output name cannot be %q", name)
	case strings.ContainsAny(name, `/\`):
		return New(ErrCodeInvalidManifest, "output name %q must not contain path separators", name)
	case strings.IndexFunc(name, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidManifest, "output name %q contains control characters", name)
	}
	return nil
}

// ValidateURL checks that raw is an absolute http or https URL with a host.
func ValidateURL(raw string) error {
	if raw == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme: %q", raw)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL has no host: %q", raw)
	}
	return nil
}
