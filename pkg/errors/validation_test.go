package errors

import (
	"testing"
)

func TestValidateCoordinatePart(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid group", "com.google.guava", false},
		{"valid artifact", "commons-lang3", false},
		{"valid underscore", "my_lib", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"colon", "com.acme:foo", true},
		{"slash", "com/acme", true},
		{"property", "${project.groupId}", true},
		{"space", "com acme", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinatePart("groupId", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinatePart(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidCoordinate) {
				t.Errorf("expected INVALID_COORDINATE, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateSeparator(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{":", false},
		{"|", false},
		{"→", false},
		{"", true},
		{"::", true},
		{" ", true},
		{"\t", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateSeparator(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSeparator(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default style", "my-app-1.0.jar.json", false},
		{"simple", "libs.json", false},
		{"hidden allowed", ".libs.json", false},

		{"empty", "", true},
		{"with path /", "path/to/file", true},
		{"with path \\", "path\\to\\file", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"control char", "libs\x01.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://repo1.maven.org/maven2/", false},
		{"http", "http://nexus.local/repository/public", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///tmp/repo", true},
		{"no scheme", "repo1.maven.org", true},
		{"no host", "https:///maven2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
