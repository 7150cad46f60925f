package manifest

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffResult is a unified diff between two libraries files.
type DiffResult struct {
	Unified        string
	HasDifferences bool
	Added          int // Lines only in the new file
	Removed        int // Lines only in the old file
}

// Diff compares two encoded manifests. oldLabel and newLabel name the sides
// in the diff header.
func Diff(oldDoc, newDoc []byte, oldLabel, newLabel string) (*DiffResult, error) {
	diff := difflib.UnifiedDiff{
		A:        splitLines(string(oldDoc)),
		B:        splitLines(string(newDoc)),
		FromFile: oldLabel,
		ToFile:   newLabel,
		Context:  3,
	}

	unified, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return nil, fmt.Errorf("computing diff: %w", err)
	}

	res := &DiffResult{Unified: unified, HasDifferences: unified != ""}
	for _, line := range strings.Split(unified, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			res.Added++
		case strings.HasPrefix(line, "-"):
			res.Removed++
		}
	}
	return res, nil
}

// splitLines splits s for difflib; every element keeps its newline and the
// last line gets one if it lacks it.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	lines := strings.SplitAfter(s, "\n")
	return lines[:len(lines)-1]
}
