// Package loader reads the contents of the classifier's candidate files.
// The classifier may hallucinate paths, so every candidate is verified
// against the filesystem; a bad candidate is a diagnostic, never an error.
package loader

import (
	"os"
	"path/filepath"
	"strings"

	"apidocgen/internal/logging"
)

// SkipReason explains why a candidate path was not loaded.
type SkipReason string

const (
	// SkipExtension means the candidate does not have an accepted
	// source-file extension.
	SkipExtension SkipReason = "extension"
	// SkipNotFound means the candidate does not exist on disk (the
	// classifier hallucinated it).
	SkipNotFound SkipReason = "not_found"
	// SkipReadError means the candidate exists but could not be read.
	SkipReadError SkipReason = "read_error"
)

// Skip records one skipped candidate.
type Skip struct {
	Path   string
	Reason SkipReason
	Err    error
}

// Result maps the surviving candidate paths to their contents. Order
// preserves candidate order for deterministic prompt serialization.
type Result struct {
	Contents map[string]string
	Order    []string
	Skipped  []Skip
}

// Load reads every candidate that has an accepted extension and exists on
// disk. It never fails as a whole: each unusable candidate becomes a Skip
// diagnostic and the rest of the batch proceeds.
func Load(candidates []string, extensions []string) Result {
	result := Result{Contents: make(map[string]string)}

	for _, path := range candidates {
		if !acceptedExtension(path, extensions) {
			logging.Warn("skipping non-source file suggested by classifier: %s", path)
			result.Skipped = append(result.Skipped, Skip{Path: path, Reason: SkipExtension})
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				// Expected: the classifier invents paths now and then.
				logging.Warn("classifier suggested a file that does not exist: %s", path)
				result.Skipped = append(result.Skipped, Skip{Path: path, Reason: SkipNotFound, Err: err})
			} else {
				logging.Error("failed to read %s: %v", path, err)
				result.Skipped = append(result.Skipped, Skip{Path: path, Reason: SkipReadError, Err: err})
			}
			continue
		}

		if _, seen := result.Contents[path]; !seen {
			result.Order = append(result.Order, path)
		}
		result.Contents[path] = string(data)
	}

	logging.Info("loaded %d of %d candidate files", len(result.Contents), len(candidates))
	return result
}

func acceptedExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, accepted := range extensions {
		if strings.EqualFold(ext, accepted) {
			return true
		}
	}
	return false
}
