// Package classifier asks the text-generation service which of the scanned
// files define HTTP API endpoints.
package classifier

import (
	"context"
	"fmt"
	"strings"

	"apidocgen/internal/llm"
	"apidocgen/internal/logging"
)

// identifyPrompt instructs the model to pick out the endpoint-defining files.
// <PATHS> is replaced with the scanned file list, one path per line.
const identifyPrompt = `You are an expert in analyzing software project structures. Given a list of file paths, identify which files are most likely to define API endpoints. API code often lives in directories such as routes/, controllers/, api/, or endpoints/. Consider naming conventions and directory structures used in common web frameworks (Node.js, Django, Flask, etc.).

Here is the list of file paths:

<PATHS>

Only return the file paths that define API endpoints, each path on its own line, like so:
    path 1
    path 2
    path n

Do not add any other explanation or other response text. Only include source code files. Ignore __init__.py files and other non-source files.`

// MalformedResponseError indicates the model's classification output did not
// contain a single usable path.
type MalformedResponseError struct {
	Raw string
}

func (e *MalformedResponseError) Error() string {
	return "classification response contained no usable file paths"
}

// Result is the parsed classification.
type Result struct {
	// Candidates are the paths the model suggested. They are not guaranteed
	// to exist; the content loader verifies each one.
	Candidates []string
	// Rejected records response lines dropped by the parsing grammar.
	Rejected []string
}

// Classify sends the scanned file list to the service and parses the
// response into candidate paths. The call happens even for an empty file
// list; the model simply sees an empty listing.
func Classify(ctx context.Context, gen llm.Generator, files []string, maxTokens int) (Result, error) {
	prompt := strings.Replace(identifyPrompt, "<PATHS>", strings.Join(files, "\n"), 1)

	logging.Info("classifying %d files", len(files))
	response, err := gen.Generate(ctx, prompt, maxTokens)
	if err != nil {
		return Result{}, fmt.Errorf("endpoint classification failed: %w", err)
	}

	return parse(response)
}

// parse applies the response grammar: one path per line, trimmed, non-empty.
// Blank lines and Markdown code fences are dropped silently; lines with
// interior whitespace are recorded as rejected. A response yielding no
// candidates at all is a MalformedResponseError.
func parse(response string) (Result, error) {
	var result Result
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		if strings.ContainsAny(line, " \t") {
			logging.Warn("rejecting malformed classification line: %q", line)
			result.Rejected = append(result.Rejected, line)
			continue
		}
		result.Candidates = append(result.Candidates, line)
	}

	if len(result.Candidates) == 0 {
		return Result{}, &MalformedResponseError{Raw: response}
	}

	logging.Info("classifier suggested %d candidate files", len(result.Candidates))
	return result, nil
}
