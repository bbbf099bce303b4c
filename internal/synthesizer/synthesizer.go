// Package synthesizer turns loaded endpoint sources into the final artifact:
// a Swagger YAML document, Markdown documentation, or new endpoint code.
package synthesizer

import (
	"context"
	"fmt"
	"os"
	"strings"

	"apidocgen/internal/loader"
	"apidocgen/internal/llm"
	"apidocgen/internal/logging"
)

// Kind selects the artifact to synthesize.
type Kind string

const (
	KindSwagger  Kind = "swagger"
	KindMarkdown Kind = "markdown"
	KindEndpoint Kind = "endpoint"
)

// ParseKind maps a CLI format string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case KindSwagger:
		return KindSwagger, nil
	case KindMarkdown:
		return KindMarkdown, nil
	case KindEndpoint:
		return KindEndpoint, nil
	}
	return "", fmt.Errorf("unknown artifact format %q (want swagger, markdown, or endpoint)", s)
}

// Request carries everything one synthesis call needs.
type Request struct {
	Kind Kind
	// Loaded is the verified content map from the loader.
	Loaded loader.Result
	// ProjectFiles is the full scanned file list; only the endpoint
	// template embeds it.
	ProjectFiles []string
	// Description is the operator's description of the desired endpoint;
	// only meaningful for KindEndpoint.
	Description string
	// ContentBudget caps the serialized contents in characters.
	ContentBudget int
	// MaxTokens bounds the model's output length.
	MaxTokens int
}

// Synthesize serializes the (budgeted) content map into the template for the
// requested kind and returns the model's text unmodified. No YAML or
// Markdown validation is performed on the result.
func Synthesize(ctx context.Context, gen llm.Generator, req Request) (string, error) {
	selected := budgetSelect(req.Loaded.Contents, req.Loaded.Order, req.ContentBudget)
	serialized := serializeContents(req.Loaded.Contents, selected)

	var prompt string
	switch req.Kind {
	case KindSwagger:
		prompt = strings.Replace(swaggerPrompt, "<FILE CONTENTS>", serialized, 1)
	case KindMarkdown:
		prompt = strings.Replace(markdownPrompt, "<FILE CONTENTS>", serialized, 1)
	case KindEndpoint:
		prompt = strings.Replace(endpointPrompt, "<PATHS>", strings.Join(req.ProjectFiles, "\n"), 1)
		prompt = strings.Replace(prompt, "<DESCRIPTION>", req.Description, 1)
		prompt = strings.Replace(prompt, "<FILE CONTENTS>", serialized, 1)
	default:
		return "", fmt.Errorf("unknown artifact kind %q", req.Kind)
	}

	logging.Info("synthesizing %s artifact from %d files", req.Kind, len(selected))
	artifact, err := gen.Generate(ctx, prompt, req.MaxTokens)
	if err != nil {
		return "", fmt.Errorf("artifact synthesis failed: %w", err)
	}
	return artifact, nil
}

// serializeContents renders the selected entries as "path:\ncontent" blocks
// in load order.
func serializeContents(contents map[string]string, order []string) string {
	var b strings.Builder
	for i, path := range order {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(path)
		b.WriteString(":\n")
		b.WriteString(contents[path])
	}
	return b.String()
}

// WriteArtifact persists the artifact text to path. Reading the file back
// yields byte-identical content.
func WriteArtifact(path, artifact string) error {
	if err := os.WriteFile(path, []byte(artifact), 0644); err != nil {
		return fmt.Errorf("failed to write artifact to %s: %w", path, err)
	}
	logging.Info("artifact written to %s", path)
	return nil
}
