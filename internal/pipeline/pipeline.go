// Package pipeline wires the four stages together: scan the project,
// classify endpoint files, load their contents, synthesize the artifact.
// Execution is strictly sequential; the text-generation service is called
// exactly twice per run.
package pipeline

import (
	"context"
	"fmt"

	"apidocgen/internal/classifier"
	"apidocgen/internal/config"
	"apidocgen/internal/loader"
	"apidocgen/internal/llm"
	"apidocgen/internal/logging"
	"apidocgen/internal/scanner"
	"apidocgen/internal/synthesizer"
)

// Request describes one pipeline run.
type Request struct {
	// ProjectPath is the root of the project to analyze.
	ProjectPath string
	// Kind selects the artifact to produce.
	Kind synthesizer.Kind
	// Description is the desired functionality for KindEndpoint runs.
	Description string
	// OutputPath overrides the configured artifact filename. Empty means
	// use the configured default; "-" suppresses persistence entirely.
	OutputPath string
}

// Result is a completed run.
type Result struct {
	// Artifact is the synthesized text, exactly as the model returned it.
	Artifact string
	// OutputPath is where the artifact was written; empty when persistence
	// was suppressed.
	OutputPath string
	// Skipped are the loader's per-candidate diagnostics.
	Skipped []loader.Skip
	// RejectedLines are classifier response lines dropped by the grammar.
	RejectedLines []string
}

// Pipeline executes runs against a fixed configuration and generator.
type Pipeline struct {
	cfg *config.Config
	gen llm.Generator
}

// New creates a pipeline. The generator is passed in explicitly so tests can
// substitute a fake for the hosted service.
func New(cfg *config.Config, gen llm.Generator) *Pipeline {
	return &Pipeline{cfg: cfg, gen: gen}
}

// Run executes the four stages. Any error means no artifact file was
// written; per-file skips during loading are diagnostics on the Result, not
// errors.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	files, err := scanner.Scan(req.ProjectPath)
	if err != nil {
		return Result{}, err
	}

	classified, err := classifier.Classify(ctx, p.gen, files, p.cfg.LLM.ClassifyMaxTokens)
	if err != nil {
		return Result{}, err
	}

	loaded := loader.Load(classified.Candidates, p.cfg.Pipeline.Extensions)

	artifact, err := synthesizer.Synthesize(ctx, p.gen, synthesizer.Request{
		Kind:          req.Kind,
		Loaded:        loaded,
		ProjectFiles:  files,
		Description:   req.Description,
		ContentBudget: p.cfg.Pipeline.ContentBudget,
		MaxTokens:     p.cfg.LLM.SynthesisMaxTokens,
	})
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Artifact:      artifact,
		Skipped:       loaded.Skipped,
		RejectedLines: classified.Rejected,
	}

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = p.cfg.Pipeline.Output
	}
	if outputPath != "-" {
		if err := synthesizer.WriteArtifact(outputPath, artifact); err != nil {
			return Result{}, fmt.Errorf("failed to persist artifact: %w", err)
		}
		result.OutputPath = outputPath
	} else {
		logging.Debug("artifact persistence suppressed")
	}

	return result, nil
}
