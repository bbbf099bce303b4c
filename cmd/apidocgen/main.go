package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"apidocgen/internal/classifier"
	"apidocgen/internal/config"
	"apidocgen/internal/docs"
	"apidocgen/internal/llm"
	"apidocgen/internal/logging"
	"apidocgen/internal/pipeline"
	"apidocgen/internal/scanner"
	"apidocgen/internal/synthesizer"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// docs / endpoint flags
	format      string
	outputFile  string
	noSave      bool
	description string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "apidocgen",
	Short: "LLM-assisted API documentation generator",
	Long: `apidocgen scans a local project, asks a text-generation service which
files define HTTP API endpoints, and synthesizes an artifact from them:
a Swagger/OpenAPI YAML specification, Markdown documentation, or the
source code for a new endpoint.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		return logging.Init(level, cfg.Logging.Development)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

var docsCmd = &cobra.Command{
	Use:   "docs [project-path]",
	Short: "Generate API documentation for a project",
	Long: `Scans the project, identifies endpoint files via the text-generation
service, and synthesizes documentation from their contents.

The artifact is written to the configured output file (default
api_documentation_swagger.yaml) and logged.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocs,
}

var endpointCmd = &cobra.Command{
	Use:   "endpoint [project-path]",
	Short: "Generate source code for a new API endpoint",
	Long: `Scans the project, identifies endpoint files, and asks the
text-generation service to write a new endpoint matching the given
description, following the conventions of the detected framework.

The generated code is logged; use --output to persist it.`,
	Args: cobra.ExactArgs(1),
	RunE: runEndpoint,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generated documentation with a Swagger UI",
	Long: `Serves the previously generated OpenAPI YAML artifact together with a
Swagger UI page. Run 'apidocgen docs' first to produce the artifact.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ./apidocgen.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	docsCmd.Flags().StringVar(&format, "format", "swagger", "Artifact format: swagger or markdown")
	docsCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for the artifact")
	docsCmd.Flags().BoolVar(&noSave, "no-save", false, "Log the artifact without writing a file")

	endpointCmd.Flags().StringVarP(&description, "description", "d", "", "Description of the desired endpoint functionality")
	endpointCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for the generated code")
	_ = endpointCmd.MarkFlagRequired("description")

	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(endpointCmd)
	rootCmd.AddCommand(serveCmd)
}

func runDocs(cmd *cobra.Command, args []string) error {
	kind, err := synthesizer.ParseKind(format)
	if err != nil {
		return err
	}
	if kind == synthesizer.KindEndpoint {
		return fmt.Errorf("use the endpoint command to generate endpoint code")
	}

	req := pipeline.Request{
		ProjectPath: args[0],
		Kind:        kind,
		OutputPath:  outputFile,
	}
	if noSave {
		req.OutputPath = "-"
	}

	result, err := runPipeline(cmd.Context(), req)
	if err != nil {
		return err
	}

	logging.Info("generated documentation:\n%s", result.Artifact)
	if result.OutputPath != "" {
		host := cfg.Server.Host
		if host == "0.0.0.0" || host == "" {
			host = "localhost"
		}
		logging.Info("navigate to http://%s:%d/swagger for the API catalogue (run `apidocgen serve`)", host, cfg.Server.Port)
	}
	return nil
}

func runEndpoint(cmd *cobra.Command, args []string) error {
	req := pipeline.Request{
		ProjectPath: args[0],
		Kind:        synthesizer.KindEndpoint,
		Description: description,
		OutputPath:  "-",
	}
	if outputFile != "" {
		req.OutputPath = outputFile
	}

	result, err := runPipeline(cmd.Context(), req)
	if err != nil {
		return err
	}

	logging.Info("code for new endpoint:\n%s", result.Artifact)
	return nil
}

func runPipeline(ctx context.Context, req pipeline.Request) (pipeline.Result, error) {
	if cfg.LLM.APIKey == "" {
		return pipeline.Result{}, fmt.Errorf("no API key configured: set OPENAI_API_KEY or llm.api_key")
	}

	gen := llm.NewClient(cfg.LLM)
	result, err := pipeline.New(cfg, gen).Run(ctx, req)
	if err != nil {
		return pipeline.Result{}, describeFailure(err)
	}
	return result, nil
}

// describeFailure maps the pipeline's error taxonomy to operator-facing
// messages.
func describeFailure(err error) error {
	var malformed *classifier.MalformedResponseError
	switch {
	case errors.Is(err, scanner.ErrNotFound):
		return fmt.Errorf("project path does not exist on the system: %w", err)
	case errors.As(err, &malformed):
		return fmt.Errorf("the model's classification response was unusable: %w", err)
	case llm.IsServiceError(err):
		return fmt.Errorf("text-generation service failure: %w", err)
	default:
		return err
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	handler := docs.NewHandler(cfg.Server, cfg.Pipeline.Output)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	logging.Info("serving API documentation on http://%s/swagger", addr)
	return http.ListenAndServe(addr, handler.Mux())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Error("%v", err)
		logging.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
