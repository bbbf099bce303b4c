package synthesizer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"apidocgen/internal/loader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type fakeGenerator struct {
	response  string
	err       error
	prompt    string
	maxTokens int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	f.prompt = prompt
	f.maxTokens = maxTokens
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func loadedFixture() loader.Result {
	return loader.Result{
		Contents: map[string]string{
			"/proj/app.py": "@app.route('/users')\ndef users(): ...",
		},
		Order: []string{"/proj/app.py"},
	}
}

const sampleSpec = `openapi: 3.0.0
info:
  title: Users API
  version: 1.0.0
paths:
  /users:
    get:
      responses:
        '200':
          description: OK
`

func TestSynthesize_SwaggerPromptCarriesContents(t *testing.T) {
	gen := &fakeGenerator{response: sampleSpec}

	artifact, err := Synthesize(context.Background(), gen, Request{
		Kind:      KindSwagger,
		Loaded:    loadedFixture(),
		MaxTokens: 10000,
	})
	require.NoError(t, err)

	// The artifact is the model's text, unmodified.
	assert.Equal(t, sampleSpec, artifact)

	assert.Contains(t, gen.prompt, "/proj/app.py")
	assert.Contains(t, gen.prompt, "@app.route('/users')")
	assert.NotContains(t, gen.prompt, "<FILE CONTENTS>")
	assert.Equal(t, 10000, gen.maxTokens)

	// The generated spec round-trips as YAML, same as the served artifact.
	var parsed map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(artifact), &parsed))
	assert.Equal(t, "3.0.0", parsed["openapi"])
}

func TestSynthesize_MarkdownKind(t *testing.T) {
	gen := &fakeGenerator{response: "## GET /users\nReturns all users."}

	artifact, err := Synthesize(context.Background(), gen, Request{
		Kind:      KindMarkdown,
		Loaded:    loadedFixture(),
		MaxTokens: 10000,
	})
	require.NoError(t, err)
	assert.Contains(t, artifact, "## GET /users")
	assert.Contains(t, gen.prompt, "Markdown")
}

func TestSynthesize_EndpointKindFillsAllSlots(t *testing.T) {
	gen := &fakeGenerator{response: "def delete_user_agents(): ..."}

	_, err := Synthesize(context.Background(), gen, Request{
		Kind:         KindEndpoint,
		Loaded:       loadedFixture(),
		ProjectFiles: []string{"/proj/app.py", "/proj/util.py"},
		Description:  "delete user agents from all devices",
		MaxTokens:    10000,
	})
	require.NoError(t, err)

	assert.Contains(t, gen.prompt, "/proj/util.py")
	assert.Contains(t, gen.prompt, "delete user agents from all devices")
	assert.NotContains(t, gen.prompt, "<PATHS>")
	assert.NotContains(t, gen.prompt, "<DESCRIPTION>")
	assert.NotContains(t, gen.prompt, "<FILE CONTENTS>")
}

func TestSynthesize_BudgetTrimsPrompt(t *testing.T) {
	loaded := loader.Result{
		Contents: map[string]string{
			"/proj/small.py": "tiny",
			"/proj/huge.py":  string(make([]byte, 5000)),
		},
		Order: []string{"/proj/small.py", "/proj/huge.py"},
	}
	gen := &fakeGenerator{response: "ok"}

	_, err := Synthesize(context.Background(), gen, Request{
		Kind:          KindSwagger,
		Loaded:        loaded,
		ContentBudget: 100,
		MaxTokens:     10000,
	})
	require.NoError(t, err)

	assert.Contains(t, gen.prompt, "/proj/small.py")
	assert.NotContains(t, gen.prompt, "/proj/huge.py")
}

func TestSynthesize_UnknownKind(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	_, err := Synthesize(context.Background(), gen, Request{Kind: Kind("pdf"), Loaded: loadedFixture()})
	require.Error(t, err)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
		wantErr  bool
	}{
		{"swagger", KindSwagger, false},
		{"SWAGGER", KindSwagger, false},
		{"markdown", KindMarkdown, false},
		{"endpoint", KindEndpoint, false},
		{"pdf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		kind, err := ParseKind(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
		} else {
			require.NoError(t, err, "input %q", tt.input)
			assert.Equal(t, tt.expected, kind)
		}
	}
}

func TestWriteArtifact_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api_documentation_swagger.yaml")

	require.NoError(t, WriteArtifact(path, sampleSpec))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte(sampleSpec), data, "written artifact must read back byte-identical")
}
