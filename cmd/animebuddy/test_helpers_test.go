package main

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"animebuddy/internal/config"
	"animebuddy/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	llm        *testsupport.OpenAIServer
	configPath string
}

var testCatalog = testsupport.Catalog{
	Anime: []testsupport.FixtureAnime{
		{ID: 52991, Title: "Frieren: Beyond Journey's End", Score: 9.3, Episodes: 28, Synopsis: "An elf mage outlives her party.", Studios: []string{"Madhouse"}, Genres: []string{"Adventure", "Drama", "Fantasy"}, Year: 2023},
		{ID: 5114, Title: "Fullmetal Alchemist: Brotherhood", Score: 9.1, Episodes: 64, Synopsis: "Two brothers search for the Philosopher's Stone.", Studios: []string{"Bones"}, Genres: []string{"Action", "Adventure", "Fantasy"}, Year: 2009},
		{ID: 9253, Title: "Steins;Gate", Score: 9.07, Episodes: 24, Synopsis: "A self-proclaimed mad scientist sends messages to the past.", Studios: []string{"White Fox"}, Genres: []string{"Drama", "Sci-Fi"}, Year: 2011},
	},
	Genres:          map[string]int{"Action": 1, "Adventure": 2, "Drama": 8, "Fantasy": 10, "Sci-Fi": 24},
	Recommendations: map[int][]int{52991: {5114, 9253}},
}

// scriptedReplies answers extraction prompts with fixed JSON and every other
// prompt with closing. Closing prompts that mention "broken" fail upstream.
func scriptedReplies(intent, title, usage, closing string) testsupport.ReplyFunc {
	return func(prompt string) (string, int) {
		switch {
		case strings.HasPrefix(prompt, "Classify the intent"):
			return `{"intent": "` + intent + `"}`, 0
		case strings.HasPrefix(prompt, "Identify whether the following text mentions"):
			if title == "" {
				return `{"hasTitle": false, "title": null, "usage": "none"}`, 0
			}
			return "```json\n{\"hasTitle\": true, \"title\": \"" + title + "\", \"usage\": \"" + usage + "\"}\n```", 0
		case strings.HasPrefix(prompt, "Identify the anime genre"):
			return `{"genre": "fantasy"}`, 0
		case strings.HasPrefix(prompt, "Identify the release year"):
			return `{"year": null}`, 0
		case strings.HasPrefix(prompt, "List every anime title"):
			return `{"titles": []}`, 0
		case strings.Contains(prompt, "broken"):
			return "upstream exploded", http.StatusInternalServerError
		default:
			return closing, 0
		}
	}
}

func setupCLITestEnv(t *testing.T, reply testsupport.ReplyFunc, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANIMEBUDDY_LLM_MODEL", "")
	t.Setenv("JIKAN_BASE_URL", "")

	llmServer := testsupport.NewOpenAIServer(t, reply)
	jikanServer := testsupport.NewJikanServer(t, testCatalog)

	opts = append([]testsupport.ConfigOption{
		testsupport.WithLLMServer(llmServer.URL),
		testsupport.WithJikanServer(jikanServer.URL),
	}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	cfg.Logging.Level = "error"

	configPath := filepath.Join(base, "animebuddy.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		llm:        llmServer,
		configPath: configPath,
	}
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
