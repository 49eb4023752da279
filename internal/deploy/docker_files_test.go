package deploy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/planestic/ud-assistant/internal/config"
)

func TestDockerfileContainsHealthcheck(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("..", "..", "Dockerfile"))
	if err != nil {
		t.Fatalf("read Dockerfile: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "HEALTHCHECK") || !strings.Contains(text, "/api/status") {
		t.Fatalf("expected Dockerfile to probe /api/status")
	}
	if !strings.Contains(text, "CMD [\"serve\", \"--port\", \"18080\"]") {
		t.Fatalf("expected Dockerfile default command to serve the web ui")
	}
}

func TestComposeContainsHealthcheck(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("..", "..", "docker-compose.yml"))
	if err != nil {
		t.Fatalf("read docker-compose.yml: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "healthcheck:") {
		t.Fatalf("expected compose file to include healthcheck")
	}
	if !strings.Contains(text, "ud-assistant:") {
		t.Fatalf("expected compose file to include the ud-assistant service")
	}
	for _, env := range []string{"TAVILY_API_KEY", "DEEPSEEK_API_KEY"} {
		if !strings.Contains(text, env) {
			t.Fatalf("expected compose file to pass %s", env)
		}
	}
}

func TestExampleConfigLoads(t *testing.T) {
	cfg, err := config.LoadFromPath(filepath.Join("..", "..", "config.example.yaml"))
	if err != nil {
		t.Fatalf("load example config: %v", err)
	}
	def := config.DefaultConfig()
	if cfg.BotType != def.BotType || cfg.WebSearch.Provider != "tavily" {
		t.Fatalf("unexpected example config: bot=%q provider=%q", cfg.BotType, cfg.WebSearch.Provider)
	}
	if len(cfg.WebSearch.IncludeDomains) != 1 || cfg.WebSearch.IncludeDomains[0] != cfg.Organization.Domain {
		t.Fatalf("expected the organization domain to be searched, got %v", cfg.WebSearch.IncludeDomains)
	}
	if cfg.Web.Port != 18080 {
		t.Fatalf("example port should match the Dockerfile, got %d", cfg.Web.Port)
	}
}
