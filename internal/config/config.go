package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/planestic/ud-assistant/internal/logger"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath overrides config file discovery.
	EnvConfigPath = "UD_ASSISTANT_CONFIG"

	appDirName     = "ud-assistant"
	configFileName = "config.yaml"
)

var (
	exeDirCache string
)

// getExecutableDir returns the directory where the executable is located
func getExecutableDir() string {
	if exeDirCache != "" {
		return exeDirCache
	}
	execPath, err := os.Executable()
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	exeDirCache = filepath.Dir(execPath)
	return exeDirCache
}

type Config struct {
	Logging      LoggingConfig   `yaml:"logging"`
	WebSearch    WebSearchConfig `yaml:"websearch"`
	Ranking      RankingConfig   `yaml:"ranking"`
	Context      ContextConfig   `yaml:"context"`
	Organization OrgConfig       `yaml:"organization"`
	BotType      string          `yaml:"bot_type"` // "deepseek", "llama" or "claude"
	BotConfig    BotConfigs      `yaml:"bot_config"`
	Web          WebConfig       `yaml:"web"`
	Platforms    PlatformConfig  `yaml:"platforms,omitempty"`
	Workers      int             `yaml:"workers"`
}

// WebSearchConfig mirrors the search provider parameters. Topic, TimeRange,
// Days, StartDate and EndDate are optional; an empty value means "not pinned".
type WebSearchConfig struct {
	Provider        string   `yaml:"provider"`
	APIKey          string   `yaml:"api_key,omitempty"`
	BaseURL         string   `yaml:"base_url,omitempty"`
	IncludeDomains  []string `yaml:"include_domains"`
	Country         string   `yaml:"country"`
	MaxResults      int      `yaml:"max_results"`
	ChunksPerSource int      `yaml:"chunks_per_source"`
	SearchDepth     string   `yaml:"search_depth"` // "basic" or "advanced"
	Topic           string   `yaml:"topic,omitempty"`
	TimeRange       string   `yaml:"time_range,omitempty"`
	Days            int      `yaml:"days,omitempty"`
	StartDate       string   `yaml:"start_date,omitempty"`
	EndDate         string   `yaml:"end_date,omitempty"`
	TimeoutSeconds  int      `yaml:"timeout_seconds,omitempty"`
	MaxAttempts     int      `yaml:"max_attempts,omitempty"`
	BaseWaitMillis  int      `yaml:"base_wait_ms,omitempty"`
}

// HasExplicitTimeFilter reports whether the configuration pins a time window.
func (c WebSearchConfig) HasExplicitTimeFilter() bool {
	return c.TimeRange != "" || c.Days > 0 || c.StartDate != "" || c.EndDate != ""
}

type RankingConfig struct {
	Mode string `yaml:"mode"` // "basic" or "extended"
}

// ContextConfig overrides the packing preset of the selected bot. Zero values
// keep the preset.
type ContextConfig struct {
	MaxLength int `yaml:"max_length,omitempty"`
	TopBudget int `yaml:"top_budget,omitempty"`
	MinTail   int `yaml:"min_tail,omitempty"`
}

// RewriteRule appends Suffix to the search query when any keyword occurs in
// the normalized query.
type RewriteRule struct {
	Keywords []string `yaml:"keywords"`
	Suffix   string   `yaml:"suffix"`
}

// OrgConfig describes the organization answers are scoped to. The keyword
// tables are shared by query rewriting and result ranking.
type OrgConfig struct {
	Name           string        `yaml:"name"`
	ShortName      string        `yaml:"short_name"`
	Domain         string        `yaml:"domain"`
	HelpURL        string        `yaml:"help_url,omitempty"`
	TicketURL      string        `yaml:"ticket_url,omitempty"`
	RewriteRules   []RewriteRule `yaml:"rewrite_rules"`
	IntentKeywords []string      `yaml:"intent_keywords"`
	FreshnessWords []string      `yaml:"freshness_words"`
	RoleWords      []string      `yaml:"role_words"`
	KnownCampuses  []string      `yaml:"known_campuses,omitempty"`
}

// ProviderConfig configures one downstream model endpoint.
type ProviderConfig struct {
	APIURL         string  `yaml:"api_url,omitempty"`
	APIKey         string  `yaml:"api_key,omitempty"`
	Model          string  `yaml:"model,omitempty"`
	Temperature    float32 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds,omitempty"`
}

type BotConfigs struct {
	DeepSeek ProviderConfig `yaml:"deepseek"`
	Llama    ProviderConfig `yaml:"llama"`
	Claude   ProviderConfig `yaml:"claude"`
}

// Provider returns the settings for the named bot type.
func (b BotConfigs) Provider(botType string) (ProviderConfig, bool) {
	switch botType {
	case "deepseek":
		return b.DeepSeek, true
	case "llama":
		return b.Llama, true
	case "claude":
		return b.Claude, true
	default:
		return ProviderConfig{}, false
	}
}

type WebConfig struct {
	Port int `yaml:"port"`
}

type PlatformConfig struct {
	Telegram TelegramConfig `yaml:"telegram,omitempty"`
	Discord  DiscordConfig  `yaml:"discord,omitempty"`
}

type TelegramConfig struct {
	Token string `yaml:"token,omitempty"`
	Debug bool   `yaml:"debug,omitempty"`
}

type DiscordConfig struct {
	Token string `yaml:"token,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		WebSearch: WebSearchConfig{
			Provider:        "tavily",
			IncludeDomains:  []string{},
			Country:         "colombia",
			MaxResults:      3,
			ChunksPerSource: 3,
			SearchDepth:     "advanced",
			TimeoutSeconds:  60,
			MaxAttempts:     3,
			BaseWaitMillis:  1000,
		},
		Ranking: RankingConfig{
			Mode: "extended",
		},
		Organization: DefaultOrganization(),
		BotType:      "deepseek",
		BotConfig: BotConfigs{
			DeepSeek: ProviderConfig{
				APIURL:         "https://api.deepseek.com/v1",
				Model:          "deepseek-chat",
				Temperature:    0.3,
				MaxTokens:      500,
				TimeoutSeconds: 30,
			},
			Llama: ProviderConfig{
				APIURL:         "http://localhost:11434/api/generate",
				Model:          "llama3",
				Temperature:    0.7,
				MaxTokens:      500,
				TimeoutSeconds: 30,
			},
			Claude: ProviderConfig{
				Model:          "claude-3-5-haiku-latest",
				Temperature:    0.3,
				MaxTokens:      500,
				TimeoutSeconds: 30,
			},
		},
		Web: WebConfig{
			Port: 18080,
		},
		Workers: 8,
	}
}

// DefaultOrganization returns the Universidad Distrital profile.
func DefaultOrganization() OrgConfig {
	return OrgConfig{
		Name:      "Universidad Distrital Francisco José de Caldas",
		ShortName: "UD",
		Domain:    "udistrital.edu.co",
		HelpURL:   "https://planestic.udistrital.edu.co/",
		TicketURL: "https://mesadeayuda.planestic.udistrital.edu.co/",
		RewriteRules: []RewriteRule{
			{
				Keywords: []string{"rector", "vicerrector", "directivo", "directivos", "consejo superior"},
				Suffix:   "rector site:udistrital.edu.co Universidad Distrital",
			},
			{
				Keywords: []string{"calendario academico"},
				Suffix:   "calendario académico site:udistrital.edu.co Universidad Distrital",
			},
			{
				Keywords: []string{"admisiones", "inscripcion", "inscripciones"},
				Suffix:   "admisiones site:udistrital.edu.co Universidad Distrital",
			},
			{
				Keywords: []string{"ingenieria", "ingenierias", "carreras", "programas", "oferta academica"},
				Suffix:   "programas facultades carreras site:udistrital.edu.co Universidad Distrital",
			},
			{
				Keywords: []string{"sedes", "sede", "campus"},
				Suffix:   "sedes campus principales ubicaciones site:udistrital.edu.co Universidad Distrital",
			},
		},
		IntentKeywords: []string{
			"rector", "vicerrector", "directivo", "consejo superior",
			"calendario academico", "admisiones",
			"programas", "carreras", "ingenieria", "ingenierias", "oferta academica",
			"sedes", "sede", "campus",
		},
		FreshnessWords: []string{"boletin", "comunicado", "noticia", "noticias", "actualizacion", "nuevo", "nueva", "2025", "2026"},
		RoleWords:      []string{"universidad distrital", "udistrital", "rector", "rectoria", "vicerrector", "consejo superior", "decano"},
		KnownCampuses:  []string{"Macarena A/B", "Sabio Caldas", "Aduanilla de Paiba", "Tecnológica"},
	}
}

// ResolvePath picks the configuration file: explicit path, then the
// UD_ASSISTANT_CONFIG environment variable, then config.yaml next to the
// executable, then the XDG config directory. It returns "" when nothing exists.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	exeCfg := filepath.Join(getExecutableDir(), configFileName)
	if _, err := os.Stat(exeCfg); err == nil {
		return exeCfg
	}
	if p, err := xdg.SearchConfigFile(filepath.Join(appDirName, configFileName)); err == nil {
		return p
	}
	return ""
}

// LoadFromPath reads and parses the file at path. Files with a .json
// extension are decoded as JSON first so tab indentation is accepted.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		if data, err = jsonToYAML(data); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// Load returns the configuration at path, falling back to defaults when the
// file is missing or unreadable. Environment secrets are applied either way.
func Load(path string) *Config {
	var cfg *Config
	if path == "" {
		logger.Info("[Config] No configuration file found, using defaults")
		cfg = DefaultConfig()
	} else {
		loaded, err := LoadFromPath(path)
		if err != nil {
			logger.Warn("[Config] Could not read search configuration from %s: %v", path, err)
			cfg = DefaultConfig()
		} else {
			logger.Info("[Config] Loaded configuration from %s", path)
			cfg = loaded
		}
	}
	cfg.applyEnv()
	return cfg
}

// applyEnv lets environment variables override secrets from the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("TAVILY_API_KEY"); v != "" {
		c.WebSearch.APIKey = v
	}
	if v := os.Getenv("DEEPSEEK_API_KEY"); v != "" {
		c.BotConfig.DeepSeek.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.BotConfig.Claude.APIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Platforms.Telegram.Token = v
	}
	if v := os.Getenv("DISCORD_BOT_TOKEN"); v != "" {
		c.Platforms.Discord.Token = v
	}
	if v := os.Getenv("BOT_TYPE"); v != "" {
		c.BotType = v
	}
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	ws := &c.WebSearch

	ws.SearchDepth = strings.ToLower(strings.TrimSpace(ws.SearchDepth))
	if ws.SearchDepth != "basic" && ws.SearchDepth != "advanced" {
		if ws.SearchDepth != "" {
			logger.Warn("[Config] Unknown search_depth %q, using %q", ws.SearchDepth, def.WebSearch.SearchDepth)
		}
		ws.SearchDepth = def.WebSearch.SearchDepth
	}
	ws.Topic = strings.ToLower(strings.TrimSpace(ws.Topic))
	if ws.Topic != "" && ws.Topic != "general" && ws.Topic != "news" {
		logger.Warn("[Config] Unknown topic %q, ignoring", ws.Topic)
		ws.Topic = ""
	}
	ws.TimeRange = strings.ToLower(strings.TrimSpace(ws.TimeRange))
	switch ws.TimeRange {
	case "", "day", "week", "month", "year":
	default:
		logger.Warn("[Config] Unknown time_range %q, ignoring", ws.TimeRange)
		ws.TimeRange = ""
	}
	ws.Provider = strings.ToLower(strings.TrimSpace(ws.Provider))
	if ws.Provider == "" {
		ws.Provider = def.WebSearch.Provider
	}
	if ws.MaxResults <= 0 {
		ws.MaxResults = def.WebSearch.MaxResults
	}
	if ws.ChunksPerSource <= 0 {
		ws.ChunksPerSource = def.WebSearch.ChunksPerSource
	}
	if ws.MaxAttempts <= 0 {
		ws.MaxAttempts = def.WebSearch.MaxAttempts
	}
	if ws.BaseWaitMillis <= 0 {
		ws.BaseWaitMillis = def.WebSearch.BaseWaitMillis
	}
	if ws.TimeoutSeconds <= 0 {
		ws.TimeoutSeconds = def.WebSearch.TimeoutSeconds
	}
	if ws.IncludeDomains == nil {
		ws.IncludeDomains = []string{}
	}

	if c.Ranking.Mode != "basic" && c.Ranking.Mode != "extended" {
		c.Ranking.Mode = def.Ranking.Mode
	}
	if c.Organization.Domain == "" {
		c.Organization = def.Organization
	}
	if c.BotType == "" {
		c.BotType = def.BotType
	}
	if c.Workers <= 0 {
		c.Workers = def.Workers
	}
	if c.Web.Port <= 0 {
		c.Web.Port = def.Web.Port
	}
}

func jsonToYAML(data []byte) ([]byte, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}
