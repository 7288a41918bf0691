package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultLLMModel is used when no model is configured anywhere.
	DefaultLLMModel = "gpt-4o-mini"

	// DefaultEngineBin is the diff/patch binary invoked when no override
	// is configured. jd speaks RFC 6902 on both the diff and patch sides.
	DefaultEngineBin = "jd"

	// DefaultChangelogPath is the changelog file updated after each run.
	DefaultChangelogPath = "CHANGELOG.md"
)

// Settings holds the fully resolved configuration for one pipeline run.
// Resolution order per field: CLI flag, environment variable, config file,
// built-in default.
type Settings struct {
	BaseDir     string
	FromVersion string
	ToVersion   string

	DryRun  bool
	Verbose bool

	LLMEndpoint string
	LLMAPIKey   string
	LLMModel    string

	WebhookURL   string
	WebhookToken string

	ChangelogPath string
	EngineBin     string
}

// FileSettings is the shape of the optional .patchtrail.yaml config file.
// Secret-bearing fields support ${ENV_VAR} expansion.
type FileSettings struct {
	LLM struct {
		Endpoint string `yaml:"endpoint"`
		APIKey   string `yaml:"api_key"`
		Model    string `yaml:"model"`
	} `yaml:"llm"`
	Webhook struct {
		URL   string `yaml:"url"`
		Token string `yaml:"token"`
	} `yaml:"webhook"`
	Engine    string `yaml:"engine"`
	Changelog string `yaml:"changelog"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Resolve fills empty fields from environment variables, then from the given
// config file settings (may be nil), then from built-in defaults.
func (s *Settings) Resolve(file *FileSettings) {
	fillFromEnv(&s.LLMEndpoint, "PATCHTRAIL_LLM_ENDPOINT")
	fillFromEnv(&s.LLMAPIKey, "PATCHTRAIL_LLM_API_KEY")
	fillFromEnv(&s.LLMModel, "PATCHTRAIL_LLM_MODEL")
	fillFromEnv(&s.WebhookURL, "PATCHTRAIL_WEBHOOK_URL")
	fillFromEnv(&s.WebhookToken, "PATCHTRAIL_WEBHOOK_TOKEN")
	fillFromEnv(&s.EngineBin, "PATCHTRAIL_ENGINE")

	if file != nil {
		fill(&s.LLMEndpoint, file.LLM.Endpoint)
		fill(&s.LLMAPIKey, expandEnv(file.LLM.APIKey))
		fill(&s.LLMModel, file.LLM.Model)
		fill(&s.WebhookURL, file.Webhook.URL)
		fill(&s.WebhookToken, expandEnv(file.Webhook.Token))
		fill(&s.EngineBin, file.Engine)
		fill(&s.ChangelogPath, file.Changelog)
	}

	fill(&s.BaseDir, ".")
	fill(&s.LLMModel, DefaultLLMModel)
	fill(&s.EngineBin, DefaultEngineBin)
	fill(&s.ChangelogPath, DefaultChangelogPath)
}

// LoadFileSettings reads and parses a yaml config file.
func LoadFileSettings(path string) (*FileSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var fs FileSettings
	if unmarshalErr := yaml.Unmarshal(data, &fs); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, unmarshalErr)
	}

	return &fs, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{"."}
	if homeDir != "" {
		locations = append(locations, homeDir, filepath.Join(homeDir, ".config"))
	}

	patterns := []string{
		".patchtrail.yaml",
		".patchtrail.yml",
		"patchtrail.yaml",
		"patchtrail.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// expandEnv expands ${ENV_VAR} references inside a config value.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

func fillFromEnv(target *string, key string) {
	if *target == "" {
		*target = os.Getenv(key)
	}
}

func fill(target *string, value string) {
	if *target == "" {
		*target = value
	}
}
