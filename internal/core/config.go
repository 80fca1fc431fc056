package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/door43-tools/tanotion/internal/gitea"
	"github.com/door43-tools/tanotion/internal/notion"
	"github.com/door43-tools/tanotion/pkg/resync"
)

// ConfigFilename is looked up in the working directory.
const ConfigFilename = "tanotion.toml"

var (
	// Lazy-load configuration and ensure a single read
	configOnce      resync.Once
	configSingleton *Config
)

// Note: Fields must be public for toml package to unmarshall
type ConfigFile struct {
	Gitea     ConfigGitea
	Notion    ConfigNotion
	Migration ConfigMigration
}

type ConfigGitea struct {
	URL   string
	Owner string
	Repo  string
	Ref   string
	// Local points at a checkout on disk; when set, no Gitea requests
	// are made.
	Local string
}

type ConfigNotion struct {
	URL string
	// RequestDelayMs paces API calls to stay inside the rate limit.
	RequestDelayMs int
}

type ConfigMigration struct {
	// Manuals lists the manual directories to migrate, in order.
	Manuals []string
	// MaxBlocks truncates article bodies longer than this many blocks.
	MaxBlocks int
	// LogFile duplicates log output to a file when set.
	LogFile string
	// CacheFile persists the page cache between runs.
	CacheFile string
}

// Config is the runtime configuration: the optional tanotion.toml merged
// over defaults, plus credentials from the environment.
type Config struct {
	ConfigFile

	NotionAPIKey       string
	GiteaAPIKey        string
	NotionParentPageID string
	NotionDatabaseID   string

	// DryRun replaces the Notion client with a local recording sink.
	DryRun bool
}

func defaultConfigFile() ConfigFile {
	return ConfigFile{
		Gitea: ConfigGitea{
			URL:   "https://git.door43.org",
			Owner: "unfoldingWord",
			Repo:  "en_ta",
			Ref:   "master",
		},
		Notion: ConfigNotion{
			URL:            notion.DefaultBaseURL,
			RequestDelayMs: 350,
		},
		Migration: ConfigMigration{
			Manuals:   []string{"intro", "process", "translate", "checking"},
			MaxBlocks: 1000,
			LogFile:   "migration.log",
			CacheFile: "page_cache.json",
		},
	}
}

// CurrentConfig reads the configuration once. A malformed config file is
// the only fatal startup error; missing credentials are checked lazily by
// the commands that need them.
func CurrentConfig() *Config {
	configOnce.Do(func() {
		config, err := ReadConfigFromDirectory(".")
		if err != nil {
			CurrentLogger().Fatalf("Unable to read configuration: %v", err)
		}
		configSingleton = config
	})
	return configSingleton
}

// ReadConfigFromDirectory loads .env and tanotion.toml from the given
// directory. Both files are optional.
func ReadConfigFromDirectory(dir string) (*Config, error) {
	// .env overrides nothing already exported in the environment.
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	file := defaultConfigFile()
	raw, err := os.ReadFile(filepath.Join(dir, ConfigFilename))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		if err := toml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("%s: %w", ConfigFilename, err)
		}
	}

	return &Config{
		ConfigFile:         file,
		NotionAPIKey:       os.Getenv("NOTION_API_KEY"),
		GiteaAPIKey:        os.Getenv("GITEA_API_KEY"),
		NotionParentPageID: os.Getenv("NOTION_PARENT_PAGE_ID"),
		NotionDatabaseID:   os.Getenv("NOTION_DATABASE_ID"),
	}, nil
}

// RequireNotionCredentials aborts commands that write to the live API
// when the integration token is missing.
func (c *Config) RequireNotionCredentials() error {
	if c.NotionAPIKey == "" {
		return errors.New("NOTION_API_KEY is not set (put it in the environment or a .env file)")
	}
	return nil
}

// RequestDelay returns the configured pacing between Notion requests.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.Notion.RequestDelayMs) * time.Millisecond
}

// NewSource returns the corpus reader: the local checkout when
// configured, the Gitea API otherwise.
func (c *Config) NewSource() *gitea.Client {
	if c.Gitea.Local != "" {
		return gitea.NewLocalClient(c.Gitea.Local)
	}
	return gitea.NewClient(c.Gitea.URL, c.GiteaAPIKey, c.Gitea.Owner, c.Gitea.Repo, c.Gitea.Ref)
}

// NewSink returns the Notion write surface: a recording sink in dry-run
// mode, the REST client otherwise.
func (c *Config) NewSink() notion.Sink {
	if c.DryRun {
		return notion.NewDryRunSink()
	}
	return notion.NewClient(c.Notion.URL, c.NotionAPIKey, c.RequestDelay())
}
