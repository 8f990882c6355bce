package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/datatug/filechooser/pkg/fsutils"
	"github.com/joho/godotenv"
)

const UserDir = "~/.filechooser"

const settingsFileName = "settings.yaml"
const logFileName = "filechooser.log"

const envPrefix = "FILECHOOSER_"

var osUserHomeDir = os.UserHomeDir
var osLookupEnv = os.LookupEnv

// S3 holds credentials for s3:// stores. Empty keys use the default AWS chain.
type S3 struct {
	Endpoint  string `yaml:"endpoint,omitempty"`
	Region    string `yaml:"region,omitempty"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
}

type Settings struct {
	// Store is the URL of the browsed store: file:///path, http(s)://, ftp://, s3://bucket/prefix.
	Store         string        `yaml:"store,omitempty"`
	Root          string        `yaml:"root,omitempty"`
	LogLevel      string        `yaml:"log_level,omitempty"`
	LogFormat     string        `yaml:"log_format,omitempty"`
	LogFile       string        `yaml:"log_file,omitempty"`
	// FetchWorkers bounds concurrent listings; 0 starts every listing at once.
	FetchWorkers  int           `yaml:"fetch_workers,omitempty"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout,omitempty"`
	ReopenVisited bool          `yaml:"reopen_visited"`
	MetricsAddr   string        `yaml:"metrics_addr,omitempty"`
	S3            S3            `yaml:"s3,omitempty"`
}

func Default() Settings {
	return Settings{
		Store:     "file:///",
		Root:      "/",
		LogLevel:  "info",
		LogFormat: "json",
		LogFile:   filepath.Join(UserDir, logFileName),
	}
}

// GetUserDir returns the expanded settings directory.
func GetUserDir() (string, error) {
	userHomeDir, err := osUserHomeDir()
	if err != nil {
		return UserDir, err
	}
	return filepath.Join(userHomeDir, UserDir[2:]), nil
}

// FilePath returns the default settings file location.
func FilePath() (string, error) {
	dir, err := GetUserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFileName), nil
}

// LoadDotEnv loads .env files into the environment. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads settings from filePath over the defaults and applies FILECHOOSER_* variables.
// A missing file is not an error.
func Load(filePath string) (Settings, error) {
	s := Default()
	if filePath != "" {
		if err := fsutils.ReadYAMLFile(filePath, false, &s); err != nil {
			return s, fmt.Errorf("failed to read settings %s: %w", filePath, err)
		}
	}
	if err := s.applyEnv(); err != nil {
		return s, err
	}
	s.LogFile = fsutils.ExpandHome(s.LogFile)
	return s, s.Validate()
}

func (s *Settings) applyEnv() error {
	str := func(name string, target *string) {
		if v, ok := osLookupEnv(envPrefix + name); ok {
			*target = v
		}
	}
	str("STORE", &s.Store)
	str("ROOT", &s.Root)
	str("LOG_LEVEL", &s.LogLevel)
	str("LOG_FORMAT", &s.LogFormat)
	str("LOG_FILE", &s.LogFile)
	str("METRICS_ADDR", &s.MetricsAddr)
	str("S3_ENDPOINT", &s.S3.Endpoint)
	str("S3_REGION", &s.S3.Region)
	str("S3_ACCESS_KEY", &s.S3.AccessKey)
	str("S3_SECRET_KEY", &s.S3.SecretKey)

	if v, ok := osLookupEnv(envPrefix + "FETCH_WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sFETCH_WORKERS: %w", envPrefix, err)
		}
		s.FetchWorkers = n
	}
	if v, ok := osLookupEnv(envPrefix + "FETCH_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sFETCH_TIMEOUT: %w", envPrefix, err)
		}
		s.FetchTimeout = d
	}
	if v, ok := osLookupEnv(envPrefix + "REOPEN_VISITED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sREOPEN_VISITED: %w", envPrefix, err)
		}
		s.ReopenVisited = b
	}
	return nil
}

func (s Settings) Validate() error {
	if s.Store == "" {
		return errors.New("store is required")
	}
	if s.FetchWorkers < 0 {
		return fmt.Errorf("fetch_workers must not be negative, got %d", s.FetchWorkers)
	}
	if s.FetchTimeout < 0 {
		return fmt.Errorf("fetch_timeout must not be negative, got %v", s.FetchTimeout)
	}
	return nil
}
