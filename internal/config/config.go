package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultInboxName is the inbox folder below the vault root.
const DefaultInboxName = "00_Inbox"

const (
	EnvInboxDir  = "INBOXSTAMP_INBOX_DIR"
	EnvVaultRoot = "INBOXSTAMP_VAULT_ROOT"
	EnvInboxName = "INBOXSTAMP_INBOX_NAME"
	EnvConfig    = "INBOXSTAMP_CONFIG"
	EnvDryRun    = "INBOXSTAMP_DRY_RUN"
	EnvVerbose   = "INBOXSTAMP_VERBOSE"
	EnvLogFile   = "INBOXSTAMP_LOG_FILE"
)

type Config struct {
	InboxDir string
	DryRun   bool
	Verbose  bool
	TUI      bool
	// LogFile, when set, receives timestamped log lines instead of stderr.
	LogFile string
}

// Options carries the command line flags. Empty values fall through to the
// environment, then the config file, then the defaults.
type Options struct {
	InboxDir   string
	VaultRoot  string
	InboxName  string
	ConfigPath string
	LogFile    string
	DryRun     bool
	Verbose    bool
	TUI        bool

	// Executable anchors the default inbox; os.Executable is used when empty.
	Executable string
}

// File is the YAML config file.
type File struct {
	Inbox     string `yaml:"inbox"`
	VaultRoot string `yaml:"vault_root"`
	InboxName string `yaml:"inbox_name"`
	LogFile   string `yaml:"log_file"`
	DryRun    bool   `yaml:"dry_run"`
	Verbose   bool   `yaml:"verbose"`
}

func Load(opts Options) (Config, error) {
	configPath := firstNonEmpty(opts.ConfigPath, envOrEmpty(EnvConfig))
	var file File
	if configPath != "" {
		loaded, err := LoadFile(configPath)
		if err != nil {
			return Config{}, err
		}
		file = loaded
	}

	cfg := Config{
		InboxDir: firstNonEmpty(opts.InboxDir, envOrEmpty(EnvInboxDir), file.Inbox),
		DryRun:   opts.DryRun || envTruthy(EnvDryRun) || file.DryRun,
		Verbose:  opts.Verbose || envTruthy(EnvVerbose) || file.Verbose,
		TUI:      opts.TUI,
		LogFile:  firstNonEmpty(opts.LogFile, envOrEmpty(EnvLogFile), file.LogFile),
	}

	if cfg.InboxDir == "" {
		vaultRoot := firstNonEmpty(opts.VaultRoot, envOrEmpty(EnvVaultRoot), file.VaultRoot)
		inboxName := firstNonEmpty(opts.InboxName, envOrEmpty(EnvInboxName), file.InboxName, DefaultInboxName)
		if strings.ContainsAny(inboxName, `/\`) {
			return Config{}, fmt.Errorf("inbox name %q must be a single folder name", inboxName)
		}
		if vaultRoot == "" {
			anchor, err := executableDir(opts.Executable)
			if err != nil {
				return Config{}, err
			}
			vaultRoot = VaultRootFrom(anchor)
		}
		cfg.InboxDir = filepath.Join(vaultRoot, inboxName)
	}

	abs, err := filepath.Abs(cfg.InboxDir)
	if err != nil {
		return Config{}, fmt.Errorf("resolve inbox %q: %w", cfg.InboxDir, err)
	}
	cfg.InboxDir = abs

	if cfg.LogFile != "" {
		logAbs, err := filepath.Abs(cfg.LogFile)
		if err != nil {
			return Config{}, fmt.Errorf("resolve log file %q: %w", cfg.LogFile, err)
		}
		cfg.LogFile = logAbs
	}

	return cfg, nil
}

func LoadFile(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var file File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return file, nil
}

// VaultRootFrom returns the directory two levels above anchor.
func VaultRootFrom(anchor string) string {
	return filepath.Clean(filepath.Join(anchor, "..", ".."))
}

func executableDir(executable string) (string, error) {
	if executable == "" {
		exe, err := os.Executable()
		if err != nil {
			return os.Getwd()
		}
		executable = exe
	}
	if resolved, err := filepath.EvalSymlinks(executable); err == nil {
		executable = resolved
	}
	abs, err := filepath.Abs(executable)
	if err != nil {
		return "", err
	}
	return filepath.Dir(abs), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
