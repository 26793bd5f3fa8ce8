package internal

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/lrstanley/go-ytdlp"
	"github.com/spf13/viper"
)

// CommandRunner executes external commands and returns their combined
// output. Run waits for the child to exit and drains its output first, so
// exit status is never inspected against a blocked pipe.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// DefaultCommandRunner implements CommandRunner
type DefaultCommandRunner struct{}

func (r *DefaultCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Config holds application settings
type Config struct {
	// User configurable settings
	GeminiModel    string
	Lang           string
	PreferAuto     bool
	MaxDuration    time.Duration
	SummaryTimeout time.Duration
	WhisperTimeout time.Duration
	TranscriptsDir string
	Verbose        bool
	Quiet          bool
	GeminiAPIKey   string
	OpenAIAPIKey   string
	Prompt         string
	MCPLogEnabled  bool

	// Fixed XDG paths (not configurable)
	ConfigDir string
	DataDir   string
	CacheDir  string
}

//go:embed config.toml prompt.txt
var defaultFS embed.FS

// ensureDefaultFile checks if a file exists in the specified directory
// and creates it from the embedded default if it doesn't exist
func ensureDefaultFile(configDir, embedFilename, description string) error {
	filePath := filepath.Join(configDir, embedFilename)

	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile(embedFilename)
	if err != nil {
		return fmt.Errorf("reading embedded default %s: %w", description, err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default %s: %w", description, err)
	}

	fmt.Printf("Created default %s at %s\n", description, filePath)
	return nil
}

// EnsureDefaultConfig creates the default config file in the XDG config
// directory if it doesn't exist yet
func EnsureDefaultConfig(configDir string) error {
	return ensureDefaultFile(configDir, "config.toml", "configuration")
}

// EnsureDefaultPrompt creates the default prompt template in the XDG config
// directory if it doesn't exist yet
func EnsureDefaultPrompt(configDir string) error {
	return ensureDefaultFile(configDir, "prompt.txt", "prompt template")
}

// InitConfig initializes Viper and loads configuration
func InitConfig() *Config {
	// Ensure yt-dlp is installed
	ytdlp.MustInstall(context.Background(), nil)

	// XDG standard directories
	configDir := filepath.Join(xdg.ConfigHome, "cruxrec")
	dataDir := filepath.Join(xdg.DataHome, "cruxrec")
	cacheDir := filepath.Join(xdg.CacheHome, "cruxrec")

	transcriptsDir := filepath.Join(dataDir, "transcripts")

	v := viper.New()

	// Defaults for configurable settings
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("lang", "en")
	v.SetDefault("prefer_auto_subs", false)
	v.SetDefault("max_duration", 5*time.Minute)
	v.SetDefault("summary_timeout", 2*time.Minute)
	v.SetDefault("whisper_timeout", 10*time.Minute)
	v.SetDefault("transcripts_dir", transcriptsDir)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("prompt", "") // if empty will use default prompt template
	v.SetDefault("mcp_log", false)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("CRUXREC")
	v.AutomaticEnv()

	// The API keys are also honored under their conventional names.
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY", "GEMINI_KEY")
	_ = v.BindEnv("openai_api_key", "OPENAI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	config := &Config{
		GeminiModel:    v.GetString("gemini_model"),
		Lang:           v.GetString("lang"),
		PreferAuto:     v.GetBool("prefer_auto_subs"),
		MaxDuration:    v.GetDuration("max_duration"),
		SummaryTimeout: v.GetDuration("summary_timeout"),
		WhisperTimeout: v.GetDuration("whisper_timeout"),
		TranscriptsDir: v.GetString("transcripts_dir"),
		Verbose:        v.GetBool("verbose"),
		Quiet:          v.GetBool("quiet"),
		GeminiAPIKey:   v.GetString("gemini_api_key"),
		OpenAIAPIKey:   v.GetString("openai_api_key"),
		Prompt:         v.GetString("prompt"),
		MCPLogEnabled:  v.GetBool("mcp_log"),

		ConfigDir: configDir,
		DataDir:   dataDir,
		CacheDir:  cacheDir,
	}

	if config.Verbose {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	return config
}

// Credentials returns the API secrets as a pipeline credential set
func (c *Config) Credentials() Credentials {
	return Credentials{
		GeminiAPIKey: c.GeminiAPIKey,
		OpenAIAPIKey: c.OpenAIAPIKey,
	}
}
