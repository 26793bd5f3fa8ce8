package internal

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// PromptData for template injection
type PromptData struct {
	Title       string
	Channel     string
	Description string
	Transcript  string
}

// PromptManager handles loading and processing prompt templates
type PromptManager struct {
	promptFile   string
	promptString string
	configDir    string
}

// NewPromptManager creates a new prompt manager. promptSetting may be a
// template string, a path to a template file, or empty for the default
// prompt in the config directory.
func NewPromptManager(configDir, promptSetting string) *PromptManager {
	pm := &PromptManager{configDir: configDir}

	if promptSetting != "" {
		if IsLikelyFilePath(promptSetting) && FileExists(promptSetting) {
			pm.promptFile = promptSetting
		} else {
			pm.promptString = promptSetting
		}
	}

	return pm
}

// CreatePrompt builds the summarization prompt from a transcript and
// optional video metadata
func (pm *PromptManager) CreatePrompt(transcript string, metadata *VideoMetadata) (string, error) {
	var tmplContent string

	if pm.promptString != "" {
		tmplContent = pm.promptString
	} else {
		promptFile := pm.promptFile
		if promptFile == "" {
			promptFile = filepath.Join(pm.configDir, "prompt.txt")
		}

		content, err := os.ReadFile(promptFile)
		if err != nil {
			return "", fmt.Errorf("reading prompt template: %w", err)
		}
		tmplContent = string(content)
	}

	tmpl, err := template.New("prompt").Parse(tmplContent)
	if err != nil {
		return "", fmt.Errorf("parsing prompt template: %w", err)
	}

	data := PromptData{Transcript: transcript}
	if metadata != nil {
		data.Title = metadata.Title
		data.Channel = metadata.Channel
		data.Description = metadata.Description
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing prompt template: %w", err)
	}

	return buf.String(), nil
}

// IsLikelyFilePath uses heuristics to determine if a string is likely a file path
func IsLikelyFilePath(s string) bool {
	if strings.Contains(s, "/") || strings.Contains(s, "\\") {
		return true
	}

	if strings.Contains(s, ".txt") || strings.Contains(s, ".md") ||
		strings.Contains(s, ".template") || strings.Contains(s, ".tmpl") {
		return true
	}

	// Long strings are almost certainly prompt text, not paths.
	if len(s) > 200 {
		return false
	}

	return !strings.Contains(s, " ") && !strings.Contains(s, "\n")
}
