package internal

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
)

// The MCP transport owns stdout, so server diagnostics go to a log file
// in the cache directory instead.
var (
	mcpLogger     *log.Logger
	mcpLoggerOnce sync.Once
	mcpLogEnabled bool
)

func initMCPLogger(enabled bool) {
	mcpLogEnabled = enabled

	if !enabled {
		return
	}

	logDir := filepath.Join(xdg.CacheHome, "cruxrec")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		mcpLogEnabled = false
		return
	}

	logPath := filepath.Join(logDir, "mcp.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		mcpLogEnabled = false
		return
	}

	mcpLogger = log.New(logFile, "", log.LstdFlags|log.Lmicroseconds)
}

// InitMCPLogging initializes MCP logging based on config
func InitMCPLogging(config *Config) {
	mcpLoggerOnce.Do(func() {
		initMCPLogger(config.MCPLogEnabled)
	})
}

func mcpLogf(level, format string, args ...any) {
	if !mcpLogEnabled || mcpLogger == nil {
		return
	}

	mcpLogger.Printf("[MCP] [%s] "+format, append([]any{level}, args...)...)
}

// MCPLogInfo logs an info message
func MCPLogInfo(format string, args ...any) {
	mcpLogf("INFO", format, args...)
}

// MCPLogError logs an error message
func MCPLogError(format string, args ...any) {
	mcpLogf("ERROR", format, args...)
}

// MCPLogDebug logs a debug message
func MCPLogDebug(format string, args ...any) {
	mcpLogf("DEBUG", format, args...)
}
