package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer wraps the MCP server and application dependencies
type MCPServer struct {
	app       *App
	mcpServer *server.MCPServer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(app *App) *MCPServer {
	mcpServer := server.NewMCPServer(
		"cruxrec-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		app:       app,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools
func (s *MCPServer) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_video_metadata",
		mcp.WithDescription("Resolve video metadata including caption availability. Check 'Has Captions' to decide between get_video_transcript (free) and transcribe_video_audio (paid)."),
		mcp.WithString("url",
			mcp.Description("Video URL or YouTube video ID"),
			mcp.Required(),
		),
	), s.handleGetMetadata)

	s.mcpServer.AddTool(mcp.NewTool("get_video_transcript",
		mcp.WithDescription("Get the video transcript from existing captions (FREE). Tries official subtitles first, then auto-generated ones. Fails if the video has no captions."),
		mcp.WithString("url",
			mcp.Description("Video URL or YouTube video ID"),
			mcp.Required(),
		),
	), s.handleGetTranscript)

	s.mcpServer.AddTool(mcp.NewTool("transcribe_video_audio",
		mcp.WithDescription("Create a transcript with OpenAI Whisper (PAID). Requires OPENAI_API_KEY. Use only when the video has no captions and the user explicitly agrees to incur costs."),
		mcp.WithString("url",
			mcp.Description("Video URL or YouTube video ID"),
			mcp.Required(),
		),
	), s.handleWhisperTranscribe)

	s.mcpServer.AddTool(mcp.NewTool("summarize_video",
		mcp.WithDescription("Run the full pipeline: acquire a transcript (captions, then Whisper fallback) and summarize it with Gemini. Requires GEMINI_API_KEY; the Whisper fallback additionally needs OPENAI_API_KEY."),
		mcp.WithString("url",
			mcp.Description("Video URL or YouTube video ID"),
			mcp.Required(),
		),
		mcp.WithString("prompt",
			mcp.Description("Optional custom summarization prompt template"),
		),
	), s.handleSummarize)
}

// handleGetMetadata implements the get_video_metadata tool
func (s *MCPServer) handleGetMetadata(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	metadata, err := s.app.Metadata(ctx, url)
	if err != nil {
		MCPLogError("metadata probe failed for %s: %v", url, err)
		return mcp.NewToolResultErrorFromErr("metadata error", err), nil
	}

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("Title: %s\n", metadata.Title))
	buf.WriteString(fmt.Sprintf("Channel: %s\n", metadata.Channel))
	buf.WriteString(fmt.Sprintf("Duration: %.0f seconds\n", metadata.Duration))
	buf.WriteString(fmt.Sprintf("Description: %s\n", metadata.Description))
	buf.WriteString(fmt.Sprintf("Has Captions: %t\n", metadata.HasCaptions))

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(buf.String())},
	}, nil
}

// handleGetTranscript implements the get_video_transcript tool (captions only)
func (s *MCPServer) handleGetTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	transcript, source, err := s.app.Transcript(ctx, url, false)
	if err != nil {
		MCPLogError("transcript acquisition failed for %s: %v", url, err)
		return mcp.NewToolResultErrorFromErr("no captions available - use get_video_metadata to check caption availability, or consider transcribe_video_audio (paid)", err), nil
	}

	MCPLogInfo("delivered transcript for %s (%s)", url, source)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(transcript)},
	}, nil
}

// handleWhisperTranscribe implements the transcribe_video_audio tool
func (s *MCPServer) handleWhisperTranscribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	transcript, _, err := s.app.Transcript(ctx, url, true)
	if err != nil {
		MCPLogError("whisper transcription failed for %s: %v", url, err)
		return mcp.NewToolResultErrorFromErr("failed to transcribe video audio", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(transcript)},
	}, nil
}

// handleSummarize implements the summarize_video tool
func (s *MCPServer) handleSummarize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	if prompt := request.GetString("prompt", ""); prompt != "" {
		s.app.SetPromptManager(NewPromptManager(s.app.config.ConfigDir, prompt))
	}

	videoURL, _ := ParseArg(url)

	ws, err := s.app.NewWorkspace()
	if err != nil {
		return mcp.NewToolResultErrorFromErr("workspace error", err), nil
	}

	metadata, err := s.app.Metadata(ctx, videoURL)
	if err != nil {
		MCPLogDebug("metadata probe failed for %s: %v", url, err)
		metadata = nil
	}

	result := s.app.NewPipeline(ws).Run(ctx, videoURL, metadata)
	if result.Failed() {
		MCPLogError("pipeline failed for %s: %s: %v", url, result.Failure, result.Err)
		return mcp.NewToolResultErrorFromErr(result.Failure.String(), result.Err), nil
	}

	MCPLogInfo("summarized %s from %s", url, result.Source)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(result.Summary)},
	}, nil
}

// Start starts the MCP server using the specified transport
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	if transport == "http" {
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)
		addr := fmt.Sprintf(":%d", port)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return httpServer.Start(addr)
	}

	// Default to stdio transport
	return server.ServeStdio(s.mcpServer)
}
