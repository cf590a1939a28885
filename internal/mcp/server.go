// Package mcp provides an MCP (Model Context Protocol) server for wz.
// This allows AI agents to query a loaded export through MCP tools instead
// of repeated CLI invocations; the snapshot stays loaded between calls.
package mcp

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/portalworks/wz/internal/config"
	"github.com/portalworks/wz/internal/hierarchy"
	"github.com/portalworks/wz/internal/index"
	"github.com/portalworks/wz/internal/locale"
	"github.com/portalworks/wz/internal/output"
	"github.com/portalworks/wz/internal/report"
	"github.com/portalworks/wz/internal/snapshot"
)

// Server wraps the MCP server with wz-specific functionality. The snapshot
// and index are loaded once at startup and shared read-only by every tool.
type Server struct {
	mcpServer    *server.MCPServer
	snap         *snapshot.Snapshot
	idx          *index.Index
	cfg          *config.Config
	tools        map[string]bool
	lastActivity time.Time
	timeout      time.Duration
	mu           sync.RWMutex
}

// Config holds server configuration
type Config struct {
	Tools   []string      // Which tools to expose (empty = all)
	Timeout time.Duration // Inactivity timeout (0 = no timeout)
}

// AllTools lists all available tools
var AllTools = []string{"wz_report", "wz_hierarchy", "wz_overview", "wz_stats"}

// Version is the MCP server version reported to clients.
const Version = "1.0.0"

// New creates a new MCP server over an already-loaded snapshot.
func New(snap *snapshot.Snapshot, cfgFile *config.Config, cfg Config) (*Server, error) {
	mcpServer := server.NewMCPServer(
		"wz",
		Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer:    mcpServer,
		snap:         snap,
		idx:          index.Build(snap),
		cfg:          cfgFile,
		tools:        make(map[string]bool),
		lastActivity: time.Now(),
		timeout:      cfg.Timeout,
	}

	toolsToRegister := cfg.Tools
	if len(toolsToRegister) == 0 {
		toolsToRegister = AllTools
	}

	for _, toolName := range toolsToRegister {
		if err := s.registerTool(toolName); err != nil {
			return nil, fmt.Errorf("failed to register tool %s: %w", toolName, err)
		}
		s.tools[toolName] = true
	}

	return s, nil
}

// registerTool registers a single tool with the MCP server
func (s *Server) registerTool(name string) error {
	switch name {
	case "wz_report":
		return s.registerReportTool()
	case "wz_hierarchy":
		return s.registerHierarchyTool()
	case "wz_overview":
		return s.registerOverviewTool()
	case "wz_stats":
		return s.registerStatsTool()
	default:
		return fmt.Errorf("unknown tool: %s", name)
	}
}

// ServeStdio starts the server using stdio transport
func (s *Server) ServeStdio() error {
	if s.timeout > 0 {
		go s.timeoutChecker()
	}

	return server.ServeStdio(s.mcpServer)
}

// timeoutChecker monitors for inactivity and exits if timeout exceeded
func (s *Server) timeoutChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.RLock()
		elapsed := time.Since(s.lastActivity)
		s.mu.RUnlock()

		if elapsed > s.timeout {
			fmt.Fprintf(os.Stderr, "wz serve: timeout after %v of inactivity\n", s.timeout)
			os.Exit(0)
		}
	}
}

// updateActivity updates the last activity timestamp
func (s *Server) updateActivity() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// ListTools returns the list of registered tools
func (s *Server) ListTools() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]string, 0, len(s.tools))
	for t := range s.tools {
		tools = append(tools, t)
	}
	return tools
}

func (s *Server) locales() locale.Filter {
	return locale.Filter{Neutral: s.cfg.Locales.Neutral, Display: s.cfg.Locales.Display}
}

func (s *Server) reportOptions() report.Options {
	return report.Options{
		Locales:     s.locales(),
		Placeholder: s.cfg.Output.PlaceholderTitle,
	}
}

func (s *Server) hierarchyOptions() hierarchy.Options {
	return hierarchy.Options{
		Locales:          s.locales(),
		Placeholder:      s.cfg.Output.PlaceholderTitle,
		ProviderFallback: s.cfg.Provider.Fallback,
	}
}

// registerReportTool registers the wz_report tool
func (s *Server) registerReportTool() error {
	tool := mcp.NewTool("wz_report",
		mcp.WithDescription("Generate the flat structural report: space/page/app listing, per-role app and space analysis, catalog statistics."),
		mcp.WithString("format",
			mcp.Description("Output format: json or yaml (default: json)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleReport)
	return nil
}

func (s *Server) handleReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	f, errResult := requestFormat(req)
	if errResult != nil {
		return errResult, nil
	}

	doc := report.Build(s.snap, s.idx, s.reportOptions())
	return formatResult(doc, f)
}

// registerHierarchyTool registers the wz_hierarchy tool
func (s *Server) registerHierarchyTool() error {
	tool := mcp.NewTool("wz_hierarchy",
		mcp.WithDescription("Generate the nested role → space → page → application hierarchy with rollup counts, suited for UI rendering."),
		mcp.WithString("format",
			mcp.Description("Output format: json or yaml (default: json)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleHierarchy)
	return nil
}

func (s *Server) handleHierarchy(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	f, errResult := requestFormat(req)
	if errResult != nil {
		return errResult, nil
	}

	doc, warnings := hierarchy.Build(s.snap, s.idx, s.hierarchyOptions())
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "wz: %s\n", w)
	}
	return formatResult(doc, f)
}

// registerOverviewTool registers the wz_overview tool
func (s *Server) registerOverviewTool() error {
	tool := mcp.NewTool("wz_overview",
		mcp.WithDescription("Generate the legacy overview document: export metadata, friendly app names, reverse app membership, provider-matched role visualizations."),
		mcp.WithString("format",
			mcp.Description("Output format: json or yaml (default: json)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleOverview)
	return nil
}

func (s *Server) handleOverview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	f, errResult := requestFormat(req)
	if errResult != nil {
		return errResult, nil
	}

	doc := report.BuildOverview(s.snap, s.reportOptions())
	return formatResult(doc, f)
}

// registerStatsTool registers the wz_stats tool
func (s *Server) registerStatsTool() error {
	tool := mcp.NewTool("wz_stats",
		mcp.WithDescription("Return only the statistics blocks of the structural and hierarchy reports."),
	)

	s.mcpServer.AddTool(tool, s.handleStats)
	return nil
}

func (s *Server) handleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	structural := report.Build(s.snap, s.idx, s.reportOptions())
	tree, _ := hierarchy.Build(s.snap, s.idx, s.hierarchyOptions())

	doc := map[string]interface{}{
		"report":    structural.Statistics,
		"hierarchy": tree.Statistics,
	}
	return formatResult(doc, output.FormatJSON)
}

// requestFormat reads the optional format argument of a tool call.
func requestFormat(req mcp.CallToolRequest) (output.Format, *mcp.CallToolResult) {
	args := req.GetArguments()
	raw, _ := args["format"].(string)
	if raw == "" {
		return output.FormatJSON, nil
	}
	f, err := output.ParseFormat(raw)
	if err != nil {
		return "", mcp.NewToolResultError(err.Error())
	}
	return f, nil
}

func formatResult(doc interface{}, f output.Format) (*mcp.CallToolResult, error) {
	text, err := output.NewFormatter(f).Format(doc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}
