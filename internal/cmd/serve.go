package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/portalworks/wz/internal/config"
	"github.com/portalworks/wz/internal/mcp"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP server for AI agent integration",
	Long: `Start an MCP (Model Context Protocol) server for AI agent integration.

This allows AI agents to query a loaded export through MCP tools instead
of spawning CLI commands. The export is loaded once at startup and stays
resident, so repeated queries skip extraction and parsing entirely.

Available Tools:
  wz_report     Flat structural report with roles analysis
  wz_hierarchy  Nested role → space → page → application tree
  wz_overview   Legacy overview document
  wz_stats      Statistics blocks only

Examples:
  wz serve --mcp --export export.zip              # Start with default tools
  wz serve --mcp --export data/ --tools report    # Expose specific tools only
  wz serve --mcp --export export.zip --timeout 1h # Auto-stop after an hour
  wz serve --status                               # Check if server is running
  wz serve --stop                                 # Stop running server
  wz serve --list-tools                           # Show available tools`,
	RunE: runServe,
}

var (
	serveMCP       bool
	serveExport    string
	serveTools     string
	serveTimeout   string
	serveStatus    bool
	serveStop      bool
	serveListTools bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveMCP, "mcp", false, "Start MCP server (stdio transport)")
	serveCmd.Flags().StringVar(&serveExport, "export", "", "Export archive or directory to serve")
	serveCmd.Flags().StringVar(&serveTools, "tools", "", "Comma-separated list of tools to expose (default: all)")
	serveCmd.Flags().StringVar(&serveTimeout, "timeout", "30m", "Inactivity timeout (0 for no timeout)")
	serveCmd.Flags().BoolVar(&serveStatus, "status", false, "Check if server is running")
	serveCmd.Flags().BoolVar(&serveStop, "stop", false, "Stop running server")
	serveCmd.Flags().BoolVar(&serveListTools, "list-tools", false, "List available tools")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Handle --list-tools
	if serveListTools {
		fmt.Println("Available MCP tools:")
		fmt.Println()
		fmt.Println("  wz_report     Flat structural report with roles analysis")
		fmt.Println("  wz_hierarchy  Nested role → space → page → application tree")
		fmt.Println("  wz_overview   Legacy overview document")
		fmt.Println("  wz_stats      Statistics blocks only")
		fmt.Println()
		fmt.Println("All tools are exposed by default.")
		return nil
	}

	// Handle --status
	if serveStatus {
		return checkServerStatus()
	}

	// Handle --stop
	if serveStop {
		return stopServer()
	}

	// Start MCP server
	if !serveMCP {
		return fmt.Errorf("use --mcp to start the MCP server, or --help for usage")
	}
	if serveExport == "" {
		return fmt.Errorf("--export is required with --mcp")
	}

	// Parse timeout
	timeout, err := parseDuration(serveTimeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	// Parse tools
	var tools []string
	if serveTools != "" {
		for _, t := range strings.Split(serveTools, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				// Allow shorthand (report -> wz_report)
				if !strings.HasPrefix(t, "wz_") {
					t = "wz_" + t
				}
				tools = append(tools, t)
			}
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	snap, err := openSnapshot(serveExport, cfg)
	if err != nil {
		return err
	}

	// Create server over the loaded snapshot
	server, err := mcp.New(snap, cfg, mcp.Config{
		Tools:   tools,
		Timeout: timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	// Write PID file
	if err := writePIDFile(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not write PID file: %v\n", err)
	}
	defer removePIDFile()

	// Handle signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintf(os.Stderr, "\nwz serve: shutting down\n")
		removePIDFile()
		os.Exit(0)
	}()

	// Log startup info to stderr (stdout is for MCP protocol)
	fmt.Fprintf(os.Stderr, "wz serve: starting MCP server\n")
	fmt.Fprintf(os.Stderr, "wz serve: export: %s\n", serveExport)
	fmt.Fprintf(os.Stderr, "wz serve: tools: %v\n", server.ListTools())
	if timeout > 0 {
		fmt.Fprintf(os.Stderr, "wz serve: timeout: %v\n", timeout)
	}

	// Start serving
	return server.ServeStdio()
}

func parseDuration(s string) (time.Duration, error) {
	if s == "0" || s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

func getPIDFilePath() (string, error) {
	wzDir, err := config.FindConfigDir(".")
	if err != nil {
		return "", err
	}
	return filepath.Join(wzDir, "serve.pid"), nil
}

func writePIDFile() error {
	pidPath, err := getPIDFilePath()
	if err != nil {
		return err
	}
	return os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())), 0644)
}

func removePIDFile() {
	pidPath, err := getPIDFilePath()
	if err != nil {
		return
	}
	os.Remove(pidPath)
}

func checkServerStatus() error {
	pidPath, err := getPIDFilePath()
	if err != nil {
		fmt.Println("Status: not running (wz not initialized)")
		return nil
	}

	data, err := os.ReadFile(pidPath)
	if err != nil {
		fmt.Println("Status: not running")
		return nil
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		fmt.Println("Status: not running (invalid PID file)")
		return nil
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		fmt.Println("Status: not running")
		removePIDFile()
		return nil
	}

	// On Unix, FindProcess always succeeds, so we need to send signal 0 to check
	err = process.Signal(syscall.Signal(0))
	if err != nil {
		fmt.Println("Status: not running (stale PID file)")
		removePIDFile()
		return nil
	}

	fmt.Printf("Status: running (PID %d)\n", pid)
	return nil
}

func stopServer() error {
	pidPath, err := getPIDFilePath()
	if err != nil {
		return fmt.Errorf("wz not initialized")
	}

	data, err := os.ReadFile(pidPath)
	if err != nil {
		fmt.Println("No server running")
		return nil
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		removePIDFile()
		return fmt.Errorf("invalid PID file")
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		removePIDFile()
		fmt.Println("No server running")
		return nil
	}

	// Send SIGTERM for graceful shutdown
	err = process.Signal(syscall.SIGTERM)
	if err != nil {
		removePIDFile()
		fmt.Println("Server already stopped")
		return nil
	}

	fmt.Printf("Stopped server (PID %d)\n", pid)
	return nil
}
