// Package main implements the beectl CLI for manual operations against
// the beed HTTP server.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	// serverURL is the base URL for the beed HTTP server
	serverURL string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "beectl",
	Short: "CLI for beed HTTP server operations",
	Long: `beectl is a command-line interface for interacting with the beed HTTP server.
It provides commands for asking questions and checking server health.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "beed server URL")
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(healthCmd)
}

// askCmd sends a question to the chat endpoint
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the assistant a question",
	Long: `Ask the assistant a beekeeping or plant phenology question.

Examples:
  # Ask a question
  beectl ask "When does wild garlic bloom in Germany?"

  # Use a different server
  beectl ask --server http://localhost:9090 "Where do bees collect the best honey?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

// healthCmd checks server health
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check beed server health",
	Long: `Check the health status of the beed HTTP server.

Examples:
  # Check health
  beectl health

  # Check health on a different server
  beectl health --server http://localhost:9090`,
	RunE: runHealth,
}

// ChatRequest matches internal/http/server.go ChatRequest
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse matches internal/http/server.go ChatResponse
type ChatResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Status   string `json:"status"`
}

// HealthResponse matches internal/http/server.go HealthResponse
type HealthResponse struct {
	GeminiLoaded        bool   `json:"gemini_loaded"`
	KnowledgeBaseLoaded bool   `json:"knowledge_base_loaded"`
	KnowledgeEntries    int    `json:"knowledge_entries"`
	EnvPresent          bool   `json:"env_present"`
	Status              string `json:"status"`
}

// runAsk handles the ask command
func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("no question provided")
	}

	reqJSON, err := json.Marshal(ChatRequest{Question: question})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/chat", serverURL)
	httpReq, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(reqJSON))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{
		Timeout: 60 * time.Second,
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("server returned status %d (failed to read response body: %w)", resp.StatusCode, readErr)
		}
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	fmt.Println(chatResp.Answer)
	return nil
}

// runHealth handles the health command
func runHealth(cmd *cobra.Command, args []string) error {
	url := fmt.Sprintf("%s/api/health", serverURL)

	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to connect to %s: %v\n", url, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("server returned status %d (failed to read response body: %w)", resp.StatusCode, readErr)
		}
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}

	var healthResp HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&healthResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	fmt.Printf("Server Status: %s\n", healthResp.Status)
	fmt.Printf("Server URL: %s\n", serverURL)
	fmt.Printf("Gemini Loaded: %t\n", healthResp.GeminiLoaded)
	fmt.Printf("Knowledge Entries: %d\n", healthResp.KnowledgeEntries)

	return nil
}
