// Package main provides a standalone health check command for the Cookbook
// catalog, suitable for container health probes
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/cookbook/catalog/internal/infrastructure/config"
	"github.com/cookbook/catalog/internal/infrastructure/http/handlers"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
	exitCodeError   = 2
)

func main() {
	url := flag.String("url", "", "Health check endpoint URL (defaults to the configured address)")
	configPath := flag.String("config", "", "Configuration file path")
	timeout := flag.Duration("timeout", 5*time.Second, "Request timeout")
	retries := flag.Int("retry", 0, "Number of retries on failure")
	retryDelay := flag.Duration("retry-delay", time.Second, "Delay between retries")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	target := *url
	if target == "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(exitCodeError)
		}
		target = fmt.Sprintf("http://127.0.0.1:%d%s", cfg.Server.Port, cfg.Monitoring.HealthCheckPath)
	}

	os.Exit(probe(&http.Client{Timeout: *timeout}, target, *retries, *retryDelay, *verbose))
}

// probe returns the exit code for the health endpoint at target
func probe(client *http.Client, target string, retries int, delay time.Duration, verbose bool) int {
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			if verbose {
				fmt.Printf("Retrying in %v... (attempt %d/%d)\n", delay, attempt, retries)
			}
			time.Sleep(delay)
		}

		resp, err := client.Get(target)
		if err != nil {
			lastErr = err
			continue
		}

		var health handlers.HealthResponse
		err = json.NewDecoder(resp.Body).Decode(&health)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("invalid health response: %w", err)
			continue
		}

		if verbose {
			fmt.Printf("status=%s version=%s checks=%v\n", health.Status, health.Version, health.Checks)
		}
		if resp.StatusCode == http.StatusOK && health.Status == "healthy" {
			return exitCodeSuccess
		}
		return exitCodeFailure
	}

	fmt.Fprintf(os.Stderr, "Health check failed after %d attempts: %v\n", retries+1, lastErr)
	return exitCodeError
}
