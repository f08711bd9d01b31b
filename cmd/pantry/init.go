// ABOUTME: Interactive config file generator for the init command

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/2389/pantry/internal/config"
)

// starterConfig holds the answers collected by init.
type starterConfig struct {
	HTTPAddr  string
	BasePath  string
	DBPath    string
	JWTSecret string

	TailscaleEnabled  bool
	TailscaleHostname string
	TailscaleAuthKey  string
	TailscaleEph      bool

	LogLevel  string
	LogFormat string
	Metrics   bool
}

// render writes the config as YAML.
func (c starterConfig) render() string {
	var b strings.Builder
	b.WriteString("# pantry configuration\n")
	b.WriteString("# Generated by pantry init\n\n")

	b.WriteString("server:\n")
	fmt.Fprintf(&b, "  http_addr: %q\n", c.HTTPAddr)
	if c.BasePath != "" {
		fmt.Fprintf(&b, "  base_path: %q\n", c.BasePath)
	}
	b.WriteString("  read_header_timeout: \"10s\"\n")
	b.WriteString("  rate_limit: 20\n\n")

	b.WriteString("database:\n")
	fmt.Fprintf(&b, "  path: %q\n\n", c.DBPath)

	b.WriteString("auth:\n")
	fmt.Fprintf(&b, "  jwt_secret: %q\n", c.JWTSecret)
	b.WriteString("  token_ttl: \"720h\"\n")
	b.WriteString("  allow_signup: true\n\n")

	b.WriteString("tailscale:\n")
	fmt.Fprintf(&b, "  enabled: %t\n", c.TailscaleEnabled)
	if c.TailscaleEnabled {
		fmt.Fprintf(&b, "  hostname: %q\n", c.TailscaleHostname)
		if c.TailscaleAuthKey != "" {
			fmt.Fprintf(&b, "  auth_key: %q\n", c.TailscaleAuthKey)
		}
		fmt.Fprintf(&b, "  ephemeral: %t\n", c.TailscaleEph)
	}
	b.WriteString("\n")

	b.WriteString("logging:\n")
	fmt.Fprintf(&b, "  level: %q\n", c.LogLevel)
	fmt.Fprintf(&b, "  format: %q\n\n", c.LogFormat)

	b.WriteString("metrics:\n")
	fmt.Fprintf(&b, "  enabled: %t\n", c.Metrics)
	b.WriteString("  path: \"/metrics\"\n")
	return b.String()
}

func runInit() error {
	return runInitWith(bufio.NewReader(os.Stdin), os.Stdout, config.DefaultPath())
}

func runInitWith(reader *bufio.Reader, out io.Writer, defaultPath string) error {
	fmt.Fprintln(out, "pantry configuration setup")
	fmt.Fprintln(out, "==========================")
	fmt.Fprintln(out)

	outputFile := prompt(reader, out, "Config file path", defaultPath)
	if _, err := os.Stat(outputFile); err == nil {
		if !yes(prompt(reader, out, "File exists. Overwrite?", "no")) {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	secret, err := generateSecret()
	if err != nil {
		return err
	}
	cfg := starterConfig{JWTSecret: secret}

	fmt.Fprintln(out, "\n--- Server Configuration ---")
	cfg.HTTPAddr = prompt(reader, out, "HTTP address", "localhost:8080")
	cfg.BasePath = strings.TrimRight(prompt(reader, out, "API base path (empty for /)", ""), "/")

	fmt.Fprintln(out, "\n--- Database Configuration ---")
	cfg.DBPath = prompt(reader, out, "SQLite database path", filepath.Join(getDataPath(), "pantry.db"))

	fmt.Fprintln(out, "\n--- Tailscale Configuration ---")
	cfg.TailscaleEnabled = yes(prompt(reader, out, "Enable Tailscale?", "no"))
	if cfg.TailscaleEnabled {
		cfg.TailscaleHostname = prompt(reader, out, "Tailscale hostname", "pantry")
		cfg.TailscaleAuthKey = prompt(reader, out, "Tailscale auth key (leave empty to use TS_AUTHKEY)", "")
		cfg.TailscaleEph = yes(prompt(reader, out, "Ephemeral node?", "no"))
	}

	fmt.Fprintln(out, "\n--- Logging Configuration ---")
	cfg.LogLevel = prompt(reader, out, "Log level (debug/info/warn/error)", "info")
	cfg.LogFormat = prompt(reader, out, "Log format (text/json)", "text")
	cfg.Metrics = yes(prompt(reader, out, "Expose Prometheus metrics?", "no"))

	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	// The file holds the signing secret
	if err := os.WriteFile(outputFile, []byte(cfg.render()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	fmt.Fprintf(out, "\nConfig written to %s\n", outputFile)
	fmt.Fprintf(out, "Data directory: %s\n", dataDir)
	fmt.Fprintln(out, "\nTo start the server:")
	fmt.Fprintln(out, "  pantry serve")
	return nil
}

func yes(answer string) bool {
	answer = strings.ToLower(answer)
	return answer == "yes" || answer == "y"
}

func prompt(reader *bufio.Reader, out io.Writer, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(out, "%s [%s]: ", question, defaultVal)
	} else {
		fmt.Fprintf(out, "%s: ", question)
	}

	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		// On EOF or error, return default
		fmt.Fprintln(out)
		return defaultVal
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}
