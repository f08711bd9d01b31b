// ABOUTME: Entry point for the pantry API server
// ABOUTME: Commands to serve, write a starter config, add users and check health

package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/2389/pantry/internal/api"
	"github.com/2389/pantry/internal/auth"
	"github.com/2389/pantry/internal/config"
	"github.com/2389/pantry/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
                    _
  _ __   __ _ _ __ | |_ _ __ _   _
 | '_ \ / _' | '_ \| __| '__| | | |
 | |_) | (_| | | | | |_| |  | |_| |
 | .__/ \__,_|_| |_|\__|_|   \__, |
 |_|                         |___/
`

// getDataPath returns the pantry data directory.
// Priority: XDG_DATA_HOME/pantry > ~/.local/share/pantry
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data"
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "pantry")
}

func usage() {
	fmt.Println("Usage: pantry <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve                                   Start the API server")
	fmt.Println("  init                                    Create a new config file interactively")
	fmt.Println("  adduser --username U --password P [--email E]")
	fmt.Println("                                          Create an account with an empty shopping list")
	fmt.Println("  health                                  Check server health")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "adduser":
		err = runAddUser(ctx, os.Args[2:])
	case "health":
		err = runHealth(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := config.DefaultPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)
	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:    %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("Database:  %s\n", cfg.Database.Path)
	if cfg.Tailscale.Enabled {
		green.Print("    ▶ ")
		fmt.Printf("Tailscale: ")
		cyan.Print(cfg.Tailscale.Hostname)
		if cfg.Tailscale.Ephemeral {
			gray.Print(" (ephemeral)")
		}
		fmt.Println()
	} else {
		green.Print("    ▶ ")
		fmt.Printf("HTTP:      %s%s\n", cfg.Server.HTTPAddr, cfg.Server.BasePath)
	}
	if cfg.Metrics.Enabled {
		green.Print("    ▶ ")
		fmt.Printf("Metrics:   %s\n", cfg.Metrics.Path)
	}
	fmt.Println()

	logger.Info("starting pantry", "config", configPath, "http_addr", cfg.Server.HTTPAddr)

	srv, err := api.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	return srv.Run(ctx)
}

// addUserArgs holds the parsed flags of the adduser command.
type addUserArgs struct {
	username string
	password string
	email    string
}

// parseAddUserArgs supports both "--flag value" and "--flag=value".
func parseAddUserArgs(args []string) (addUserArgs, error) {
	var parsed addUserArgs
	targets := map[string]*string{
		"--username": &parsed.username,
		"--password": &parsed.password,
		"--email":    &parsed.email,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, hasValue := strings.Cut(arg, "=")
		target, ok := targets[name]
		if !ok {
			if strings.HasPrefix(arg, "-") {
				return addUserArgs{}, fmt.Errorf("unknown flag: %s", arg)
			}
			return addUserArgs{}, fmt.Errorf("unexpected argument: %s", arg)
		}
		if !hasValue {
			if i+1 >= len(args) {
				return addUserArgs{}, fmt.Errorf("%s requires a value", name)
			}
			value = args[i+1]
			i++
		}
		*target = value
	}

	if strings.TrimSpace(parsed.username) == "" {
		return addUserArgs{}, fmt.Errorf("--username is required")
	}
	if parsed.password == "" {
		return addUserArgs{}, fmt.Errorf("--password is required")
	}
	return parsed, nil
}

func runAddUser(ctx context.Context, args []string) error {
	parsed, err := parseAddUserArgs(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	gate := auth.NewGate(s, auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret)), auth.GateConfig{
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	}, setupLogger(cfg.Logging))

	user, err := gate.Signup(ctx, auth.SignupRequest{
		Username: parsed.username,
		Password: parsed.password,
		Email:    parsed.email,
	})
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("  ✓ Created user %s (id %d)\n", user.Username, user.ID)
	return nil
}

// healthURL builds the health endpoint URL from a listen address.
func healthURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return fmt.Sprintf("http://%s/health", addr)
}

func runHealth(ctx context.Context) error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL(cfg.Server.HTTPAddr), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}

// generateSecret returns a random base64 JWT signing secret.
func generateSecret() (string, error) {
	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", fmt.Errorf("generating JWT secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(secretBytes), nil
}
