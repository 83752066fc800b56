// ABOUTME: Entry point for the Roomly booking client
// ABOUTME: Loads config, opens the local store, runs auth bootstrap, and starts the shell
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roomly-app/roomly/api"
	"github.com/roomly-app/roomly/config"
	"github.com/roomly-app/roomly/debuglog"
	"github.com/roomly-app/roomly/session"
	"github.com/roomly-app/roomly/tui"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	apiURL := flag.String("api-url", "", "Backend base URL (default: from config or ROOMLY_API_URL)")
	storePath := flag.String("store-path", "", "Local state path (default: ~/.local/share/roomly/state)")
	initData := flag.String("init-data", "", "Telegram init payload for auth exchange")
	debug := flag.Bool("debug", false, "Start with the diagnostic overlay enabled")
	flag.Parse()

	if *showVersion {
		fmt.Printf("roomly version %s\n", version)
		os.Exit(0)
	}

	cfg := config.Load()
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}
	if *initData != "" {
		cfg.InitData = *initData
	}
	if *debug {
		cfg.Debug = true
	}
	if cfg.APIURL == "" {
		log.Fatalf("No API URL configured: pass --api-url, set ROOMLY_API_URL, or write %s", config.Path())
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Unknown timezone %q: %v", cfg.Timezone, err)
	}

	path := *storePath
	if path == "" {
		path = session.DefaultPath()
	}
	store, err := session.Open(path)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	defer store.Close()

	client := api.NewClient(cfg.APIURL, store)

	ring := debuglog.New()
	if cfg.Debug {
		ring.Enable("startup flag")
	}
	ring.Add("install %s", store.InstallID())

	boot := session.Bootstrap(context.Background(), client, store, cfg.InitData)
	if boot.Blocked {
		log.Printf("Auth blocked: %s", boot.Message)
	}

	program := tea.NewProgram(tui.New(client, store, boot, loc, ring), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("UI failed: %v", err)
	}
}
