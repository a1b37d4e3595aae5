package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"newsdeck/chat"
	"newsdeck/client"
	"newsdeck/config"
	"newsdeck/session"
	"newsdeck/tui"
)

func main() {
	cfg := config.Load()

	// Parse command-line flags
	apiURL := flag.String("api", cfg.APIURL, "Aggregator API base URL")
	flag.Parse()
	cfg.APIURL = *apiURL

	if err := os.MkdirAll(cfg.StateDir, 0700); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create state dir: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns stdout; send log output to a file instead.
	if logFile, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600); err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}

	tokens := session.NewTokenStore(cfg.TokenPath())
	api := client.New(cfg.APIURL, cfg.HTTPTimeout, tokens)

	// Bridge store notifications into the tea program. The send is
	// non-blocking so a burst can never stall a session operation.
	notices := make(chan tui.Notice, 8)
	notifier := func(level session.NotifyLevel, message string) {
		select {
		case notices <- tui.Notice{Level: level, Text: message}:
		default:
		}
	}
	store := session.NewStore(api, tokens, notifier)

	responder := newResponder(cfg)

	// Create the tea program
	program := tea.NewProgram(tui.New(cfg, api, store, notices, responder), tea.WithAltScreen())

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		program.Quit()
	}()

	// Run the program
	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

// newResponder builds the help-bot responder, applying a YAML rules
// override when one is configured.
func newResponder(cfg config.Config) *chat.Responder {
	if cfg.ChatRulesPath == "" {
		return chat.NewResponder(nil, nil, nil, nil)
	}
	rules, fallbacks, err := chat.LoadRules(cfg.ChatRulesPath)
	if err != nil {
		log.Printf("chat: falling back to built-in rules: %v", err)
		return chat.NewResponder(nil, nil, nil, nil)
	}
	return chat.NewResponder(rules, fallbacks, nil, nil)
}
