package main

import (
	"log"

	"github.com/alexflint/go-arg"
	tea "github.com/charmbracelet/bubbletea"
)

// Args represents command-line arguments
type Args struct {
	Config    string `arg:"--config" help:"Path to node config file"`
	Service   string `arg:"--service" help:"Name of the service to restart after changes"`
	NoRestart bool   `arg:"--no-restart" help:"Do not restart the service after changes"`
}

func main() {
	log.Println("v2node - The proxy node configuration manager  |  version 0.1.0")

	var args Args
	arg.MustParse(&args)

	if args.Config == "" {
		args.Config = "/etc/v2node/config.json"
	}
	if args.Service == "" {
		args.Service = "v2node"
	}

	store := &Store{Path: args.Config}
	if _, err := store.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	controller := DetectController()
	log.Printf("Service manager: %s", controller.Name())

	m := newModel(store, controller, args.Service, args.NoRestart)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatalf("Failed to run menu: %v", err)
	}
}
