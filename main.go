// Package main provides the entry point for the GUI action parser CLI
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gui-actions/internal/app"
	"gui-actions/internal/container"
	"gui-actions/internal/types"
	"gui-actions/internal/utils"
	"gui-actions/internal/version"

	"github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) > 1 {
		runCommand()
	} else {
		printHelp()
	}
}

// runCommand dispatches to the appropriate command handler
func runCommand() {
	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "parse":
		runApp(func(ctx context.Context, application *app.App) error {
			return application.RunParse(args)
		})
	case "stream":
		runApp(func(ctx context.Context, application *app.App) error {
			return application.RunStream(ctx, args)
		})
	case "version", "-v", "--version":
		fmt.Println(version.Version)
	case "help", "-h", "--help":
		printHelp()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Run 'gui-actions help' for usage.")
		os.Exit(1)
	}
}

// printHelp displays the general help information
func printHelp() {
	fmt.Println("gui-actions - Parse AI-agent model output into structured GUI actions.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  gui-actions <command> [file]")
	fmt.Println()
	fmt.Println("Available Commands:")
	fmt.Println("  parse      Parse a complete model message (from file or stdin)")
	fmt.Println("  stream     Parse a chat-completion SSE stream incrementally")
	fmt.Println("  version    Print the application version")
	fmt.Println("  help       Display this help message")
	fmt.Println()
	fmt.Println("Input is read from stdin when no file argument is given.")
}

// runApp builds the container, sets up logging, and runs the given command
// under a signal-aware context.
func runApp(run func(ctx context.Context, application *app.App) error) {
	diContainer, err := container.BuildContainer()
	if err != nil {
		logrus.Fatalf("Failed to build container: %v", err)
	}

	if err := diContainer.Invoke(func(configManager types.ConfigManager) {
		utils.SetupLogger(configManager)
	}); err != nil {
		logrus.Fatalf("Failed to setup logger: %v", err)
	}
	defer utils.CloseLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := diContainer.Invoke(func(application *app.App) error {
		return run(ctx, application)
	}); err != nil {
		logrus.Fatalf("Command failed: %v", err)
	}
}
