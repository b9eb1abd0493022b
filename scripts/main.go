package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/claimsdesk/claims-service/scripts/internal"
)

// Command represents a script that can be run
type Command struct {
	Name        string
	Description string
	Run         func() error
}

var commands = []Command{
	{
		Name:        "generate-encryption-key",
		Description: "Generate a key for secrets.encryption_key",
		Run:         internal.GenerateEncryptionKey,
	},
	{
		Name:        "seed-claims",
		Description: "Submit sample claims through the claim service",
		Run:         internal.SeedClaims,
	},
	{
		Name:        "relay-outbox",
		Description: "Run one outbox relay pass against the configured storage",
		Run:         internal.RelayOutbox,
	},
}

func main() {
	var (
		listCommands bool
		cmdName      string
		count        int
		ratePerSec   int
	)

	flag.BoolVar(&listCommands, "list", false, "List all available commands")
	flag.StringVar(&cmdName, "cmd", "", "Command to run")
	flag.IntVar(&count, "count", 0, "Number of claims to seed")
	flag.IntVar(&ratePerSec, "rate", 0, "Seeded submissions per second")

	flag.Parse()

	if listCommands {
		fmt.Println("Available commands:")
		for _, cmd := range commands {
			fmt.Printf("  %-25s %s\n", cmd.Name, cmd.Description)
		}
		return
	}

	if cmdName == "" {
		log.Fatal("Please specify a command to run using -cmd flag. Use -list to see available commands.")
	}

	// Set command-specific environment variables
	if count > 0 {
		os.Setenv("SEED_COUNT", strconv.Itoa(count))
	}
	if ratePerSec > 0 {
		os.Setenv("SEED_RATE", strconv.Itoa(ratePerSec))
	}

	for _, cmd := range commands {
		if cmd.Name == cmdName {
			if err := cmd.Run(); err != nil {
				log.Fatalf("Error running command %s: %v", cmdName, err)
			}
			return
		}
	}

	log.Fatalf("Unknown command: %s. Use -list to see available commands.", cmdName)
}
