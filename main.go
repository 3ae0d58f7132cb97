package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gerunddev/orgroam2cosma/internal/commands"
	"github.com/gerunddev/orgroam2cosma/internal/styles"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+err.Error()))
		os.Exit(1)
	}
}
