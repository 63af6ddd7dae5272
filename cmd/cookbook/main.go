// Cookbook is a recipe registry: an HTTP service that stores ingredients and
// recipes and flattens recipes into cook time and ingredient totals, plus a
// CLI client for it.
//
// Usage:
//
//	cookbook serve [--addr :8080] [--seed catalog.yaml]
//	cookbook add catalog.yaml
//	cookbook summary Pancakes
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/cookbook/internal/display"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	_ = godotenv.Load()

	a := newApp(os.Stdout)
	if err := a.execute(context.Background(), version+" ("+commit+")", os.Args[1:]); err != nil {
		display.NewPrinter(os.Stderr).PrintUrgent("error: " + err.Error())
		os.Exit(1)
	}
}
