package main

import (
	"log"
	"os"

	"github.com/ironsheep/draw-click/internal/cli"
)

func main() {
	// Configure logging to stderr (stdout carries results and MCP responses)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
