// Command tripctl splits expenses locally and reads plan ledgers from a
// tripsplit server.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&splitCmd{}, "local")
	commander.Register(&loginCmd{}, "remote")
	commander.Register(&ledgerCmd{}, "remote")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
