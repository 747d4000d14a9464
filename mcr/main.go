// mcr compares market capitalizations across stocks, cryptocurrencies and
// gold.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/capratio/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// A missing .env file is fine, the keys may come from the environment.
	godotenv.Load()

	// Shell completion runs before flag parsing and exits on its own when
	// invoked by the shell.
	completion().Complete("mcr")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	compareFlags := map[string]complete.Predictor{
		"above-ground": predict.Something,
		"plain":        predict.Nothing,
		"json":         predict.Nothing,
	}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"polygon-key":   predict.Something,
			"coingecko-key": predict.Something,
			"config":        predict.Files("*.yaml"),
			"v":             predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"compare": {Flags: compareFlags},
			"explain": {Flags: map[string]complete.Predictor{
				"above-ground": predict.Something,
				"model":        predict.Something,
			}},
			"topic":   {},
			"version": {},
		},
	}
}
