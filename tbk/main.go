package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/quillfox/tradebook/cmd"
	"github.com/quillfox/tradebook/docs"
)

func main() {
	// When invoked by the shell for completion this answers and exits.
	completion().Complete("tbk")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the command tree for shell completion. It mirrors
// cmd.Register.
func completion() *complete.Command {
	basis := predict.Set{"accrual", "cash"}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"journal-file": predict.Files("*.jsonl"),
		},
		Sub: map[string]*complete.Command{
			"log": {Flags: map[string]complete.Predictor{
				"s":     predict.Something,
				"side":  predict.Set{"buy", "sell", "long", "short"},
				"setup": predict.Something,
				"m":     predict.Something,
			}},
			"exit": {Flags: map[string]complete.Predictor{
				"t": predict.Something,
			}},
			"deposit":  {},
			"withdraw": {},
			"capital":  {},
			"override": {},
			"import": {Flags: map[string]complete.Predictor{
				"file":    predict.Files("*.json"),
				"mapping": predict.Files("*.json"),
			}},
			"fmt": {Flags: map[string]complete.Predictor{
				"o": predict.Files("*.jsonl"),
			}},

			"monthly": {Flags: map[string]complete.Predictor{"basis": basis}},
			"review":  {Flags: map[string]complete.Predictor{"basis": basis}},
			"metrics": {Flags: map[string]complete.Predictor{"basis": basis}},
			"top":     {Flags: map[string]complete.Predictor{"basis": basis}},
			"equity": {Flags: map[string]complete.Predictor{
				"basis":  basis,
				"period": predict.Set{"daily", "weekly", "monthly", "quarterly", "yearly"},
			}},
			"trades": {Flags: map[string]complete.Predictor{
				"status": predict.Set{"open", "partial", "closed"},
				"s":      predict.Something,
			}},
			"positions": {},

			"topic":  {Args: topicNames()},
			"assist": {Args: predict.Something},
		},
	}
}

// topicNames lists the documentation topics, for `tbk topic <tab>`.
func topicNames() predict.Set {
	names := predict.Set{"readme"}
	if topics, err := docs.GetAllTopics(); err == nil {
		names = append(names, topics...)
	}
	return names
}
