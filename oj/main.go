// Command oj keeps a journal of options trades.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/optjournal/cmd"
	"github.com/etnz/optjournal/docs"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	completion().Complete("oj")

	commander := subcommands.NewCommander(flag.CommandLine, "oj")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// flagPredictors complete the values of the flags that have a known set.
var flagPredictors = map[string]complete.Predictor{
	"config":    predict.Files("*.yaml"),
	"format":    predict.Set{"csv", "jsonl"},
	"mode":      predict.Set{"compat", "strict"},
	"statement": predict.Files("*.json"),
}

// argPredictors complete the positional arguments per subcommand.
var argPredictors = map[string]complete.Predictor{
	"import": predict.Or(predict.Files("*.csv"), predict.Files("*.jsonl")),
}

// completion describes the oj command line for shell completion.
func completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{},
	}
	flag.CommandLine.VisitAll(func(f *flag.Flag) {
		root.Flags[f.Name] = predictor(f.Name)
	})

	for _, c := range cmd.Commands() {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: map[string]complete.Predictor{}, Args: predict.Nothing}
		fs.VisitAll(func(f *flag.Flag) {
			sub.Flags[f.Name] = predictor(f.Name)
		})
		if p, ok := argPredictors[c.Name()]; ok {
			sub.Args = p
		}
		root.Sub[c.Name()] = sub
	}

	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(topics)
	}
	return root
}

func predictor(name string) complete.Predictor {
	if p, ok := flagPredictors[name]; ok {
		return p
	}
	return predict.Nothing
}
