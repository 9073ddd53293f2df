package main

import (
	"context"
	"log"
	"os"

	"github.com/ChainSafe/pysniff/cmd"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "pysniff"
	app.Usage = "Python source linter"
	app.Description = "Flags missing docstrings, unused and wildcard imports, unused variables and long lines in Python code"
	app.Commands = []*cli.Command{
		cmd.AnalyzeCommand,
	}
	err := app.RunContext(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
