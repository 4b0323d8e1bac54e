package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play blackjack at the terminal"`
	Serve    ServeCmd         `cmd:"" help:"Run the WebSocket blackjack server"`
	Simulate SimulateCmd      `cmd:"" help:"Estimate the house edge with automated play"`
	Deal     DealCmd          `cmd:"" help:"Deal cards from a shoe and print them"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Single-deck casino blackjack: terminal play, a server and a simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
