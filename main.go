package main

import (
	"github.com/alecthomas/kong"

	"github.com/christianolin/cellar-critiques-sub000/cmd"
)

func main() {
	ctx := kong.Parse(&cmd.CLI, kong.Name("Cellar Critiques"), kong.Description("CellarCritiques is a wine cellar and tasting journal backend."))
	err := ctx.Run(&cmd.Context{Debug: cmd.CLI.Debug})
	ctx.FatalIfErrorf(err)
}
