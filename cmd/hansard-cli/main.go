package main

import (
	"context"
	"hansard-scraper/cmd/hansard-cli/commands"
	"hansard-scraper/lib/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext(context.Background())
	defer cancel()
	commands.ExecuteContext(ctx)
}
