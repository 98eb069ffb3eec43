package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/dmitrijs2005/gopherblog/internal/admin/cli"
	"github.com/dmitrijs2005/gopherblog/internal/flagx"
	"github.com/dmitrijs2005/gopherblog/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg, os.Stdin, os.Stdout)

	if err != nil {
		log.Fatalf("%v", err)
	}

	err = app.Run(ctx, flagx.Positional(os.Args[1:], config.FlagNames()))
	if cerr := app.Close(); cerr != nil {
		log.Printf("close error: %v", cerr)
	}

	if err != nil {
		log.Printf("%v", err)
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}

}
