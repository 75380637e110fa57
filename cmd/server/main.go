package main

import (
	"context"
	"log"

	"github.com/wstore/webshop/internal/server"
	"github.com/wstore/webshop/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
