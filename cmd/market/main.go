package main

import (
	"context"
	"log"

	"github.com/ecomarket/marketplace/internal/app/cli"
)

func main() {
	if err := cli.Run(context.Background()); err != nil {
		log.Fatalf("marketplace exited: %v", err)
	}
}
