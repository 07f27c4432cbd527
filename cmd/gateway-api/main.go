package main

import (
	"context"
	"log"

	"github.com/skystore/storefront/internal/app/gateway"
)

func main() {
	if err := gateway.Run(context.Background()); err != nil {
		log.Fatalf("gateway API failed: %v", err)
	}
}
