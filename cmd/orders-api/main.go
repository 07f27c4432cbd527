package main

import (
	"context"
	"log"

	"github.com/skystore/storefront/internal/app/orders"
)

func main() {
	if err := orders.Run(context.Background()); err != nil {
		log.Fatalf("orders API failed: %v", err)
	}
}
