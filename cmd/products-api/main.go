package main

import (
	"context"
	"log"

	"github.com/skystore/storefront/internal/app/products"
)

func main() {
	if err := products.Run(context.Background()); err != nil {
		log.Fatalf("products API failed: %v", err)
	}
}
