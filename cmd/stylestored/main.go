// Command stylestored serves a style store over HTTP.
//
// Configuration comes from the environment; see stylestore.DefaultConfig.
package main

import (
	"context"
	"log"

	"github.com/garunski/stylestore/pkg/stylestore"
)

func main() {
	if err := stylestore.Run(context.Background(), stylestore.DefaultConfig()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
