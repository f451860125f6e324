// Command cecil manages Cecil platform resources (AOIs, datasets,
// subscriptions, webhooks) and loads subscription data into CSV.
package main

import (
	"fmt"
	"os"

	"github.com/cecil-earth/cecil-go/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
