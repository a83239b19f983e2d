package main

import (
	"fmt"
	"os"

	duetcmder "github.com/papercomputeco/duet/cmd/duet"
)

func main() {
	cmd := duetcmder.NewDuetCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
