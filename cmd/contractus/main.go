package main

import (
	"os"

	"github.com/haiman1024/Contractus/cmd/contractus/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
