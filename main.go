package main

import (
	"os"

	"rockbox-tools/tagcache/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
