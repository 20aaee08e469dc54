package main

import (
	"os"

	"cert-system/seeders"
)

func main() {
	if err := seeders.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
