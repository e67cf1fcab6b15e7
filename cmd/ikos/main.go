package main

import (
	"os"

	"github.com/hashicorp-forge/ikos/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
