package main

import (
	"listo/internal/cli"
	"os"
)

func main() {
	os.Exit(cli.Execute())
}
