package main

import (
	"os"

	"github.com/davidjonas/AnyMail/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
