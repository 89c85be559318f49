package main

import (
	"os"

	"github.com/mkoziy/i18nmodel/cmd/i18nmodel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
