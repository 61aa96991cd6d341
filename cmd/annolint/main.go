package main

import (
	"os"

	"github.com/catalogkit/annolint/pkg/annolint"
)

func main() {
	os.Exit(annolint.Execute())
}
