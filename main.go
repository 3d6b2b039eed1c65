package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/vanlineshq/moveline/internal/cli"
)

//go:embed frontend/dist/*
var frontendFS embed.FS

func main() {
	distFS, err := fs.Sub(frontendFS, "frontend/dist")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load embedded frontend: %v\n", err)
		os.Exit(1)
	}

	if err := cli.Execute(distFS); err != nil {
		os.Exit(1)
	}
}
