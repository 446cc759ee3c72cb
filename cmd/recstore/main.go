package main

import (
	"fmt"
	"os"
	"recstore/internal/di"
	"recstore/internal/structures"

	"github.com/spf13/pflag"
)

func main() {
	flags := &structures.CliFlags{}
	pflag.StringVarP(&flags.ConfigPath, "config", "c", "", "path to a YAML config file")
	pflag.BoolVar(&flags.DebugMode, "debug", false, "debug logging to the console")
	pflag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "recstore: %s\n", err)
		os.Exit(1)
	}
}
