package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wideptr",
		Short: "Capability code generator for wide references",
		Long: `wideptr generates Pointee capability declarations for struct and interface
types marked with //wideptr:pointee, so that references to dynamically-sized
values can be split into an address and a metadata token and rebuilt later.`,
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(genCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
