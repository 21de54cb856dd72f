/*
 * Javelin VM - A Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Command javelin is the CLI entry point (spec §6 "External interfaces").
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"javelin/globals"
	"javelin/jvm"
	"javelin/shutdown"
)

var (
	classpath string
	verbose   bool
	strictJDK bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "javelin <start-class> [args...]",
		Short: "A Java virtual machine",
		Long:  "Javelin loads and runs a single JVM class, the way `java ClassName` does.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  run,
	}

	rootCmd.Flags().StringVar(&classpath, "cp", "", "classpath, colon-separated directories and jars")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace class loading and linking")
	rootCmd.Flags().BoolVar(&strictJDK, "strict-jdk", false, "reject class files the JDK itself would reject")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		shutdown.Exit(shutdown.JVM_EXCEPTION)
	}
}

func run(cmd *cobra.Command, args []string) error {
	startClass := args[0]
	appArgs := args[1:]

	g := globals.InitGlobals("javelin")
	g.StrictJDK = strictJDK
	g.TraceClass = verbose
	g.TraceCloadi = verbose
	if classpath != "" {
		g.Classpath = strings.Split(classpath, ":")
	}

	if err := jvm.Init(); err != nil {
		return fmt.Errorf("javelin: %w", err)
	}

	shutdown.Exit(jvm.RunMain(startClass, appArgs))
	return nil
}
