// Package main provides the CLI entry point for layoutcopy.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/docxtools/layoutcopy/pkg/layoutcopy"
)

const version = "1.0.0"

var (
	outputPath  string
	mapSections bool
	showHostUI  bool
	configPath  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "layoutcopy <template.docx> <report.docx>",
		Short: "Copy page layout and styles between documents",
		Long: `layoutcopy copies page setup, section borders, headers/footers and named
styles from a template document onto a working copy of a report document,
then patches decorative page borders directly into the output package.`,
		Args:         cobra.ExactArgs(2),
		RunE:         runTransfer,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: <report>_with_layout.docx)")
	rootCmd.Flags().BoolVar(&mapSections, "map-sections", false, "Apply template section i to report section i instead of broadcasting section 1")
	rootCmd.Flags().BoolVar(&showHostUI, "show-host-ui", false, "Show the document host UI while it works (may be slower)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (TOML)")

	patchCmd := &cobra.Command{
		Use:   "patch-borders <template.docx> <output.docx>",
		Short: "Patch decorative page borders only (no document host needed)",
		Args:  cobra.ExactArgs(2),
		RunE:  runPatch,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("layoutcopy version " + version)
		},
	}

	rootCmd.AddCommand(patchCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup layers config from file, .env and environment, then installs it
func setup() error {
	// A missing .env just means the process environment is used as-is
	_ = godotenv.Load()

	path := configPath
	if path == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(dir, "layoutcopy", "config.toml")
		}
	}

	cfg, err := layoutcopy.LoadConfigFile(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	layoutcopy.SetGlobalConfig(cfg)
	return nil
}

func runTransfer(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	cfg := layoutcopy.GetGlobalConfig()

	template, report := args[0], args[1]

	out := outputPath
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(report), filepath.Ext(report))
		out = filepath.Join(filepath.Dir(report), base+"_with_layout.docx")
	}

	// Flags win over the config file defaults
	mapping, err := layoutcopy.ParseSectionMapping(cfg.SectionMapping)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("map-sections") {
		mapping = layoutcopy.Broadcast
		if mapSections {
			mapping = layoutcopy.MapByIndex
		}
	}
	showUI := cfg.ShowHostUI
	if cmd.Flags().Changed("show-host-ui") {
		showUI = showHostUI
	}

	result, err := layoutcopy.Transfer(layoutcopy.Options{
		SourcePath: template,
		TargetPath: report,
		OutputPath: out,
		Mapping:    mapping,
		ShowHostUI: showUI,
		Progress: func(msg string) {
			fmt.Println(msg)
		},
	})
	if err != nil {
		return err
	}

	fmt.Println("done:", result.OutputPath)
	if !result.BordersPatched {
		fmt.Println("note: the template has no decorative page borders")
	}
	return nil
}

func runPatch(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}

	template, output := args[0], args[1]
	for _, path := range []string{template, output} {
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			return fmt.Errorf("file not found: %s", path)
		}
	}

	patched, err := layoutcopy.PatchPageBorders(template, output)
	if err != nil {
		return err
	}
	if patched {
		fmt.Println("decorative page borders patched into", output)
	} else {
		fmt.Println("no page borders found in", template)
	}
	return nil
}
