// Command vecview shows vector drawings in the terminal, or renders them to
// an image file with -o.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"vecview/internal/config"
	"vecview/internal/tui"
)

var (
	confFlag  = flag.String("conf", "", "configuration file (TOML)")
	outFlag   = flag.String("o", "", "render to this file (.png, .bmp, .tif, .tiff, .svg) instead of opening the viewer")
	styleFlag = flag.String("style", "", "style for shapes without one, e.g. \"stroke:black;fill:none\"")
	modeFlag  = flag.String("mode", "", "render mode: outline or color")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: vecview [flags] [file]\n")
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() > 1 {
		usage()
		os.Exit(2)
	}
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	if *outFlag != "" {
		if flag.NArg() != 1 {
			log.Fatal("-o needs an input file")
		}
		// logs go to stderr; there is no screen to protect
		logger, closeLog, err := cfg.Log.NewLogger(os.Stderr)
		if err != nil {
			log.Fatal(err)
		}
		defer closeLog()
		if err := export(cfg, logger, flag.Arg(0), *outFlag); err != nil {
			logger.Error("render failed", "error", err)
			closeLog()
			os.Exit(1)
		}
		return
	}

	// the viewer owns the terminal; only a log file receives output
	logger, closeLog, err := cfg.Log.NewLogger(nil)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()
	var m tui.Model
	if flag.NArg() == 1 {
		m, err = tui.NewWithPath(cfg, logger, flag.Arg(0))
	} else {
		m, err = tui.New(cfg, logger)
	}
	if err != nil {
		log.Fatal(err)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		logger.Error("viewer stopped", "error", err)
		log.Fatal(err)
	}
}

// loadConfig reads -conf and applies the flag overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *confFlag != "" {
		var err error
		if cfg, err = config.Load(*confFlag); err != nil {
			return nil, err
		}
	}
	for _, k := range applyOverrides(cfg, *styleFlag, *modeFlag) {
		log.Printf("flag overrides %s from %s", k, *confFlag)
	}
	return cfg, cfg.Validate()
}

// applyOverrides sets non-empty flag values over cfg and returns the keys
// of the configuration file they replace.
func applyOverrides(cfg *config.Config, style, mode string) []string {
	var replaced []string
	if style != "" {
		if cfg.IsDefined("render", "style") {
			replaced = append(replaced, "render.style")
		}
		cfg.Render.Style = style
	}
	if mode != "" {
		if cfg.IsDefined("render", "mode") {
			replaced = append(replaced, "render.mode")
		}
		cfg.Render.Mode = mode
	}
	return replaced
}
