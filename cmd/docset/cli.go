package main

import (
	"context"
	"errors"
	"io"

	"github.com/fwojciec/docset"
	"github.com/fwojciec/docset/build"
	"github.com/fwojciec/docset/lipgloss"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Printer *lipgloss.Printer
	Builder *build.Builder
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Source      string   `arg:"" name:"source" help:"Directory containing the HTML, CSS and JS documents"`
	Name        string   `short:"n" help:"Name the docset explicitly (default: source directory name)"`
	Destination string   `short:"d" placeholder:"PATH" help:"Put the resulting docset into PATH"`
	Icon        string   `short:"i" placeholder:"FILENAME" help:"Add PNG icon FILENAME (at most 16x16) to the docset"`
	IndexPage   string   `short:"p" name:"index-page" help:"Set the file that is shown first"`
	Version     string   `short:"v" help:"Version of the docset"`
	Keywords    []string `short:"k" name:"keyword" sep:"none" help:"Search keyword for the docset (repeatable)"`
	Config      string   `short:"c" type:"path" help:"Read settings from a YAML file"`
	Jobs        int      `short:"j" help:"Number of files copied concurrently (default: 1)"`
	Verify      bool     `help:"Verify copied files against their source"`
	Debug       bool     `help:"Enable debug logging"`
}

// BuildCmd builds a single docset.
type BuildCmd struct {
	Docset  *docset.Docset
	Request build.Request
}

// Run builds the docset and prints the outcome. An existing docset is
// reported as a warning, not an error.
func (c *BuildCmd) Run(deps *Dependencies) error {
	result, err := deps.Builder.Build(deps.Ctx, c.Docset, c.Request)
	if errors.Is(err, docset.ErrDocsetExists) {
		deps.Printer.Warning(docset.ErrorMessage(err))
		return nil
	}
	if err != nil {
		return err
	}

	deps.Printer.Success(result.Summary())
	return nil
}
