package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rupanjan/devlog/pkg/adapters/fs"
)

const welcomeText = `
Welcome to Devlog!

Log your developer progress, bugs, ideas and context across projects.

Quick start:

  devlog new "Fixed navbar issue" -t bug,ui -a "Ray"     create a log
  devlog switch-to MyProject                             activate a project
  devlog context                                         show current context
  devlog all                                             list logs
  devlog search "API error" --tags backend               search (fuzzy)
  devlog find <id>                                       look up by id
  devlog delete <id>                                     delete a log
  devlog clean                                           clear all logs
  devlog resume                                          latest note in project

Happy logging!
`

// maybeShowWelcome prints the banner on first run only, gated by a marker
// file next to the global store.
func maybeShowWelcome() {
	layout, err := fs.NewLayout("")
	if err != nil {
		return
	}

	marker := layout.WelcomeMarkerPath()
	if _, err := os.Stat(marker); err == nil {
		return
	}

	fmt.Print(welcomeText)

	if err := os.MkdirAll(filepath.Dir(marker), 0755); err != nil {
		return
	}
	_ = os.WriteFile(marker, []byte("shown"), 0644)
}
