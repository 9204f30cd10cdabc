// Package main provides the entry point for the DXF Viewer application.
package main

import (
	"log"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"dxf-viewer/internal/app"
	"dxf-viewer/internal/version"
	"dxf-viewer/ui/mainwindow"
	"dxf-viewer/ui/prefs"
)

const appTitle = "DXF Viewer"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.New()

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// Handle command line arguments
	if len(os.Args) > 1 {
		drawingPath := os.Args[1]
		if err := appState.LoadDrawing(drawingPath); err != nil {
			log.Printf("Failed to load drawing %s: %v", drawingPath, err)
		}
	}

	win.Show()
	fyneApp.Run()

	if err := appPrefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}
