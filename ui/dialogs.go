package ui

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	fynestorage "fyne.io/fyne/v2/storage"
	"github.com/ncruces/zenity"
)

// PickFile opens the system's native file dialog.
// Priority order: 1) kdialog (KDE), 2) Zenity, 3) Fyne (fallback).
// An empty path means the user cancelled.
func (mw *MainWindow) PickFile(title, startDir string) (string, error) {
	if startDir == "" {
		startDir = homeDir()
	}

	if isKDialogAvailable() {
		if filename, err := openKDialog(title, startDir); err == nil {
			return filename, nil
		}
		mw.logger.Debug("kdialog failed, trying zenity")
	}

	if zenity.IsAvailable() {
		filename, err := zenity.SelectFile(
			zenity.Title(title),
			zenity.Filename(startDir+string(os.PathSeparator)),
		)
		if err != nil {
			if errors.Is(err, zenity.ErrCanceled) {
				return "", nil
			}
			mw.logger.Debug("zenity failed, using Fyne dialog", "error", err)
			return mw.openFyneFileDialog(startDir)
		}
		return filename, nil
	}

	return mw.openFyneFileDialog(startDir)
}

// openFyneFileDialog shows the Fyne file dialog and waits for the result
func (mw *MainWindow) openFyneFileDialog(startDir string) (string, error) {
	resultChan := make(chan string, 1)
	errorChan := make(chan error, 1)

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			errorChan <- err
			return
		}
		if reader == nil {
			resultChan <- "" // User cancelled
			return
		}
		defer reader.Close()
		resultChan <- reader.URI().Path()
	}, mw.window)

	if startDir != "" {
		if listable, err := fynestorage.ListerForURI(fynestorage.NewFileURI(startDir)); err == nil {
			fileDialog.SetLocation(listable)
		}
	}

	fileDialog.Show()

	select {
	case filename := <-resultChan:
		return filename, nil
	case err := <-errorChan:
		return "", err
	}
}

// isKDialogAvailable checks for the KDE dialog tool
func isKDialogAvailable() bool {
	_, err := exec.LookPath("kdialog")
	return err == nil
}

// openKDialog opens a file dialog using kdialog
func openKDialog(title, startDir string) (string, error) {
	cmd := exec.Command("kdialog", "--getopenfilename", startDir, "*", "--title", title)
	output, err := cmd.Output()
	if err != nil {
		// Exit code 1 means the user cancelled
		var exitError *exec.ExitError
		if errors.As(err, &exitError) && exitError.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// Confirm asks a yes/no question and waits for the answer
func (mw *MainWindow) Confirm(title, message string) bool {
	if zenity.IsAvailable() {
		err := zenity.Question(message,
			zenity.Title(title),
			zenity.OKLabel("Reset"),
			zenity.CancelLabel("Cancel"),
			zenity.WarningIcon,
		)
		if err == nil {
			return true
		}
		if errors.Is(err, zenity.ErrCanceled) {
			return false
		}
		mw.logger.Debug("zenity question failed, using Fyne dialog", "error", err)
	}

	answer := make(chan bool, 1)
	dialog.ShowConfirm(title, message, func(confirm bool) {
		answer <- confirm
	}, mw.window)
	return <-answer
}

// Warn shows a warning alert
func (mw *MainWindow) Warn(title, message string) {
	dialog.ShowInformation(title, message, mw.window)
}

// ShowError shows an error alert with the underlying reason
func (mw *MainWindow) ShowError(title string, err error) {
	dialog.ShowError(fmt.Errorf("%s: %w", title, err), mw.window)
}

// Info shows an information alert
func (mw *MainWindow) Info(title, message string) {
	dialog.ShowInformation(title, message, mw.window)
}

func homeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return dir
}
