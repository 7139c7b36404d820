// Package tui provides Bubble Tea TUI components for the pdarena-cli
// operator tool.
//
// TUI is opt-in only (--tui flag on pdarena-cli tail) and read-only:
// it renders the same live match-resolution feed the plain-text tail
// mode prints.
package tui

import "fmt"

// Run checks that viewType supports TUI mode, returning an error if it
// does not. It starts no program itself.
func Run(viewType string, data any) error {
	if !IsTUISupported(viewType) {
		return fmt.Errorf("TUI mode is not supported for %s", viewType)
	}
	return nil
}

// IsTUISupported returns true if the view type supports TUI mode. The
// only supported view is the live match feed; RunMatchFeedTUI is
// started directly by cli/cmd/tail.go rather than through Run, since
// it needs a handle to push MatchResolutionMsg values as they arrive.
func IsTUISupported(viewType string) bool {
	return viewType == "match_feed"
}

// SupportedTUIViews returns the list of view types that support TUI.
func SupportedTUIViews() []string {
	return []string{"match_feed"}
}
