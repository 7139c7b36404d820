package tui

import (
	"testing"
)

func TestIsTUISupported(t *testing.T) {
	tests := []struct {
		viewType string
		want     bool
	}{
		{"match_feed", true},
		{"inspect_run", false},
		{"stats_runs", false},
		{"list_runs", false},
		{"version", false},
		{"unknown", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.viewType, func(t *testing.T) {
			got := IsTUISupported(tt.viewType)
			if got != tt.want {
				t.Errorf("IsTUISupported(%q) = %v, want %v", tt.viewType, got, tt.want)
			}
		})
	}
}

func TestSupportedTUIViews(t *testing.T) {
	views := SupportedTUIViews()

	if len(views) != 1 {
		t.Errorf("SupportedTUIViews() returned %d views, expected 1", len(views))
	}

	for _, v := range views {
		if !IsTUISupported(v) {
			t.Errorf("SupportedTUIViews() returned %q but IsTUISupported returns false", v)
		}
	}
}

func TestRun_UnsupportedViewType(t *testing.T) {
	err := Run("list_runs", nil)
	if err == nil {
		t.Error("Expected error for unsupported view type")
	}
}

func TestRun_SupportedViewType(t *testing.T) {
	err := Run("match_feed", nil)
	if err != nil {
		t.Errorf("Run(match_feed) returned unexpected error: %v", err)
	}
}
