package telegram

import (
	"testing"
	"time"

	"crosspost/models"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   Command
		wantOK bool
	}{
		{"plain command", "/help", Command{Name: "help"}, true},
		{"command with args", "/post Hello | world | twitter", Command{Name: "post", Args: "Hello | world | twitter"}, true},
		{"bot suffix stripped", "/status@CrossPostBot", Command{Name: "status"}, true},
		{"uppercase normalized", "/POST something", Command{Name: "post", Args: "something"}, true},
		{"leading whitespace", "  /start", Command{Name: "start"}, true},
		{"not a command", "just a message", Command{}, false},
		{"bare slash", "/", Command{}, false},
		{"empty", "", Command{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCommand(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ParseCommand(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseCommand(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParsePostArgs(t *testing.T) {
	defaults := []models.Platform{models.Twitter}

	tests := []struct {
		name    string
		args    string
		wantErr bool
		check   func(t *testing.T, req *models.CreatePostRequest)
	}{
		{
			name: "full post",
			args: "Launch day | We are live! | twitter,facebook",
			check: func(t *testing.T, req *models.CreatePostRequest) {
				if req.Title != "Launch day" || req.Description != "We are live!" {
					t.Fatalf("title/description = %q/%q", req.Title, req.Description)
				}
				if len(req.Platforms) != 2 || req.Platforms[0] != models.Twitter || req.Platforms[1] != models.Facebook {
					t.Fatalf("platforms = %v", req.Platforms)
				}
				if req.ScheduledFor != nil {
					t.Fatal("unscheduled post got a scheduled time")
				}
			},
		},
		{
			name: "defaults used when platforms omitted",
			args: "Title | description",
			check: func(t *testing.T, req *models.CreatePostRequest) {
				if len(req.Platforms) != 1 || req.Platforms[0] != models.Twitter {
					t.Fatalf("platforms = %v, want defaults %v", req.Platforms, defaults)
				}
			},
		},
		{
			name: "scheduled post",
			args: "Title | description | twitter | 2026-09-01 10:30",
			check: func(t *testing.T, req *models.CreatePostRequest) {
				if req.ScheduledFor == nil {
					t.Fatal("ScheduledFor is nil")
				}
				want := time.Date(2026, 9, 1, 10, 30, 0, 0, time.Local)
				if !req.ScheduledFor.Equal(want) {
					t.Fatalf("ScheduledFor = %v, want %v", req.ScheduledFor, want)
				}
			},
		},
		{
			name: "platform names normalized",
			args: "Title | description |  Twitter , FACEBOOK ",
			check: func(t *testing.T, req *models.CreatePostRequest) {
				if len(req.Platforms) != 2 || req.Platforms[0] != models.Twitter || req.Platforms[1] != models.Facebook {
					t.Fatalf("platforms = %v", req.Platforms)
				}
			},
		},
		{name: "empty args", args: "", wantErr: true},
		{name: "missing description", args: "Title only", wantErr: true},
		{name: "blank title", args: " | description | twitter", wantErr: true},
		{name: "bad schedule time", args: "Title | description | twitter | tomorrow-ish", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParsePostArgs(tt.args, defaults)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePostArgs(%q) succeeded, want error", tt.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePostArgs(%q): %v", tt.args, err)
			}
			tt.check(t, req)
		})
	}
}

func TestParsePostArgsNoPlatformsAnywhere(t *testing.T) {
	if _, err := ParsePostArgs("Title | description", nil); err == nil {
		t.Fatal("expected an error when no platforms are given and no defaults exist")
	}
}
