package telegram

import (
	"fmt"
	"strings"
	"time"

	"crosspost/models"
)

// Command is one parsed slash-command.
type Command struct {
	Name string
	Args string
}

// ParseCommand splits a message text into a command name and its argument
// string. Returns ok=false for anything that is not a slash-command.
func ParseCommand(text string) (Command, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return Command{}, false
	}

	name, args, _ := strings.Cut(text[1:], " ")
	if name == "" {
		return Command{}, false
	}

	// Commands may carry the bot username suffix in group chats: /post@MyBot
	name, _, _ = strings.Cut(name, "@")

	return Command{Name: strings.ToLower(name), Args: strings.TrimSpace(args)}, true
}

// postCommandLayouts are the accepted schedule-time formats for /post.
var postCommandLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// ParsePostArgs parses the /post argument string:
//
//	/post Title | description | twitter,facebook [| 2025-01-02 15:04]
//
// Platforms may be omitted when the caller has default platforms configured.
func ParsePostArgs(args string, defaults []models.Platform) (*models.CreatePostRequest, error) {
	if args == "" {
		return nil, fmt.Errorf("usage: /post Title | description | platform1,platform2 [| schedule time]")
	}

	parts := strings.Split(args, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("a post needs both a title and a description")
	}

	req := &models.CreatePostRequest{
		Title:       parts[0],
		Description: parts[1],
	}

	if len(parts) >= 3 && parts[2] != "" {
		for _, name := range strings.Split(parts[2], ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			req.Platforms = append(req.Platforms, models.Platform(name))
		}
	}
	if len(req.Platforms) == 0 {
		req.Platforms = defaults
	}
	if len(req.Platforms) == 0 {
		return nil, fmt.Errorf("no platforms given and no default platforms configured")
	}

	if len(parts) >= 4 && parts[3] != "" {
		scheduled, err := parseScheduleTime(parts[3])
		if err != nil {
			return nil, err
		}
		req.ScheduledFor = &scheduled
	}

	return req, nil
}

func parseScheduleTime(value string) (time.Time, error) {
	for _, layout := range postCommandLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized schedule time %q (use e.g. 2025-01-02 15:04)", value)
}
