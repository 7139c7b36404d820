package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/urfave/cli/v2"

	"pdarena.dev/service/cli/tui"
	"pdarena.dev/service/types"
)

// TailCommand dials the live match-resolution stream and renders it,
// either as newline-delimited JSON or, with --tui, as a scrolling
// table via the Bubble Tea feed model.
func TailCommand() *cli.Command {
	return &cli.Command{
		Name:  "tail",
		Usage: "Tail the live match_resolution_lite stream",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "service-url", Usage: "pdarena-service base URL", Value: "http://localhost:8080"},
			&cli.StringFlag{Name: "api-key", Usage: "API key", Required: true},
			&cli.Int64Flag{Name: "submission-id", Usage: "Filter to one submission id"},
			&cli.BoolFlag{Name: "tui", Usage: "Render as a live scrolling table"},
		},
		Action: tailAction,
	}
}

func tailAction(c *cli.Context) error {
	wsURL, err := streamURL(c.String("service-url"), "/public/ws/match_resolution_lite/stream")
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("tail: dial: %w", err)
	}
	defer conn.Close()

	filter := types.MatchResolutionViewProps{ApiKey: c.String("api-key")}
	if c.IsSet("submission-id") {
		id := c.Int64("submission-id")
		filter.SubmissionID = &id
	}
	if err := conn.WriteJSON(filter); err != nil {
		return fmt.Errorf("tail: write filter: %w", err)
	}

	if c.Bool("tui") {
		return runTailTUI(conn)
	}
	return runTailPlain(conn)
}

func runTailPlain(conn *websocket.Conn) error {
	for {
		var row types.MatchResolutionLite
		if err := conn.ReadJSON(&row); err != nil {
			return nil
		}
		body, err := json.Marshal(row)
		if err != nil {
			continue
		}
		fmt.Println(string(body))
	}
}

func runTailTUI(conn *websocket.Conn) error {
	program := tui.RunMatchFeedTUI()

	go func() {
		for {
			var row types.MatchResolutionLite
			if err := conn.ReadJSON(&row); err != nil {
				program.Quit()
				return
			}
			program.Send(tui.MatchResolutionMsg(row))
		}
	}()

	_, err := program.Run()
	return err
}

// streamURL rewrites a service's http(s) base URL into the ws(s) URL
// for path.
func streamURL(base, path string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("tail: invalid service-url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String(), nil
}
