package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(standingCmd)
	rootCmd.AddCommand(playedCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(penalizeCmd)
	rootCmd.AddCommand(roleCmd)
	rootCmd.AddCommand(friendCodeCmd)
	rootCmd.AddCommand(orphansCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List every registered player",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/players", nil)
	},
}

var playerCmd = &cobra.Command{
	Use:   "player <discord-id>",
	Short: "Show a single player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/players/"+args[0], nil)
	},
}

var standingCmd = &cobra.Command{
	Use:   "standing <discord-id>",
	Short: "Show a player's placement in the power ranking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/players/"+args[0]+"/standing", nil)
	},
}

var playedCmd = &cobra.Command{
	Use:   "played <discord-id>",
	Short: "Check whether a player has played a set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/players/"+args[0]+"/played", nil)
	},
}

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List the stages in the map pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/maps", nil)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show players ranked by power",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/leaderboard", nil)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <discord-id> <starting-power> <nickname>",
	Short: "Register a new player",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		power, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid starting power %q: %w", args[1], err)
		}
		return performRequest(http.MethodPost, "/players", map[string]any{
			"discordId":     args[0],
			"startingPower": power,
			"name":          strings.Join(args[2:], " "),
		})
	},
}

var penalizeCmd = &cobra.Command{
	Use:   "penalize <discord-id> <points> <notes...>",
	Short: "Post a point penalty against a player",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		points, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid points %q: %w", args[1], err)
		}
		return performRequest(http.MethodPost, "/players/"+args[0]+"/penalties", map[string]any{
			"points": points,
			"notes":  strings.Join(args[2:], " "),
		})
	},
}

var roleCmd = &cobra.Command{
	Use:   "role <discord-id> <role>",
	Short: "Set a player's role",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPut, "/players/"+args[0]+"/role", map[string]any{"value": strings.Join(args[1:], " ")})
	},
}

var friendCodeCmd = &cobra.Command{
	Use:   "friend-code <discord-id> <code>",
	Short: "Set a player's friend code",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPut, "/players/"+args[0]+"/friend-code", map[string]any{"value": args[1]})
	},
}

var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "List adjustments that could not be linked to their player",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/audit/orphans", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

func performRequest(method, endpoint string, body any) error {
	url := host + endpoint
	if dryRun {
		url += "?dry_run=true"
	}
	fmt.Printf("Making %s request to %s\n", method, url)

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
