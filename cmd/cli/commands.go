package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	displayName string
	avatarRef   string
	waitForJoin bool
	scoreDelta  int64
)

func init() {
	matchmakeCmd.Flags().StringVar(&displayName, "name", "", "Display name of the requester")
	matchmakeCmd.Flags().StringVar(&avatarRef, "avatar", "", "Avatar reference of the requester")
	matchmakeCmd.Flags().BoolVar(&waitForJoin, "wait", false, "Block until an opponent joins")
	scoreCmd.Flags().Int64Var(&scoreDelta, "delta", 0, "Score delta to apply")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(matchmakeCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(myMatchesCmd)
	rootCmd.AddCommand(waitingCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(clearCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var matchmakeCmd = &cobra.Command{
	Use:   "matchmake <userId>",
	Short: "Find a waiting match to join, or create one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/matchmake"
		if waitForJoin {
			endpoint += "?wait=true"
		}
		return performPostRequest(endpoint, map[string]any{
			"userId":      args[0],
			"displayName": displayName,
			"avatarRef":   avatarRef,
		})
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score <matchId> <userId>",
	Short: "Apply a score delta to the user's slot in a match",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/score", map[string]any{
			"matchId": args[0],
			"userId":  args[1],
			"delta":   scoreDelta,
		})
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <matchId>",
	Short: "Transition an active match to completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/complete", map[string]any{
			"matchId": args[0],
		})
	},
}

var matchCmd = &cobra.Command{
	Use:   "match <matchId>",
	Short: "Get a single match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/match?id=" + args[0])
	},
}

var myMatchesCmd = &cobra.Command{
	Use:   "my-matches <userId>",
	Short: "List the matches a player has joined",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/my-matches?userId=" + args[0])
	},
}

var waitingCmd = &cobra.Command{
	Use:   "waiting",
	Short: "List the current waiting pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/waiting")
	},
}

var questionsCmd = &cobra.Command{
	Use:   "questions [id]",
	Short: "List question sets, or get one by id",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return performGetRequest("/questions?id=" + args[0])
		}
		return performGetRequest("/questions")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get persistent operational counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear [matchId]",
	Short: "Clear the store, or a single match",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return performGetRequest("/clear?matchID=" + args[0])
		}
		return performGetRequest("/clear")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, payload any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
