package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL   string
	timeout   time.Duration
	authToken string
	sessionID string
)

// bcryptGenerate is swappable in tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "expenses-cli",
		Short: "Expense manager CLI tool",
		Long:  `A command line interface for interacting with the expense manager API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the expense manager API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("EXPENSES_TOKEN"), "Bearer token for authenticated endpoints")
	rootCmd.PersistentFlags().StringVar(&sessionID, "session", "", "Session ID for the fast mutation path (random by default)")

	rootCmd.AddCommand(
		stateCmd(),
		watchCmd(),
		subtractCmd(),
		addCmd(),
		editCmd(),
		deleteCmd(),
		logCmd(),
		loginCmd(),
		hashPasswordCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// stateView mirrors the server's state payload.
type stateView struct {
	Names            []string  `json:"names"`
	Values           []float64 `json:"values"`
	Rates            []float64 `json:"rates"`
	BaselineAt       time.Time `json:"baseline_at"`
	ServedAt         time.Time `json:"served_at"`
	UpdatesPerSecond int       `json:"updates_per_second"`
	Decimals         int       `json:"decimals"`
}

type mutationView struct {
	Message string    `json:"message"`
	TxID    int64     `json:"tx_id"`
	State   stateView `json:"state"`
}

func stateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the current state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var view stateView
			if err := doRequest(http.MethodGet, "/api/v1/state", nil, &view); err != nil {
				return err
			}

			printState(&view, time.Now().UTC())
			return nil
		},
	}
}

func watchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Continuously display the state, projected locally between fetches",
		RunE: func(cmd *cobra.Command, args []string) error {
			var view stateView
			if err := doRequest(http.MethodGet, "/api/v1/state", nil, &view); err != nil {
				return err
			}

			if interval <= 0 {
				ups := view.UpdatesPerSecond
				if ups <= 0 {
					ups = 10
				}
				interval = time.Second / time.Duration(ups)
			}

			// The server hands over one snapshot; the values advance
			// locally at the published rates until interrupted.
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

			for {
				select {
				case now := <-ticker.C:
					fmt.Print("\033[H\033[2J")
					printState(&view, now.UTC())
				case <-stop:
					return nil
				}
			}
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Refresh interval (default derives from the server's updates_per_second)")

	return cmd
}

func subtractCmd() *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "subtract <index> <amount>",
		Short: "Subtract an amount from an entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			var view mutationView
			err = doRequest(http.MethodPost, "/api/v1/state/subtract", map[string]any{
				"index":  index,
				"amount": amount,
				"note":   note,
			}, &view)
			if err != nil {
				return err
			}

			fmt.Println(view.Message)
			printState(&view.State, time.Now().UTC())
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Optional note recorded with the transaction")

	return cmd
}

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <start-value> <rate>",
		Short: "Append a new entry",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid start value %q: %w", args[1], err)
			}
			rate, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid rate %q: %w", args[2], err)
			}

			var view mutationView
			err = doRequest(http.MethodPost, "/api/v1/state/entries", map[string]any{
				"name":        args[0],
				"start_value": start,
				"rate":        rate,
			}, &view)
			if err != nil {
				return err
			}

			fmt.Println(view.Message)
			return nil
		},
	}
}

func editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <index> <name> <current-value> <rate>",
		Short: "Replace an entry's name, value and rate",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			value, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[2], err)
			}
			rate, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("invalid rate %q: %w", args[3], err)
			}

			var view mutationView
			err = doRequest(http.MethodPut, fmt.Sprintf("/api/v1/state/entries/%d", index), map[string]any{
				"name":          args[1],
				"current_value": value,
				"rate":          rate,
			}, &view)
			if err != nil {
				return err
			}

			fmt.Println(view.Message)
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <index>",
		Short: "Remove an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}

			var view mutationView
			err = doRequest(http.MethodDelete, fmt.Sprintf("/api/v1/state/entries/%d", index), nil, &view)
			if err != nil {
				return err
			}

			fmt.Println(view.Message)
			return nil
		},
	}
}

func logCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent transactions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var view struct {
				Transactions []struct {
					TxID      int64           `json:"tx_id"`
					Timestamp time.Time       `json:"timestamp"`
					EntryName string          `json:"entry_name"`
					Delta     decimal.Decimal `json:"delta"`
					Note      string          `json:"note"`
				} `json:"transactions"`
			}
			if err := doRequest(http.MethodGet, fmt.Sprintf("/api/v1/transactions?limit=%d", limit), nil, &view); err != nil {
				return err
			}

			fmt.Printf("%-8s %-25s %-20s %12s  %s\n", "TX", "TIME", "ENTRY", "DELTA", "NOTE")
			for _, tx := range view.Transactions {
				fmt.Printf("%-8d %-25s %-20s %12s  %s\n",
					tx.TxID,
					tx.Timestamp.Format(time.RFC3339),
					truncate(tx.EntryName, 20),
					tx.Delta.String(),
					truncate(tx.Note, 40),
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Number of transactions to fetch")

	return cmd
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Authenticate and print a bearer token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var view struct {
				Token string `json:"token"`
			}
			err := doRequest(http.MethodPost, "/api/v1/auth/login", map[string]any{
				"email":    args[0],
				"password": args[1],
			}, &view)
			if err != nil {
				return err
			}

			fmt.Println(view.Token)
			return nil
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			fmt.Println(string(hash))
			return nil
		},
	}
}

// doRequest performs one API call and decodes the JSON response into out.
func doRequest(method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", resolveSessionID())
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	if method != http.MethodGet {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (status %d): %s", apiErr.Error, resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(data, out)
}

// resolveSessionID keeps one session identity per CLI invocation so
// consecutive mutations can reuse the server's fast path.
func resolveSessionID() string {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return sessionID
}

// printState renders the record projected to the given instant.
func printState(view *stateView, now time.Time) {
	elapsed := now.Sub(view.ServedAt).Seconds()

	fmt.Printf("%-20s %20s %16s\n", "ENTRY", "VALUE", "RATE/S")
	for i, name := range view.Names {
		value := view.Values[i] + view.Rates[i]*elapsed
		display := decimal.NewFromFloat(value).Round(int32(view.Decimals))
		fmt.Printf("%-20s %20s %16v\n", truncate(name, 20), display.StringFixed(int32(view.Decimals)), view.Rates[i])
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to encode: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
