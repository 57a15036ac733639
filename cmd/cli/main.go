package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tillbook-cli",
		Short: "Tillbook CLI tool",
		Long:  `A command line interface for interacting with the Tillbook back-office API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Tillbook API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the chart of accounts with balances",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/")
		},
	}

	shiftCmd := &cobra.Command{
		Use:   "shift",
		Short: "Show the current register shift",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/shifts/current")
		},
	}

	cardsCmd := &cobra.Command{
		Use:   "cards",
		Short: "List card transactions awaiting bank settlement",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/cards/pending")
		},
	}

	debtsCmd := &cobra.Command{
		Use:   "debts",
		Short: "List outstanding client debts",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/debts/")
		},
	}

	billsCmd := &cobra.Command{
		Use:   "bills",
		Short: "List unpaid supplier bills",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/expenses/bills")
		},
	}

	rootCmd.AddCommand(accountsCmd, shiftCmd, cardsCmd, debtsCmd, billsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty any
	if err := json.Unmarshal(body, &pretty); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Println(string(out))
}
