package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"connectrpc.com/connect"
	"github.com/google/subcommands"

	"github.com/mmynk/tripsplit/internal/api"
)

const tokenEnv = "TRIPSPLIT_TOKEN"

func httpClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}

type loginCmd struct {
	server   string
	email    string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "sign in and print a session token" }
func (*loginCmd) Usage() string {
	return `login -email <email> [-password <password>] [-server <url>]

  Prints a token to export as ` + tokenEnv + `. The password defaults to
  the TRIPSPLIT_PASSWORD environment variable.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.server, "server", envOr("TRIPSPLIT_SERVER", "http://localhost:8080"), "Server base URL")
	f.StringVar(&c.email, "email", "", "Account email (required)")
	f.StringVar(&c.password, "password", os.Getenv("TRIPSPLIT_PASSWORD"), "Account password")
}

func (c *loginCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" || c.password == "" {
		fmt.Fprintln(os.Stderr, "Error: -email and a password are required.")
		return subcommands.ExitUsageError
	}

	client := api.NewAuthServiceClient(httpClient(), c.server)
	resp, err := client.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: c.email, Password: c.password}))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: login failed: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println(resp.Msg.Token)
	return subcommands.ExitSuccess
}

type ledgerCmd struct {
	server   string
	token    string
	plan     string
	currency string
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "print the expenses and balances of a plan" }
func (*ledgerCmd) Usage() string {
	return `ledger -plan <id> [-server <url>] [-token <token>] [-currency EUR]

  The token defaults to the ` + tokenEnv + ` environment variable.
`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.server, "server", envOr("TRIPSPLIT_SERVER", "http://localhost:8080"), "Server base URL")
	f.StringVar(&c.token, "token", os.Getenv(tokenEnv), "Session token")
	f.StringVar(&c.plan, "plan", "", "Plan ID (required)")
	f.StringVar(&c.currency, "currency", envOr("CURRENCY", "EUR"), "Currency code used for display")
}

func (c *ledgerCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.plan == "" || c.token == "" {
		fmt.Fprintf(os.Stderr, "Error: -plan and a token (-token or %s) are required.\n", tokenEnv)
		return subcommands.ExitUsageError
	}

	client := api.NewExpenseServiceClient(httpClient(), c.server)
	req := connect.NewRequest(&api.GetPlanLedgerRequest{PlanID: c.plan})
	req.Header().Set("Authorization", "Bearer "+c.token)

	resp, err := client.GetPlanLedger(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printLedger(os.Stdout, resp.Msg.Ledger, c.currency)
	return subcommands.ExitSuccess
}

func printLedger(w io.Writer, ledger api.PlanLedger, currency string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "EXPENSE\tPAID BY\tAMOUNT")
	for _, e := range ledger.Expenses {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Title, e.PayerLabel, formatAmount(e.Amount, currency))
		for _, s := range e.Shares {
			fmt.Fprintf(tw, "  %s\t\t%s (%.0f%%)\n", s.Label, formatAmount(s.Amount, currency), s.Percent)
		}
	}
	fmt.Fprintf(tw, "TOTAL\t\t%s\n\n", formatAmount(ledger.Total, currency))

	fmt.Fprintln(tw, "MEMBER\tPAID\tNET")
	for _, b := range ledger.Balances {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Label, formatAmount(b.TotalPaid, currency), formatAmount(b.NetBalance, currency))
	}

	if len(ledger.Transfers) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "TO SETTLE\t\t")
		for _, t := range ledger.Transfers {
			fmt.Fprintf(tw, "%s\t-> %s\t%s\n", t.FromLabel, t.ToLabel, formatAmount(t.Amount, currency))
		}
	}
	tw.Flush()

	if len(ledger.Expenses) == 0 {
		fmt.Fprintln(w, "No expenses yet.")
	}
}
