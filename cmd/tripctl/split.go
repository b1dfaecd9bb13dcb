package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/mmynk/tripsplit/internal/calculator"
)

type splitCmd struct {
	amount   float64
	payer    string
	members  string
	shares   string
	norm     string
	currency string
}

func (*splitCmd) Name() string     { return "split" }
func (*splitCmd) Synopsis() string { return "split an expense among members without a server" }
func (*splitCmd) Usage() string {
	return `split -amount <amount> -payer <id> -members <a,b,c> [-shares a=1,b=2 [-norm normalize|strict|raw]] [-currency EUR]

  Prints what each member owes. Without -shares the amount is split equally.
`
}

func (c *splitCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "Expense amount (required)")
	f.StringVar(&c.payer, "payer", "", "Member who paid (required)")
	f.StringVar(&c.members, "members", "", "Comma separated member IDs (required)")
	f.StringVar(&c.shares, "shares", "", "Manual shares as member=value pairs")
	f.StringVar(&c.norm, "norm", string(calculator.Normalize), "Manual share handling: normalize, strict or raw")
	f.StringVar(&c.currency, "currency", envOr("CURRENCY", "EUR"), "Currency code used for display")
}

func (c *splitCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	req := calculator.SplitRequest{
		Amount:  c.amount,
		Payer:   c.payer,
		Members: splitList(c.members),
		Mode:    calculator.ModeEqual,
	}
	if c.shares != "" {
		shares, err := parseShares(c.shares)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		req.Mode = calculator.ModeManual
		req.Shares = shares
		req.Normalization = calculator.Normalization(c.norm)
	}

	split, err := calculator.Compute(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	r := calculator.Roster{Members: req.Members}
	lines := calculator.ShareBreakdown(r, calculator.Expense{Amount: c.amount, Payer: c.payer, Split: split})
	printShares(os.Stdout, lines, c.currency)
	return subcommands.ExitSuccess
}

func printShares(w io.Writer, lines []calculator.ShareLine, currency string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "MEMBER\tOWES\tSHARE\t")
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%s\t%.0f%%\t\n", l.Label, formatAmount(l.AmountOwed, currency), l.PercentOwed)
	}
	tw.Flush()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
