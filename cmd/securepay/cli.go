package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kevin07696/securepay-periodic/internal/adapters/ports"
	"github.com/kevin07696/securepay-periodic/internal/domain"
	"github.com/kevin07696/securepay-periodic/internal/services/batch"
	"go.uber.org/zap"
)

const (
	exitApproved = 0
	exitError    = 1
	exitDeclined = 3
)

type exchangeHistory interface {
	ListByClient(ctx context.Context, merchantID, clientID string, limit int) ([]*ports.GatewayExchange, error)
}

// CLI runs one action against one merchant
type CLI struct {
	ctx      context.Context
	merchant domain.MerchantCredentials
	currency domain.Currency
	workers  int
	gateway  ports.PeriodicGatewayAdapter
	history  exchangeHistory
	logger   *zap.Logger
	stdout   io.Writer
}

func runIssuer(opts options) int {
	issuer, ok := domain.GleanIssuer(domain.Card{Number: opts.card}.Digits())
	if !ok {
		fmt.Println("unknown")
		return exitDeclined
	}
	fmt.Println(issuer.Name())
	return exitApproved
}

func (c *CLI) storeCard(clientID, number, expiry string) (int, error) {
	card := domain.Card{ClientID: clientID, Number: number, Expiry: expiry}
	resp, err := c.gateway.StoreCard(c.ctx, card)
	if err != nil {
		return exitError, err
	}
	c.printResponse(resp, card.Masked())
	return exitCode(resp), nil
}

func (c *CLI) updateCard(clientID, number, expiry string) (int, error) {
	card := domain.Card{ClientID: clientID, Number: number, Expiry: expiry}
	resp, err := c.gateway.UpdateStoredCard(c.ctx, card)
	if err != nil {
		return exitError, err
	}
	c.printResponse(resp, card.Masked())
	return exitCode(resp), nil
}

func (c *CLI) debit(clientID, reference, amount string) (int, error) {
	money, err := domain.NewMoney(amount, c.currency)
	if err != nil {
		return exitError, err
	}

	resp, err := c.gateway.DebitStoredCard(c.ctx, clientID, reference, money)
	if err != nil {
		return exitError, err
	}
	c.printResponse(resp, money.Display())
	return exitCode(resp), nil
}

func (c *CLI) batch(path, outPath string) (int, error) {
	var in io.Reader = os.Stdin
	if path != "-" {
		if path == "" {
			return exitError, fmt.Errorf("batch requires -file")
		}
		f, err := os.Open(path)
		if err != nil {
			return exitError, fmt.Errorf("open batch file: %w", err)
		}
		defer f.Close()
		in = f
	}

	instructions, err := batch.ParseCSV(in, c.currency)
	if err != nil {
		return exitError, err
	}

	results, err := batch.NewDebitRunner(c.gateway, c.workers, c.logger).Run(c.ctx, instructions)
	if err != nil {
		return exitError, err
	}

	out := c.stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return exitError, fmt.Errorf("create results file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := batch.WriteResultsCSV(out, results); err != nil {
		return exitError, fmt.Errorf("write results: %w", err)
	}

	summary := batch.Summarize(results)
	approved := domain.MoneyFromMinorUnits(summary.ApprovedMinor, c.currency)
	fmt.Fprintf(os.Stderr, "approved %d (%s), declined %d, failed %d\n",
		summary.Approved, approved.Display(), summary.Declined, summary.Failed)

	switch {
	case summary.Failed > 0:
		return exitError, nil
	case summary.Declined > 0:
		return exitDeclined, nil
	default:
		return exitApproved, nil
	}
}

func (c *CLI) showHistory(clientID string, limit int) (int, error) {
	if clientID == "" {
		return exitError, fmt.Errorf("history requires -client")
	}

	exchanges, err := c.history.ListByClient(c.ctx, c.merchant.ID(), clientID, limit)
	if err != nil {
		return exitError, err
	}

	w := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTION\tREFERENCE\tOUTCOME\tCODE\tTXN ID\tMESSAGE ID")
	for _, ex := range exchanges {
		code := "-"
		if ex.ResponseCode != nil {
			code = fmt.Sprintf("%d", *ex.ResponseCode)
		} else if ex.StatusCode != nil && *ex.StatusCode != 0 {
			code = fmt.Sprintf("status %d", *ex.StatusCode)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			ex.CreatedAt.Format(time.RFC3339), ex.Action, orDash(ex.Reference), ex.Outcome,
			code, orDash(ex.TransactionID), ex.MessageID)
	}
	return exitApproved, w.Flush()
}

func (c *CLI) printResponse(resp *ports.PeriodicResponse, subject string) {
	result := "DECLINED"
	if resp.Successful {
		result = "APPROVED"
	}
	fmt.Fprintf(c.stdout, "%s %s %s: %d %s", result, resp.Action, subject, resp.ResponseCode, resp.ResponseText)
	if resp.TransactionID != "" {
		fmt.Fprintf(c.stdout, " (txn %s)", resp.TransactionID)
	}
	fmt.Fprintf(c.stdout, " [message %s]\n", resp.MessageID)
}

func exitCode(resp *ports.PeriodicResponse) int {
	if resp.Successful {
		return exitApproved
	}
	return exitDeclined
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
