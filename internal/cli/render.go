package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
	"github.com/valutatrade/valutatrade-hub/internal/dto"
)

const notAvailable = "N/A"

func renderPortfolio(w io.Writer, view *dto.PortfolioView) {
	fmt.Fprintf(w, "Portfolio (user id=%d), base currency: %s\n", view.UserID, view.BaseCurrency)
	if len(view.Rows) == 0 {
		fmt.Fprintln(w, "Portfolio is empty. Use 'buy' to open your first wallet.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Currency", "Balance", "Rate", "Value (" + view.BaseCurrency + ")"})
	for _, row := range view.Rows {
		rate, value := notAvailable, notAvailable
		if row.Rate != nil {
			rate = row.Rate.StringFixed(6)
		}
		if row.Value != nil {
			value = row.Value.StringFixed(2)
		}
		table.Append([]string{row.CurrencyCode, row.Balance.StringFixed(4), rate, value})
	}
	table.SetFooter([]string{"", "", "Total", view.Total.StringFixed(2)})
	table.Render()
}

func renderTradeResult(w io.Writer, result *dto.TradeResult) {
	switch result.Action {
	case dto.ActionBuy:
		fmt.Fprintf(w, "Purchase complete: %s %s (%s)\n",
			result.Amount, result.CurrencyCode, result.CurrencyName)
	case dto.ActionSell:
		fmt.Fprintf(w, "Sale complete: %s %s (%s)\n",
			result.Amount, result.CurrencyCode, result.CurrencyName)
	}

	if result.Rate != nil {
		fmt.Fprintf(w, "Rate: %s USD per %s\n", result.Rate, result.CurrencyCode)
	}
	if result.EstimatedUSD != nil {
		label := "Estimated cost"
		if result.Action == dto.ActionSell {
			label = "Estimated revenue"
		}
		fmt.Fprintf(w, "%s: %s USD\n", label, result.EstimatedUSD.StringFixed(2))
	}
	fmt.Fprintf(w, "Balance change: %s -> %s %s\n",
		result.OldBalance, result.NewBalance, result.CurrencyCode)
}

func renderRateDetail(w io.Writer, detail *dto.RateDetail) {
	fmt.Fprintf(w, "Rate %s -> %s: %s\n", detail.From, detail.To, detail.Rate)
	if detail.Reverse != nil {
		fmt.Fprintf(w, "Reverse rate %s -> %s: %s\n", detail.To, detail.From, detail.Reverse.StringFixed(6))
	}
	if detail.LastRefresh != nil {
		fmt.Fprintf(w, "Cache updated: %s\n", detail.LastRefresh.UTC().Format("2006-01-02 15:04:05 UTC"))
	} else {
		fmt.Fprintln(w, "Cache updated: never (fallback rate)")
	}
}

func renderRates(w io.Writer, snapshot domain.RateSnapshot) {
	keys := make([]string, 0, len(snapshot.Pairs))
	for key := range snapshot.Pairs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Pair", "Rate", "Source", "Fetched At"})
	for _, key := range keys {
		quote := snapshot.Pairs[key]
		table.Append([]string{
			key,
			quote.Rate.String(),
			quote.Source,
			quote.Timestamp.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	table.Render()

	if snapshot.LastRefresh != nil {
		fmt.Fprintf(w, "Last refresh: %s\n", snapshot.LastRefresh.UTC().Format("2006-01-02 15:04:05 UTC"))
	}
}

func renderCurrencies(w io.Writer, codes []string, currencies map[string]domain.Currency) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Code", "Name", "Type", "Details"})
	for _, code := range codes {
		currency := currencies[code]
		details := ""
		switch currency.Kind {
		case domain.Fiat:
			details = "Issuing: " + currency.IssuingCountry
		case domain.Crypto:
			details = fmt.Sprintf("Algo: %s, MCAP: %.2e", currency.Algorithm, currency.MarketCap)
		}
		table.Append([]string{currency.Code, currency.Name, string(currency.Kind), details})
	}
	table.Render()
}
