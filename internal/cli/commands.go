package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/valutatrade/valutatrade-hub/internal/apperrors"
	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
	"github.com/valutatrade/valutatrade-hub/internal/dto"
)

func (r *REPL) register(ctx context.Context, args map[string]string) {
	req := dto.RegisterRequest{
		Username: args["username"],
		Password: args["password"],
	}
	if req.Username == "" || req.Password == "" {
		fmt.Fprintln(r.out, "Usage: register --username <name> --password <password>")
		return
	}

	user, err := r.services.User.Register(ctx, req)
	if err != nil {
		r.printError(err)
		return
	}
	resp := dto.UserResponse{
		UserID:           user.UserID,
		Username:         user.Username,
		RegistrationDate: user.RegistrationDate,
	}
	fmt.Fprintf(r.out, "User '%s' registered (id=%d).\n", resp.Username, resp.UserID)
	fmt.Fprintf(r.out, "Log in with: login --username %s --password ****\n", resp.Username)
}

func (r *REPL) login(ctx context.Context, args map[string]string) {
	req := dto.LoginRequest{
		Username: args["username"],
		Password: args["password"],
	}
	if req.Username == "" || req.Password == "" {
		fmt.Fprintln(r.out, "Usage: login --username <name> --password <password>")
		return
	}

	user, err := r.services.User.Authenticate(ctx, req)
	if err != nil {
		r.printError(err)
		return
	}
	r.currentUser = user
	fmt.Fprintf(r.out, "Logged in as '%s'.\n", user.Username)
}

func (r *REPL) logout() {
	if r.currentUser == nil {
		fmt.Fprintln(r.out, "Not logged in.")
		return
	}
	fmt.Fprintf(r.out, "Logged out of '%s'.\n", r.currentUser.Username)
	r.currentUser = nil
}

func (r *REPL) showPortfolio(ctx context.Context, args map[string]string) {
	if !r.requireLogin() {
		return
	}
	base := strings.ToUpper(strings.TrimSpace(args["base"]))

	view, err := r.services.Portfolio.View(ctx, r.currentUser.UserID, base)
	if err != nil {
		r.printError(err)
		return
	}
	renderPortfolio(r.out, view)
}

func (r *REPL) trade(ctx context.Context, args map[string]string, buy bool) {
	if !r.requireLogin() {
		return
	}
	verb := "sell"
	if buy {
		verb = "buy"
	}
	code := args["currency"]
	rawAmount := args["amount"]
	if code == "" || rawAmount == "" {
		fmt.Fprintf(r.out, "Usage: %s --currency <code> --amount <amount>\n", verb)
		return
	}
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		fmt.Fprintln(r.out, "Error: amount must be a number.")
		return
	}

	req := dto.TradeRequest{
		CurrencyCode: domain.NormalizeCode(code),
		Amount:       amount,
	}
	var result *dto.TradeResult
	if buy {
		result, err = r.services.Portfolio.Buy(ctx, r.currentUser.UserID, req)
	} else {
		result, err = r.services.Portfolio.Sell(ctx, r.currentUser.UserID, req)
	}
	if err != nil {
		r.printError(err)
		return
	}
	renderTradeResult(r.out, result)
}

func (r *REPL) getRate(ctx context.Context, args map[string]string) {
	from := strings.TrimSpace(args["from"])
	to := strings.TrimSpace(args["to"])
	if from == "" || to == "" {
		fmt.Fprintln(r.out, "Usage: get-rate --from <currency> --to <currency>")
		return
	}

	detail, ok, err := r.services.Rates.Detail(ctx, from, to)
	if err != nil {
		r.printError(err)
		return
	}
	if !ok {
		fmt.Fprintf(r.out, "Rate %s -> %s is unavailable. Run 'update-rates' and retry.\n",
			domain.NormalizeCode(from), domain.NormalizeCode(to))
		return
	}
	renderRateDetail(r.out, detail)
}

func (r *REPL) updateRates(ctx context.Context, args map[string]string) {
	source := args["source"]
	if source == "true" {
		source = ""
	}

	updated, err := r.services.Updater.UpdateOnce(ctx, source)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			fmt.Fprintf(r.out, "Unknown source '%s'. Available sources: coingecko, exchangerate.\n", source)
			return
		}
		r.printError(err)
		return
	}
	fmt.Fprintf(r.out, "Rates updated: %d pairs refreshed.\n", updated)
}

func (r *REPL) showRates(ctx context.Context, args map[string]string) {
	snapshot, err := r.services.Rates.Snapshot(ctx)
	if err != nil {
		r.printError(err)
		return
	}

	pair := strings.ToUpper(strings.TrimSpace(args["pair"]))
	if pair != "" && pair != "TRUE" {
		quote, ok := snapshot.Pairs[pair]
		if !ok {
			fmt.Fprintf(r.out, "No cached rate for pair '%s'. Run 'update-rates' first.\n", pair)
			return
		}
		snapshot.Pairs = map[string]domain.RateQuote{pair: quote}
	}
	if len(snapshot.Pairs) == 0 {
		fmt.Fprintln(r.out, "Rate cache is empty. Run 'update-rates' first.")
		return
	}
	renderRates(r.out, snapshot)
}

func (r *REPL) listCurrencies() {
	currencies := r.services.Registry.All()
	codes := make([]string, 0, len(currencies))
	for code := range currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	renderCurrencies(r.out, codes, currencies)
}

func (r *REPL) requireLogin() bool {
	if r.currentUser == nil {
		fmt.Fprintln(r.out, "Please log in first: login --username <name> --password <password>")
		return false
	}
	return true
}

// printError translates domain errors into user-facing messages,
// keeping the values they carry.
func (r *REPL) printError(err error) {
	var insufficient *apperrors.InsufficientFundsError
	var noCurrency *apperrors.CurrencyNotFoundError
	var noWallet *apperrors.NoWalletError
	var apiErr *apperrors.APIRequestError

	switch {
	case errors.As(err, &insufficient):
		fmt.Fprintf(r.out, "Insufficient funds: you have %s %s, need %s %s.\n",
			insufficient.Available, insufficient.CurrencyCode,
			insufficient.Required, insufficient.CurrencyCode)
	case errors.As(err, &noCurrency):
		fmt.Fprintf(r.out, "Unknown currency '%s'. Try 'list-currencies'.\n", noCurrency.Code)
	case errors.As(err, &noWallet):
		fmt.Fprintf(r.out, "No %s wallet in your portfolio.\n", noWallet.CurrencyCode)
	case errors.As(err, &apiErr):
		fmt.Fprintf(r.out, "External API error: %s.\n", apiErr.Reason)
	case errors.Is(err, apperrors.ErrDuplicate):
		fmt.Fprintf(r.out, "Error: %v.\n", err)
	case errors.Is(err, apperrors.ErrNotFound):
		fmt.Fprintf(r.out, "Error: %v.\n", err)
	default:
		fmt.Fprintf(r.out, "Error: %v\n", err)
	}
}
