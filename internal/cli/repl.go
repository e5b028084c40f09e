// Package cli implements the interactive command loop. It is a thin
// dispatch layer: every command builds a request DTO, calls a service
// and renders the outcome; domain errors are reported with their
// carried values and never terminate the loop.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/shlex"

	"github.com/valutatrade/valutatrade-hub/internal/core/domain"
	"github.com/valutatrade/valutatrade-hub/internal/core/services"
	"github.com/valutatrade/valutatrade-hub/internal/platform/logging"
)

// errExit signals a clean, user-requested shutdown of the loop.
var errExit = errors.New("exit requested")

// REPL is the interactive session. It holds the logged-in user between
// commands; all other state lives behind the service container.
type REPL struct {
	services    *services.Container
	logger      *slog.Logger
	out         io.Writer
	currentUser *domain.User
}

// New creates a REPL bound to the given services.
func New(container *services.Container, logger *slog.Logger, out io.Writer) *REPL {
	return &REPL{
		services: container,
		logger:   logger,
		out:      out,
	}
}

// Run reads and dispatches commands until exit, EOF or ctx cancellation.
func (r *REPL) Run(ctx context.Context) error {
	rl, err := readline.New(r.prompt())
	if err != nil {
		return fmt.Errorf("failed to initialize line reader: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(r.out, "Welcome to ValutaTrade Hub!")
	fmt.Fprintln(r.out, "Type 'help' for the command list or 'exit' to quit.")

	for {
		if ctx.Err() != nil {
			return nil
		}
		rl.SetPrompt(r.prompt())

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := r.dispatch(ctx, line); errors.Is(err, errExit) {
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		}
	}
}

func (r *REPL) prompt() string {
	if r.currentUser != nil {
		return fmt.Sprintf("valutatrade[%s]> ", r.currentUser.Username)
	}
	return "valutatrade> "
}

// dispatch tokenizes one input line and routes it to its handler under
// a command-scoped logger.
func (r *REPL) dispatch(ctx context.Context, line string) error {
	tokens, err := shlex.Split(line)
	if err != nil || len(tokens) == 0 {
		fmt.Fprintln(r.out, "Unknown command. Type 'help' for the command list.")
		return nil
	}

	command := strings.ToLower(tokens[0])
	args := parseArgs(tokens[1:])
	ctx = logging.WithCommandScope(ctx, r.logger, command)

	switch command {
	case "exit", "quit":
		return errExit
	case "help":
		r.printHelp()
	case "register":
		r.register(ctx, args)
	case "login":
		r.login(ctx, args)
	case "logout":
		r.logout()
	case "show-portfolio":
		r.showPortfolio(ctx, args)
	case "buy":
		r.trade(ctx, args, true)
	case "sell":
		r.trade(ctx, args, false)
	case "get-rate":
		r.getRate(ctx, args)
	case "update-rates":
		r.updateRates(ctx, args)
	case "show-rates":
		r.showRates(ctx, args)
	case "list-currencies":
		r.listCurrencies()
	default:
		fmt.Fprintf(r.out, "Unknown command: %s\nType 'help' for the command list.\n", command)
	}
	return nil
}

// parseArgs collects "--key value" pairs; a flag without a value maps
// to "true". Stray tokens are ignored.
func parseArgs(tokens []string) map[string]string {
	args := make(map[string]string)
	for i := 0; i < len(tokens); i++ {
		if !strings.HasPrefix(tokens[i], "--") {
			continue
		}
		name := strings.TrimPrefix(tokens[i], "--")
		if i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], "--") {
			args[name] = tokens[i+1]
			i++
		} else {
			args[name] = "true"
		}
	}
	return args
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, `
Available commands:
  register --username <name> --password <password>
  login --username <name> --password <password>
  logout
  show-portfolio [--base <currency>]
  buy --currency <code> --amount <amount>
  sell --currency <code> --amount <amount>
  get-rate --from <currency> --to <currency>
  update-rates [--source <coingecko|exchangerate>]
  show-rates [--pair <FROM_TO>]
  list-currencies
  help
  exit

Examples:
  register --username alice --password 7890
  buy --currency USD --amount 200
  get-rate --from USD --to BTC
  show-portfolio --base USD`)
}
