package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/volops/voladmin/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	App    *bootstrap.App
}

const defaultCommandTimeout = 2 * time.Minute

func main() {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	logger := bootstrap.InitLogger(cfg.IsDev)

	if len(os.Args) < 2 {
		if usageErr := printUsage(); usageErr != nil {
			logger.Error("print usage failed", "error", usageErr)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if writeErr := writef(os.Stderr, "unknown command %q\n\n", cmdName); writeErr != nil {
			logger.Error("print unknown command message failed", "error", writeErr)
		}
		if usageErr := printUsage(); usageErr != nil {
			logger.Error("print usage failed", "error", usageErr)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	app, err := bootstrap.NewApp(cfg, logger)
	if err != nil {
		logger.Error("initialize", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal wiring failure to shell scripts
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Warn("close app", "error", closeErr)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), defaultCommandTimeout)
	defer cancel()

	cmdCtx := &commandContext{Ctx: ctx, Logger: logger, App: app}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.Error("command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Authenticate against the backend and store the session",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Revoke the refresh token and clear the stored session",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the logged-in user",
			run:         runWhoami,
		},
		"profile": {
			name:        "profile",
			description: "Show or update the own profile, change the password",
			run:         runProfile,
		},
		"users": {
			name:        "users",
			description: "List, inspect and manage volunteer accounts",
			run:         runUsers,
		},
		"bulk": {
			name:        "bulk",
			description: "Apply a bulk action (activate/deactivate/delete/assign_role/send_credentials) to users",
			run:         runBulk,
		},
		"import": {
			name:        "import",
			description: "Preview and commit a CSV user import",
			run:         runImport,
		},
		"export": {
			name:        "export",
			description: "Export the filtered user list to a CSV file",
			run:         runExport,
		},
		"areas": {
			name:        "areas",
			description: "List the work areas",
			run:         runAreas,
		},
		"activities": {
			name:        "activities",
			description: "List and manage activities",
			run:         runActivities,
		},
		"shifts": {
			name:        "shifts",
			description: "List and manage shifts, including calendar and upcoming views",
			run:         runShifts,
		},
		"todos": {
			name:        "todos",
			description: "List and manage secretarial to-dos, including the board view",
			run:         runTodos,
		},
		"docs": {
			name:        "docs",
			description: "List, upload and download secretarial documents",
			run:         runDocs,
		},
		"warmup": {
			name:        "warmup",
			description: "Prefetch reference data (areas, activities, shifts, todos) in parallel",
			run:         runWarmup,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: voladmin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	names := make([]string, 0, len(commands()))
	for name := range commands() {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := commands()[name]
		if err := writef(os.Stdout, "  %-12s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

// printResult renders a value as indented JSON, optionally filtered
// through a JMESPath expression first.
func printResult(v any, query string) error {
	if query != "" {
		// Round-trip through JSON so the expression sees wire-shaped maps.
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		var data any
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
		v, err = jmespath.Search(query, data)
		if err != nil {
			return fmt.Errorf("apply query %q: %w", query, err)
		}
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return writeln(os.Stdout, string(out))
}

func confirmAction(prompt string, yes bool) error {
	if yes {
		return nil
	}
	if err := writef(os.Stdout, "%s Continue? [y/N]: ", prompt); err != nil {
		return fmt.Errorf("print confirmation prompt: %w", err)
	}
	reader := bufio.NewReader(os.Stdin)
	resp, err := reader.ReadString('\n')
	if err != nil {
		return errors.New("aborted by user")
	}
	resp = strings.ToLower(strings.TrimSpace(resp))
	if resp == "y" || resp == "yes" {
		return nil
	}
	return errors.New("aborted by user")
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func write(w io.Writer, args ...any) error {
	_, err := fmt.Fprint(w, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(w)
		return err
	}
	_, err := fmt.Fprintln(w, args...)
	return err
}
