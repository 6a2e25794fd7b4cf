package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context)
	Login(ctx context.Context)
	Logout(ctx context.Context)
	Forgot(ctx context.Context)
	Reset(ctx context.Context)
	WhoAmI(ctx context.Context)
	List(ctx context.Context, args []string)
	ListByType(ctx context.Context, args []string)
	Upload(ctx context.Context, args []string)
	Info(ctx context.Context, args []string)
	Rename(ctx context.Context, args []string)
	Delete(ctx context.Context, args []string)
	Download(ctx context.Context, args []string)
	Preview(ctx context.Context, args []string)
}

const (
	helpGuest = "Available commands: register, login, forgot, reset, help, exit"
	helpUser  = "Available commands: list [category] [query], type <fileType>, upload <path> [name], " +
		"info <id>, rename <id>, delete <id>, download <id> [dest], preview <id>, whoami, logout, help, exit"
)

// runREPL reads one command per line from in, dispatches it to a and loops
// until "exit"/"quit" or end of input. The prompt and REPL messages go to out.
//
// File commands require an authenticated session and are refused locally
// otherwise. Handlers report their own outcome.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "vault %s> ", statusFn())
		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, helpUser)
			} else {
				fmt.Fprintln(out, helpGuest)
			}

		case "register":
			a.Register(ctx)

		case "login":
			a.Login(ctx)

		case "forgot":
			a.Forgot(ctx)

		case "reset":
			a.Reset(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		case "logout", "whoami", "l", "list", "type", "upload", "info", "rename", "delete", "download", "preview":
			if !a.isLoggedIn() {
				fmt.Fprintln(out, "Please log in first")
				continue
			}
			dispatchUser(ctx, a, cmd, args)

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}

func dispatchUser(ctx context.Context, a execIface, cmd string, args []string) {
	switch cmd {
	case "logout":
		a.Logout(ctx)
	case "whoami":
		a.WhoAmI(ctx)
	case "l", "list":
		a.List(ctx, args)
	case "type":
		a.ListByType(ctx, args)
	case "upload":
		a.Upload(ctx, args)
	case "info":
		a.Info(ctx, args)
	case "rename":
		a.Rename(ctx, args)
	case "delete":
		a.Delete(ctx, args)
	case "download":
		a.Download(ctx, args)
	case "preview":
		a.Preview(ctx, args)
	}
}
