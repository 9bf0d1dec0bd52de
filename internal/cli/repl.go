package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	NewEntry(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Edit(ctx context.Context) error
	Pin(ctx context.Context) error
	Delete(ctx context.Context) error
	Search(ctx context.Context) error
	Stats(ctx context.Context) error
	Tags(ctx context.Context) error
	Calendar(ctx context.Context) error
	Mood(ctx context.Context) error
	Moods(ctx context.Context) error
	ChangePassword(ctx context.Context) error
}

// runREPL starts a read–eval–print loop. It reads a line from the scanner,
// parses the first token as the command, and dispatches to methods on 'a'.
// The loop exits on scanner EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("qq> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: new, (l)ist, show, edit, pin, delete, search, stats, tags, calendar, mood, moods, passwd, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "new":
			_ = a.NewEntry(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "pin":
			_ = a.Pin(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "search":
			_ = a.Search(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "tags":
			_ = a.Tags(ctx)

		case "calendar":
			_ = a.Calendar(ctx)

		case "mood":
			_ = a.Mood(ctx)

		case "moods":
			_ = a.Moods(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
