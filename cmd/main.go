package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/mergington/activities-admin/service"
	"github.com/mergington/activities-admin/storage"
)

func main() {
	// slog is configured in slog.go via init()

	// Load configuration
	config, err := service.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize the local credential store
	db, err := storage.New(config.DBPath)
	if err != nil {
		slog.Error("failed to initialize local store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	svc := service.New(db, config, os.Stdout)

	ctx := context.Background()

	slog.Info("activities admin starting",
		"api", config.APIBaseURL,
		"environment", config.Environment,
		"database", config.DBPath,
	)

	// Restore any saved session, then show the first catalog render.
	svc.Startup(ctx)

	run(ctx, svc, os.Stdin)
}

func run(ctx context.Context, svc *service.Service, in *os.File) {
	scanner := bufio.NewScanner(in)

	fmt.Println()
	printHelp()

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		fields := splitCommand(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "list", "refresh":
			svc.Activities.Refresh(ctx)

		case "login":
			if len(fields) != 3 {
				fmt.Println("usage: login <username> <password>")
				continue
			}
			svc.Sessions.Login(ctx, fields[1], fields[2])

		case "logout":
			svc.Sessions.Logout(ctx)

		case "signup":
			if len(fields) != 3 {
				fmt.Println(`usage: signup <activity | number> <email>`)
				continue
			}
			activity, ok := resolveActivity(svc, fields[1])
			if !ok {
				fmt.Println("unknown activity:", fields[1])
				continue
			}
			svc.Actions.Signup(ctx, activity, fields[2])

		case "unregister":
			if len(fields) != 3 {
				fmt.Println(`usage: unregister <activity | number> <email>`)
				continue
			}
			activity, ok := resolveActivity(svc, fields[1])
			if !ok {
				fmt.Println("unknown activity:", fields[1])
				continue
			}
			svc.Actions.Unregister(ctx, activity, fields[2])

		case "help":
			printHelp()

		case "quit", "exit":
			return

		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

// resolveActivity accepts either a literal activity name or the option number
// shown in the rendered selector.
func resolveActivity(svc *service.Service, arg string) (string, bool) {
	if option, err := strconv.Atoi(arg); err == nil {
		return svc.Activities.ActivityName(option)
	}
	return arg, true
}

func printHelp() {
	fmt.Println(`commands:
  list                                  refresh and show activities
  login <username> <password>           log in as a teacher
  logout                                end the session
  signup <activity | number> <email>    register a student
  unregister <activity | number> <email>  remove a student
  quit`)
}
