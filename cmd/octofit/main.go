// Package main is the entry point for the OctoFit Tracker CLI.
// The CLI collects arguments, calls the operation layer and prints its
// responses; it adds no logic of its own.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/octofit/octofit-tracker/internal/api"
	"github.com/octofit/octofit-tracker/internal/config"
	"github.com/octofit/octofit-tracker/internal/repository"
	"github.com/octofit/octofit-tracker/internal/repository/jsonfile"
	"github.com/octofit/octofit-tracker/internal/repository/memory"
	"github.com/octofit/octofit-tracker/internal/repository/sqlite"
	"github.com/octofit/octofit-tracker/internal/service"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "version":
		fmt.Printf("OctoFit Tracker CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)
		return

	case "help", "-h", "--help":
		printUsage()
		return
	}

	cfg := config.MustLoad(os.Getenv("OCTOFIT_CONFIG"))
	logger := newLogger(cfg.Logging)

	ctx := context.Background()

	repo, closeRepo, err := buildRepository(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to open profile storage")
	}
	defer closeRepo()

	ops := api.NewOperations(service.NewProfileService(repo, logger))

	var ok bool
	switch command {
	case "create":
		ok = cmdCreate(ctx, ops, args)
	case "list":
		ok = cmdList(ctx, ops, args)
	case "get":
		ok = cmdGet(ctx, ops, args)
	case "add-activity":
		ok = cmdAddActivity(ctx, ops, args)
	case "stats":
		ok = cmdStats(ctx, ops, args)
	case "delete":
		ok = cmdDelete(ctx, ops, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if !ok {
		os.Exit(1)
	}
}

// newLogger builds the process logger from configuration.
func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().Timestamp().Logger()
}

// buildRepository creates the configured storage backend.
func buildRepository(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) (repository.ProfileRepository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case "jsonfile":
		repo, err := jsonfile.NewRepository(cfg.DataFile, logger)
		if err != nil {
			return nil, nil, err
		}
		return repo, noop, nil

	case "sqlite":
		db, err := sqlite.NewDB(ctx, sqlite.Config{
			Path:        cfg.SQLite.Path,
			JournalMode: cfg.SQLite.JournalMode,
			BusyTimeout: cfg.SQLite.BusyTimeout,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewProfileRepo(db), db.Close, nil

	case "memory":
		return memory.NewRepository(), noop, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}

func cmdCreate(ctx context.Context, ops *api.Operations, args []string) bool {
	if len(args) != 4 {
		fmt.Fprintln(os.Stderr, "Usage: octofit create <user_id> <name> <age> <role>")
		return false
	}

	age, err := strconv.Atoi(args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid age: %s\n", args[2])
		return false
	}

	resp := ops.CreateProfile(ctx, args[0], args[1], age, args[3])
	fmt.Printf("Status: %d\n", resp.StatusCode)
	fmt.Printf("Message: %s\n", resp.Message)
	if resp.Success {
		profile := resp.Data.(api.ProfileView)
		fmt.Printf("Created profile for: %s\n", profile.Name)
	}
	return resp.Success
}

func cmdList(ctx context.Context, ops *api.Operations, args []string) bool {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	role := fs.String("role", "", "Filter by role (student or gym_teacher)")
	fs.Parse(args)

	resp := ops.ListProfiles(ctx, *role)
	fmt.Printf("Message: %s\n", resp.Message)
	if !resp.Success {
		return false
	}

	profiles := resp.Data.([]api.ProfileListItem)
	if len(profiles) == 0 {
		fmt.Println("No profiles found.")
		return true
	}

	fmt.Printf("\n%-15s %-25s %-5s %-15s %-10s\n", "User ID", "Name", "Age", "Role", "Activities")
	fmt.Println(strings.Repeat("-", 70))
	for _, p := range profiles {
		fmt.Printf("%-15s %-25s %-5d %-15s %-10d\n",
			p.UserID, p.Name, p.Age, p.Role, p.TotalActivities)
	}
	return true
}

func cmdGet(ctx context.Context, ops *api.Operations, args []string) bool {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: octofit get <user_id>")
		return false
	}

	resp := ops.GetProfile(ctx, args[0])
	if !resp.Success {
		fmt.Printf("Error: %s\n", resp.Message)
		return false
	}

	profile := resp.Data.(api.ProfileView)
	fmt.Printf("\nProfile: %s\n", profile.Name)
	fmt.Printf("User ID: %s\n", profile.UserID)
	fmt.Printf("Age: %d\n", profile.Age)
	fmt.Printf("Role: %s\n", profile.Role)
	fmt.Printf("Created: %s\n", profile.CreatedAt)
	fmt.Printf("\nStatistics:\n")
	fmt.Printf("  Total Activities: %d\n", profile.Stats.TotalActivities)
	fmt.Printf("  Total Time: %d minutes\n", profile.Stats.TotalActivityTimeMinutes)
	fmt.Printf("  Total Calories: %d\n", profile.Stats.TotalCaloriesBurned)

	if len(profile.ActivityHistory) > 0 {
		fmt.Printf("\nActivity History:\n")
		for i, a := range profile.ActivityHistory {
			fmt.Printf("  %d. %s\n", i+1, strings.ToUpper(a.ActivityType))
			fmt.Printf("     Duration: %d min, Calories: %d\n", a.DurationMinutes, a.CaloriesBurned)
			if a.Notes != "" {
				fmt.Printf("     Notes: %s\n", a.Notes)
			}
		}
	}
	return true
}

func cmdAddActivity(ctx context.Context, ops *api.Operations, args []string) bool {
	fs := flag.NewFlagSet("add-activity", flag.ExitOnError)
	notes := fs.String("notes", "", "Activity notes")
	fs.Parse(args)
	rest := fs.Args()

	if len(rest) != 4 {
		fmt.Fprintln(os.Stderr, "Usage: octofit add-activity <user_id> <type> <duration> <calories> [--notes N]")
		return false
	}

	duration, err := strconv.Atoi(rest[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid duration: %s\n", rest[2])
		return false
	}
	calories, err := strconv.Atoi(rest[3])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid calories: %s\n", rest[3])
		return false
	}

	resp := ops.AddActivity(ctx, rest[0], rest[1], duration, calories, *notes)
	fmt.Printf("Status: %d\n", resp.StatusCode)
	fmt.Printf("Message: %s\n", resp.Message)
	if resp.Success {
		profile := resp.Data.(api.ProfileView)
		fmt.Printf("Profile updated - Total activities: %d, Total calories: %d\n",
			profile.Stats.TotalActivities, profile.Stats.TotalCaloriesBurned)
	}
	return resp.Success
}

func cmdStats(ctx context.Context, ops *api.Operations, args []string) bool {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: octofit stats <user_id>")
		return false
	}

	resp := ops.GetUserStatistics(ctx, args[0])
	if !resp.Success {
		fmt.Printf("Error: %s\n", resp.Message)
		return false
	}

	stats := resp.Data.(api.StatisticsView)
	fmt.Printf("\nStatistics for %s (%s)\n", stats.Name, stats.Role)
	fmt.Printf("Total Activities: %d\n", stats.TotalActivities)
	fmt.Printf("Total Activity Time: %d minutes\n", stats.TotalActivityTimeMinutes)
	fmt.Printf("Total Calories Burned: %d\n", stats.TotalCaloriesBurned)
	fmt.Printf("Average Calories per Activity: %d\n", stats.AverageCaloriesPerActivity)
	return true
}

func cmdDelete(ctx context.Context, ops *api.Operations, args []string) bool {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: octofit delete <user_id>")
		return false
	}

	resp := ops.DeleteProfile(ctx, args[0])
	fmt.Printf("Status: %d\n", resp.StatusCode)
	fmt.Printf("Message: %s\n", resp.Message)
	return resp.Success
}

func printUsage() {
	fmt.Println(`OctoFit Tracker CLI

Usage:
  octofit <command> [arguments]

Commands:
  create        Create a new profile: create <user_id> <name> <age> <role>
  list          List all profiles: list [--role student|gym_teacher]
  get           Show a profile: get <user_id>
  add-activity  Log an activity: add-activity <user_id> <type> <duration> <calories> [--notes N]
  stats         Show user statistics: stats <user_id>
  delete        Delete a profile: delete <user_id>
  version       Print version information
  help          Show this help message

Examples:
  octofit create alice "Alice Smith" 16 student
  octofit add-activity alice running 30 300 --notes "morning run"
  octofit list --role gym_teacher
  octofit stats alice

Configuration is read from config.yaml (or $OCTOFIT_CONFIG) and
OCTOFIT_* environment variables.`)
}
