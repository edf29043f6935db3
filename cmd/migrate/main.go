// cmd/migrate/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/onerilhan/go-mining-api/internal/auth"
	"github.com/onerilhan/go-mining-api/internal/config"
	"github.com/onerilhan/go-mining-api/internal/db"
	"github.com/onerilhan/go-mining-api/internal/logger"
	"github.com/onerilhan/go-mining-api/internal/migration"
	"github.com/onerilhan/go-mining-api/internal/models"
	"github.com/onerilhan/go-mining-api/internal/repository"
	"github.com/onerilhan/go-mining-api/internal/services"
)

func main() {
	// .env dosyasını yükle
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv, cfg.LogLevel)

	// create veritabanına dokunmaz
	if command == "create" {
		handleCreate(migration.NewRunner(nil, nil, migration.CLIConfig(cfg.MigrationsPath)), os.Args[2:])
		return
	}

	database, err := db.Connect(cfg.GetDSN(), 2)
	if err != nil {
		fmt.Printf("Database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	runner := migration.NewRunner(database, nil, migration.CLIConfig(cfg.MigrationsPath))
	ctx := context.Background()

	switch command {
	case "status":
		handleStatus(ctx, runner)
	case "up":
		handleUp(ctx, runner, os.Args[2:])
	case "down":
		handleDown(ctx, runner, os.Args[2:])
	case "rollback":
		handleRollback(ctx, runner)
	case "create-admin":
		users := services.NewUserService(
			repository.NewUserRepository(database),
			repository.NewAuditRepository(database),
			auth.NewManager(cfg.JWTSecret, cfg.JWTTTL),
		)
		handleCreateAdmin(ctx, users, os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`
Migration CLI Tool

USAGE:
    go run ./cmd/migrate <command> [arguments]

COMMANDS:
    status                          Show migration status
    up [version]                    Apply pending migrations (up to optional version)
    down <version>                  Roll back migrations newer than version
    rollback                        Roll back the last applied migration
    create <name>                   Create new migration files
    create-admin <name> <email> <password>
                                    Create an admin account

EXAMPLES:
    go run ./cmd/migrate status
    go run ./cmd/migrate up
    go run ./cmd/migrate down 20260101000001
    go run ./cmd/migrate create add_rig_category
    go run ./cmd/migrate create-admin "Site Admin" admin@example.com 'S3cure!pass'
`)
}

func handleStatus(ctx context.Context, runner *migration.Runner) {
	status, err := runner.Status(ctx)
	if err != nil {
		fmt.Printf("Failed to get migration status: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nMigration Status:\n")
	fmt.Printf("  Current Version: %d\n", status.CurrentVersion)
	fmt.Printf("  Total Migrations: %d\n", status.TotalCount)
	fmt.Printf("  Applied: %d\n", status.AppliedCount)
	fmt.Printf("  Pending: %d\n", status.PendingCount)
	fmt.Printf("  Health: %s\n", status.Health)

	if len(status.Migrations) > 0 {
		fmt.Printf("\nMigrations:\n")
		fmt.Println("  VERSION        | STATUS   | NAME")
		fmt.Println("  ---------------|----------|--------------------")

		for _, m := range status.Migrations {
			state := "PENDING"
			appliedAt := ""
			if m.Applied {
				state = "APPLIED"
				if m.Dirty {
					state = "DIRTY"
				}
				if m.AppliedAt != nil {
					appliedAt = fmt.Sprintf(" (%s)", m.AppliedAt.Format("2006-01-02 15:04"))
				}
			}
			fmt.Printf("  %14d | %-8s | %s%s\n", m.Version, state, m.Name, appliedAt)
		}
	}

	if status.PendingCount > 0 {
		fmt.Printf("\nYou have %d pending migration(s). Run 'up' to apply them.\n", status.PendingCount)
	} else {
		fmt.Printf("\nAll migrations are up to date!\n")
	}
}

func handleUp(ctx context.Context, runner *migration.Runner, args []string) {
	target := int64(0)
	if len(args) > 0 {
		target = parseVersion(args[0])
	}

	if target > 0 {
		fmt.Printf("Applying migrations up to version %d...\n", target)
	} else {
		fmt.Println("Applying all pending migrations...")
	}

	results, err := runner.Up(ctx, target)
	printResults("applied", results)
	if err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}
}

func handleDown(ctx context.Context, runner *migration.Runner, args []string) {
	if len(args) == 0 {
		fmt.Println("Target version required for rollback")
		fmt.Println("Usage: down <version>")
		os.Exit(1)
	}
	target := parseVersion(args[0])

	fmt.Printf("Rolling back to version %d...\n", target)
	if !confirm() {
		fmt.Println("Rollback cancelled")
		return
	}

	results, err := runner.Down(ctx, target)
	printResults("rolled back", results)
	if err != nil {
		fmt.Printf("Rollback failed: %v\n", err)
		os.Exit(1)
	}
}

func handleRollback(ctx context.Context, runner *migration.Runner) {
	fmt.Println("Rolling back the last applied migration...")
	if !confirm() {
		fmt.Println("Rollback cancelled")
		return
	}

	results, err := runner.Rollback(ctx)
	printResults("rolled back", results)
	if err != nil {
		fmt.Printf("Rollback failed: %v\n", err)
		os.Exit(1)
	}
}

func handleCreate(runner *migration.Runner, args []string) {
	if len(args) == 0 {
		fmt.Println("Migration name required")
		fmt.Println("Usage: create <name>")
		os.Exit(1)
	}

	upPath, err := runner.Create(strings.Join(args, "_"), time.Now())
	if err != nil {
		fmt.Printf("Failed to create migration: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("  Created: %s\n", upPath)
	fmt.Printf("  Created: %s\n", strings.TrimSuffix(upPath, ".up.sql")+".down.sql")
	fmt.Println("Edit the SQL files and run 'up' to apply")
}

func handleCreateAdmin(ctx context.Context, users *services.UserService, args []string) {
	if len(args) != 3 {
		fmt.Println("Usage: create-admin <name> <email> <password>")
		os.Exit(1)
	}

	admin, err := users.CreateAdmin(ctx, &models.CreateUserRequest{
		Name:     args[0],
		Email:    args[1],
		Password: args[2],
	})
	if err != nil {
		fmt.Printf("Failed to create admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin created: #%d %s\n", admin.ID, admin.Email)
}

func parseVersion(raw string) int64 {
	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || version < 0 {
		fmt.Printf("Invalid version number: %s\n", raw)
		os.Exit(1)
	}
	return version
}

func confirm() bool {
	fmt.Printf("WARNING: This will roll back your database!\n")
	fmt.Printf("Are you sure you want to continue? (y/N): ")

	var response string
	fmt.Scanln(&response)
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

func printResults(verb string, results []migration.Result) {
	if len(results) == 0 {
		fmt.Println("Nothing to do")
		return
	}

	fmt.Printf("\nMigration Results:\n")
	successCount := 0
	for _, result := range results {
		state := "FAILED"
		if result.Success {
			state = "SUCCESS"
			successCount++
		}

		fmt.Printf("  %s | %s | Version %d | %s | %v\n",
			state, result.Direction, result.Version, result.Name, result.ExecutionTime)

		if !result.Success {
			fmt.Printf("    Error: %s\n", result.Error)
			break
		}
		if result.AffectedRows > 0 {
			fmt.Printf("    Affected rows: %d\n", result.AffectedRows)
		}
	}

	fmt.Printf("\nSummary: %d/%d migrations %s\n", successCount, len(results), verb)
}
