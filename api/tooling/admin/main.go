// This program provides administrative tooling for the planora database:
// schema migration, seeding and bootstrap of users and workspaces.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/mail"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	"github.com/planora/planora/business/domain/membershipbus"
	"github.com/planora/planora/business/domain/membershipbus/stores/membershipdb"
	"github.com/planora/planora/business/domain/rolebus"
	"github.com/planora/planora/business/domain/rolebus/stores/roledb"
	"github.com/planora/planora/business/domain/subscriptionbus"
	"github.com/planora/planora/business/domain/subscriptionbus/stores/subscriptiondb"
	"github.com/planora/planora/business/domain/userbus"
	"github.com/planora/planora/business/domain/userbus/stores/usercache"
	"github.com/planora/planora/business/domain/userbus/stores/userdb"
	"github.com/planora/planora/business/domain/workspacebus"
	"github.com/planora/planora/business/domain/workspacebus/stores/workspacedb"
	"github.com/planora/planora/business/sdk/migrate"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/business/types/name"
	"github.com/planora/planora/business/types/password"
	"github.com/planora/planora/business/types/permission"
	"github.com/planora/planora/business/types/plan"
	"github.com/planora/planora/business/types/role"
	"github.com/planora/planora/foundation/logger"
)

// Config replicates necessary DB config structure
type Config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"planora"`
		Schema       string `envconfig:"DB_SCHEMA" default:"public"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN-TOOL", nil)
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		Schema:       cfg.DB.Schema,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: migrate, seed, create-user, create-workspace")
		return nil
	}

	switch os.Args[1] {
	case "migrate":
		return runMigrate(ctx, db)
	case "seed":
		return runSeed(ctx, db)
	case "create-user":
		userBus := userbus.NewCore(usercache.NewStore(log, userdb.NewStore(log, db), time.Minute))
		return runCreateUser(ctx, userBus, os.Args[2:])
	case "create-workspace":
		return runCreateWorkspace(ctx, log, db, os.Args[2:])
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

func runMigrate(ctx context.Context, db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if err := migrate.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	fmt.Println("migrations complete")
	return nil
}

func runSeed(ctx context.Context, db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if err := migrate.Seed(ctx, db); err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	fmt.Println("seed data complete")
	return nil
}

func runCreateUser(ctx context.Context, ub *userbus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-user", flag.ExitOnError)
	emailStr := cmd.String("email", "", "User email (Required)")
	passStr := cmd.String("password", "", "User password (Required)")
	nameStr := cmd.String("name", "", "User full name (Required)")
	roleStr := cmd.String("role", "USER", "User role (ADMIN, USER)")
	cmd.Parse(args)

	if *emailStr == "" || *passStr == "" || *nameStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	r, err := role.Parse(*roleStr)
	if err != nil {
		return fmt.Errorf("invalid role: %w", err)
	}

	p, err := password.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	addr, err := mail.ParseAddress(*emailStr)
	if err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	newUser := userbus.NewUser{
		Name:     n,
		Email:    *addr,
		Password: p,
		Role:     r,
	}

	usr, err := ub.Create(ctx, newUser)
	if err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: User created!\nID: %s\nEmail: %s\nRole: %s\n", usr.ID, usr.Email.Address, usr.Role)
	return nil
}

// runCreateWorkspace performs the full onboarding sequence: workspace,
// system roles, owner membership and a free subscription.
func runCreateWorkspace(ctx context.Context, log *logger.Logger, db *sqlx.DB, args []string) error {
	cmd := flag.NewFlagSet("create-workspace", flag.ExitOnError)
	nameStr := cmd.String("name", "", "Workspace name (Required)")
	ownerStr := cmd.String("owner-id", "", "Owner user UUID (Required)")
	cmd.Parse(args)

	if *nameStr == "" || *ownerStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	ownerID, err := uuid.Parse(*ownerStr)
	if err != nil {
		return fmt.Errorf("invalid owner uuid: %w", err)
	}

	workspaceBus := workspacebus.NewCore(log, workspacedb.NewStore(log, db))
	roleBus := rolebus.NewCore(log, roledb.NewStore(log, db))
	membershipBus := membershipbus.NewCore(log, membershipdb.NewStore(log, db))
	subscriptionBus := subscriptionbus.NewCore(log, subscriptiondb.NewStore(log, db))
	registry := permission.NewRegistry(permission.Core)

	ws, err := workspaceBus.Create(ctx, workspacebus.NewWorkspace{
		Name:    n,
		OwnerID: ownerID,
	})
	if err != nil {
		return fmt.Errorf("create workspace failed: %w", err)
	}

	roles, err := roleBus.Seed(ctx, registry, ws.ID)
	if err != nil {
		return fmt.Errorf("seed roles failed: %w", err)
	}

	ownerRoleID := roles[rolebus.RoleOwner].ID
	if _, err := membershipBus.Create(ctx, membershipbus.NewMembership{
		WorkspaceID: ws.ID,
		UserID:      ownerID,
		RoleID:      &ownerRoleID,
	}); err != nil {
		return fmt.Errorf("create owner membership failed: %w", err)
	}

	if _, err := subscriptionBus.Create(ctx, subscriptionbus.NewSubscription{
		WorkspaceID: ws.ID,
		Plan:        plan.Free,
	}); err != nil {
		return fmt.Errorf("create subscription failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: Workspace created!\nID: %s\nName: %s\nOwner: %s\n", ws.ID, ws.Name, ws.OwnerID)
	return nil
}

//go run api/tooling/admin/main.go migrate
//go run api/tooling/admin/main.go seed
//go run api/tooling/admin/main.go create-user -email "admin@planora.dev" -password "Admin123!" -name "Admin User" -role "ADMIN"
//go run api/tooling/admin/main.go create-workspace -name "Acme Marketing" -owner-id "5cf37266-3473-4006-984f-9325122678b7"
