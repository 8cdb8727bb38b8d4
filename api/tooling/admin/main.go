package main

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/credentialbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/credentialbus/stores/credentialdb"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/registrationbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/registrationbus/stores/directorybus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/registrationbus/stores/registrymem"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/registrationbus/stores/registryredis"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/tenantbus"
	tenantdb "github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/tenantbus/stores"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/userbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/userbus/stores/userdb"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/migrate"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/sqldb"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/name"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/password"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/plan"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/types/username"
	"github.com/Mukeshmehta2041/crm-micro-sub000/foundation/logger"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	"github.com/redis/go-redis/v9"
)

// Config replicates the DB and registry configuration of the api binary.
type Config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"crm"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
	Registration struct {
		RedisHost string        `envconfig:"REGISTRATION_REDIS_HOST" default:""`
		RedisTTL  time.Duration `envconfig:"REGISTRATION_REDIS_TTL" default:"2m"`
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

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: migrate, seed, genkey, register, inflight, clear-inflight")
		return nil
	}

	// genkey has no database or registry dependency.
	if os.Args[1] == "genkey" {
		return runGenKey(os.Args[2:])
	}

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	switch os.Args[1] {
	case "migrate":
		if err := migrate.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		fmt.Println("migrations complete")
		return nil

	case "seed":
		if err := migrate.Seed(ctx, db); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
		fmt.Println("seed data complete")
		return nil

	case "register":
		return runRegister(ctx, log, newRegistrationCore(log, cfg, db), os.Args[2:])

	case "inflight":
		keys := newRegistrationCore(log, cfg, db).Snapshot()
		fmt.Printf("in-flight registrations: %d\n", len(keys))
		for _, key := range keys {
			fmt.Println(" ", key)
		}
		return nil

	case "clear-inflight":
		n := newRegistrationCore(log, cfg, db).ClearInFlight(ctx)
		fmt.Printf("cleared %d in-flight registrations\n", n)
		return nil

	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// newRegistrationCore wires the same registration pipeline the api
// binary runs, sharing the redis registry when one is configured. With
// the in-memory registry the inflight commands only see this process.
func newRegistrationCore(log *logger.Logger, cfg Config, db *sqlx.DB) *registrationbus.Core {
	userBus := userbus.NewCore(userdb.NewStore(log, db))
	tenantBus := tenantbus.NewCore(log, tenantdb.NewStore(log, db))
	credentialBus := credentialbus.NewCore(credentialdb.NewStore(log, db))

	var registry registrationbus.Registry = registrymem.New()
	if cfg.Registration.RedisHost != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Registration.RedisHost})
		registry = registryredis.New(log, client, cfg.Registration.RedisTTL)
	}

	return registrationbus.NewCore(registrationbus.Config{
		Log:         log,
		Registry:    registry,
		Tenants:     directorybus.NewTenantDirectory(tenantBus),
		Users:       directorybus.NewUserDirectory(userBus),
		Credentials: directorybus.NewCredentialStore(credentialBus),
	})
}

func runRegister(ctx context.Context, log *logger.Logger, core *registrationbus.Core, args []string) error {
	cmd := flag.NewFlagSet("register", flag.ExitOnError)
	emailStr := cmd.String("email", "", "Admin user email (Required)")
	usernameStr := cmd.String("username", "", "Admin user username (Required)")
	passStr := cmd.String("password", "", "Admin user password (Required)")
	companyStr := cmd.String("company", "", "Company name (Required)")
	nameStr := cmd.String("name", "", "Admin user full name (Required)")
	planStr := cmd.String("plan", "TRIAL", "Plan (TRIAL, STANDARD, ENTERPRISE)")
	cmd.Parse(args)

	if *emailStr == "" || *usernameStr == "" || *passStr == "" || *companyStr == "" || *nameStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	addr, err := mail.ParseAddress(*emailStr)
	if err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	uname, err := username.Parse(*usernameStr)
	if err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}

	pass, err := password.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	company, err := name.Parse(*companyStr)
	if err != nil {
		return fmt.Errorf("invalid company name: %w", err)
	}

	fullName, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	pln, err := plan.Parse(*planStr)
	if err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}

	reg, err := core.Register(ctx, registrationbus.NewRegistration{
		Email:       *addr,
		Username:    uname,
		Password:    pass,
		CompanyName: company,
		Name:        fullName,
		Locale:      "en-US",
		Plan:        pln,
	})
	if err != nil {
		return fmt.Errorf("register failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: Registration complete!\nTenant: %s\nSubdomain: %s\nUser: %s\n", reg.Tenant.ID, reg.Tenant.Subdomain, reg.User.ID)
	return nil
}

func runGenKey(args []string) error {
	cmd := flag.NewFlagSet("genkey", flag.ExitOnError)
	folder := cmd.String("folder", "foundation/zarf/keys", "Folder to write the PEM file into")
	cmd.Parse(args)

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return fmt.Errorf("generating key: %w", err)
	}

	kid := uuid.NewString()

	file, err := os.Create(filepath.Join(*folder, kid+".pem"))
	if err != nil {
		return fmt.Errorf("creating key file: %w", err)
	}
	defer file.Close()

	block := pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	}

	if err := pem.Encode(file, &block); err != nil {
		return fmt.Errorf("encoding to private file: %w", err)
	}

	fmt.Printf("\nSUCCESS: Key generated!\nKID: %s\n", kid)
	return nil
}
