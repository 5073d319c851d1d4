package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"appraiser-auth.backend/internal/config"
	"appraiser-auth.backend/pkg/crypto"
	"appraiser-auth.backend/pkg/jwt"
)

type adminTokenDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	out     io.Writer
}

func defaultAdminTokenDeps() adminTokenDeps {
	return adminTokenDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		out:     os.Stdout,
	}
}

func parseAdminID(adminID string) (uuid.UUID, error) {
	if adminID == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(adminID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --admin-id: %w", err)
	}
	return id, nil
}

func runAdminToken(args []string, deps adminTokenDeps) error {
	if deps.loadEnv == nil {
		deps.loadEnv = func() error { return godotenv.Load() }
	}
	if deps.loadCfg == nil {
		deps.loadCfg = config.Load
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	fs := flag.NewFlagSet("admin-token", flag.ContinueOnError)
	adminIDFlag := fs.String("admin-id", "", "operator UUID (generated when empty)")
	emailFlag := fs.String("email", "", "operator email (required)")
	roleFlag := fs.String("role", "admin", "operator role")
	expiryFlag := fs.Duration("expiry", 0, "token lifetime (defaults to JWT_ACCESS_EXPIRY)")
	secretFlag := fs.Bool("generate-secret", false, "print a fresh JWT_SECRET and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *secretFlag {
		secret, err := crypto.GenerateSigningSecret()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(deps.out, "JWT_SECRET=%s\n", secret)
		return nil
	}

	email := strings.TrimSpace(*emailFlag)
	if email == "" {
		return fmt.Errorf("--email is required")
	}
	adminID, err := parseAdminID(*adminIDFlag)
	if err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := deps.loadCfg()

	expiry := cfg.JWT.AccessExpiry
	if *expiryFlag > 0 {
		expiry = *expiryFlag
	}
	if expiry <= 0 {
		expiry = time.Hour
	}

	token, err := jwt.NewJWTService(cfg.JWT.Secret, expiry).GenerateAccessToken(adminID, email, *roleFlag)
	if err != nil {
		return fmt.Errorf("failed signing token: %w", err)
	}

	_, _ = fmt.Fprintf(deps.out, "admin_id=%s\n", adminID.String())
	_, _ = fmt.Fprintf(deps.out, "role=%s\n", *roleFlag)
	_, _ = fmt.Fprintf(deps.out, "expires_in=%s\n", expiry)
	_, _ = fmt.Fprintf(deps.out, "ACCESS_TOKEN=%s\n", token)
	return nil
}

func main() {
	if err := runAdminToken(os.Args[1:], defaultAdminTokenDeps()); err != nil {
		log.Fatal(err)
	}
}
