package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/OmerAlfiel/Shahen-website/pkg/auth"
	"github.com/OmerAlfiel/Shahen-website/pkg/config"
	"github.com/OmerAlfiel/Shahen-website/pkg/logger"
)

// admin-token mints a bearer token for the contact administration routes.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "admin-token"})

	subject := flag.String("subject", "", "operator the token is issued to (required)")
	ttl := flag.Duration("ttl", 0, "token lifetime; defaults to SHAHEN_ADMIN_TOKEN_TTL")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}
	if !cfg.Admin.Enabled() {
		fmt.Fprintln(os.Stderr, "SHAHEN_ADMIN_JWT_SECRET is not set; the admin routes are open and need no token")
		os.Exit(1)
	}
	if *subject == "" {
		fmt.Fprintln(os.Stderr, "missing -subject")
		os.Exit(1)
	}

	adminCfg := cfg.Admin
	if *ttl > 0 {
		adminCfg.TokenTTL = *ttl
	}

	token, err := auth.MintAdminToken(adminCfg, time.Now(), auth.AdminTokenPayload{Subject: *subject})
	if err != nil {
		logg.Error(ctx, "failed to mint admin token", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
