package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/soft99/storefront-backend/pkg/auth"
	"github.com/soft99/storefront-backend/pkg/config"
	"github.com/soft99/storefront-backend/pkg/enums"
	"github.com/soft99/storefront-backend/pkg/logger"
)

// admin-token prints a signed access token for the admin API.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "admin-token"})

	_ = godotenv.Load()

	subject := flag.String("subject", "", "token subject, usually the operator email")
	role := flag.String("role", string(enums.UserRoleAdmin), "token role: admin|customer")
	ttl := flag.Duration("ttl", 0, "token lifetime (default from SOFT99_JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	parsedRole, err := enums.ParseUserRole(*role)
	requireResource(ctx, logg, "role", err)

	jwtCfg := cfg.JWT
	if *ttl > 0 {
		jwtCfg.ExpirationMinutes = int(ttl.Minutes())
		if jwtCfg.ExpirationMinutes == 0 {
			jwtCfg.ExpirationMinutes = 1
		}
	}

	token, err := auth.MintAccessToken(jwtCfg, time.Now(), auth.AccessTokenPayload{
		Subject: *subject,
		Role:    parsedRole,
	})
	requireResource(ctx, logg, "token", err)

	ctx = logg.WithFields(ctx, map[string]any{"subject": *subject, "role": parsedRole.String(), "ttl": jwtCfg.Expiration().String()})
	logg.Debug(ctx, "admin token minted")
	fmt.Println(token)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
