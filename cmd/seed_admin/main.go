// seed_admin crea una cuenta con rol admin (los admins no se registran por la API).
//
// Uso: go run ./cmd/seed_admin -email admin@tienda.com -name "Admin" -password 'Secreta123'
// Usa la misma configuración que la API (DATABASE_URL / DB_*).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/retail-ops-api/internal/application/auth"
	"github.com/jhoicas/retail-ops-api/internal/application/dto"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-ops-api/pkg/config"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email del admin")
	name := flag.String("name", "Admin", "nombre del admin")
	password := flag.String("password", "", "contraseña (mínimo 8 caracteres)")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "uso: seed_admin -email <email> -password <password> [-name <nombre>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
	}

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	user, err := authUC.CreateAdmin(ctx, dto.SignupRequest{Name: *name, Email: *email, Password: *password})
	if err != nil {
		log.Fatal().Err(err).Str("email", *email).Msg("crear admin")
	}
	log.Info().Str("id", user.ID).Str("email", user.Email).Msg("admin creado")
}
