// create_admin crea o actualiza un operador (admin o cajero) con contraseña bcrypt.
//
// Uso: go run ./cmd/create_admin --username ani --password 'rahasia123' [--role cajero] [--inactive]
// También acepta los valores como argumentos posicionales: create_admin <username> <password>.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/koperasi-api/internal/app"
	"github.com/jhoicas/koperasi-api/internal/application/auth"
	"github.com/jhoicas/koperasi-api/internal/application/dto"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/pkg/config"
	"github.com/jhoicas/koperasi-api/pkg/logger"
)

func main() {
	cliApp := &cli.App{
		Name:  "create_admin",
		Usage: "crea o actualiza un operador de la koperasi",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "nombre de usuario"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "contraseña (mínimo 8 caracteres)", EnvVars: []string{"ADMIN_PASSWORD"}},
			&cli.StringFlag{Name: "role", Aliases: []string{"r"}, Value: entity.RoleAdmin, Usage: "admin | cajero"},
			&cli.BoolFlag{Name: "inactive", Usage: "deja la cuenta desactivada"},
		},
		Action: run,
	}
	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	username, password := c.String("username"), c.String("password")
	if username == "" {
		username = c.Args().Get(0)
	}
	if password == "" {
		password = c.Args().Get(1)
	}
	if username == "" || password == "" {
		return cli.Exit("uso: create_admin --username <u> --password <p> [--role admin|cajero]", 2)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Store.Driver == "memory" {
		return cli.Exit("STORE_DRIVER=memory no persiste; use SEED_ADMIN_USERNAME/SEED_ADMIN_PASSWORD al arrancar la API", 2)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	store, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	existing, err := store.Admins.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	uc := auth.NewAuthUseCase(store.Admins, auth.JWTConfig{})
	out, err := uc.CreateOrUpdateAdmin(ctx, dto.UpsertAdminRequest{
		Username: username,
		Password: password,
		Role:     c.String("role"),
		Active:   !c.Bool("inactive"),
	})
	if err != nil {
		return err
	}
	if existing != nil {
		fmt.Printf("Operador %s actualizado (rol %s, activo %t).\n", out.Username, out.Role, out.IsActive)
	} else {
		fmt.Printf("Operador %s creado (rol %s, activo %t).\n", out.Username, out.Role, out.IsActive)
	}
	return nil
}
