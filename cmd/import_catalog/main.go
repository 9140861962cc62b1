// import_catalog carga productos desde un CSV exportado de la hoja de cálculo de la koperasi.
// Cada fila pasa por el mismo upsert del catálogo que la API, así que los cambios de stock
// quedan en el libro de movimientos.
//
// Uso: go run ./cmd/import_catalog --file productos.csv [--charset windows-1252] [--dry-run]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/koperasi-api/internal/app"
	"github.com/jhoicas/koperasi-api/internal/application/catalog"
	"github.com/jhoicas/koperasi-api/internal/infrastructure/csvcatalog"
	"github.com/jhoicas/koperasi-api/pkg/config"
	"github.com/jhoicas/koperasi-api/pkg/logger"
)

// importActor queda como autor de los movimientos generados.
const importActor = "import_catalog"

func main() {
	cliApp := &cli.App{
		Name:  "import_catalog",
		Usage: "importa productos desde CSV (id, name, sell_price, buy_price, stock, min_stock)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "ruta del CSV"},
			&cli.StringFlag{Name: "charset", Value: csvcatalog.CharsetUTF8, Usage: "utf-8 | iso-8859-1 | windows-1252"},
			&cli.BoolFlag{Name: "dry-run", Usage: "solo valida el archivo"},
		},
		Action: run,
	}
	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	rows, err := csvcatalog.Read(f, c.String("charset"))
	if err != nil {
		return err
	}
	if c.Bool("dry-run") {
		fmt.Printf("%d filas válidas\n", len(rows))
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	store, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	uc := catalog.NewProductUseCase(store.TxRunner, store.Products)
	var created, updated int
	for _, row := range rows {
		out, err := uc.Upsert(ctx, importActor, row.Request)
		if err != nil {
			return fmt.Errorf("línea %d (%s): %w", row.Line, row.Request.Name, err)
		}
		if out.Created {
			created++
		} else {
			updated++
		}
	}
	log.Info().Int("creados", created).Int("actualizados", updated).Msg("catálogo importado")
	return nil
}
