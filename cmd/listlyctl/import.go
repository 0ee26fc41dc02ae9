package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rezkam/listly/internal/application/lists"
	"github.com/rezkam/listly/internal/config"
	"github.com/rezkam/listly/internal/domain"
	"github.com/rezkam/listly/internal/storage"
)

// seedFile is the YAML layout accepted by import. Field names follow the JSON API.
type seedFile struct {
	Lists []seedList `yaml:"lists"`
}

type seedList struct {
	Titulo        string     `yaml:"titulo"`
	Categoria     *string    `yaml:"categoria"`
	FechaObjetivo *string    `yaml:"fechaObjetivo"` // YYYY-MM-DD
	Descripcion   *string    `yaml:"descripcion"`
	Items         []seedItem `yaml:"items"`
}

type seedItem struct {
	Texto      string  `yaml:"texto"`
	Integrante *string `yaml:"integrante"`
	Estado     *string `yaml:"estado"`
	Prioridad  *int    `yaml:"prioridad"`
	Completado bool    `yaml:"completado"`
}

type importResult struct {
	Lists int
	Items int
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Seed lists and items from a YAML file",
		Long: `Create every list in the file, then append its items in order.

Input goes through the same normalization and validation as the HTTP API.
Import stops at the first invalid list or item; lists created before it are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadStorageConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	ctx := cmd.Context()
	repo, err := storage.Open(ctx, *cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Type, err)
	}
	defer repo.Close()

	res, err := importLists(ctx, lists.NewService(repo), f)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d lists (%d items)\n", res.Lists, res.Items)
	return nil
}

// importLists decodes a seed file from r and creates its lists through svc.
func importLists(ctx context.Context, svc *lists.Service, r io.Reader) (importResult, error) {
	var seed seedFile
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil && err != io.EOF {
		return importResult{}, fmt.Errorf("failed to parse seed file: %w", err)
	}

	var res importResult
	for i, sl := range seed.Lists {
		params, err := sl.toParams()
		if err != nil {
			return res, fmt.Errorf("list %d: %w", i+1, err)
		}

		list, err := svc.CreateList(ctx, params)
		if err != nil {
			return res, fmt.Errorf("list %d (%q): %w", i+1, sl.Titulo, err)
		}
		res.Lists++

		for j, si := range sl.Items {
			item, err := svc.AddItem(ctx, list.ID, domain.CreateItemParams{
				Text:     si.Texto,
				Assignee: si.Integrante,
				Status:   si.Estado,
				Priority: si.Prioridad,
			})
			if err != nil {
				return res, fmt.Errorf("list %d item %d: %w", i+1, j+1, err)
			}
			if si.Completado {
				if _, err := svc.UpdateItemCompletion(ctx, list.ID, item.ID, true); err != nil {
					return res, fmt.Errorf("list %d item %d: %w", i+1, j+1, err)
				}
			}
			res.Items++
		}

		slog.DebugContext(ctx, "imported list", "id", list.ID, "items", len(sl.Items))
	}

	return res, nil
}

func (sl seedList) toParams() (domain.ListParams, error) {
	params := domain.ListParams{
		Title:       sl.Titulo,
		Category:    sl.Categoria,
		Description: sl.Descripcion,
	}
	if sl.FechaObjetivo != nil {
		d, err := civil.ParseDate(*sl.FechaObjetivo)
		if err != nil {
			return domain.ListParams{}, fmt.Errorf("fechaObjetivo: %w", err)
		}
		params.TargetDate = &d
	}
	return params, nil
}
