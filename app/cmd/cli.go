package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Rakhulsr/go-taxonomy/app/configs"
	"github.com/Rakhulsr/go-taxonomy/app/db/seeders"
	"github.com/Rakhulsr/go-taxonomy/app/models/migrations"
	"github.com/Rakhulsr/go-taxonomy/app/repositories"
	"github.com/Rakhulsr/go-taxonomy/app/services"
	"github.com/urfave/cli/v3"
)

func RunCli() {
	cmd := &cli.Command{
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Seed the demo taxonomy and base filters",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					return seeders.DBSeed(db)
				},
			},
			{
				Name:      "classify",
				Usage:     "Run the auto-assignment classifier for a category (idempotent, safe to replay)",
				ArgsUsage: "<category-id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					categoryID := c.Args().First()
					if categoryID == "" {
						return fmt.Errorf("category id is required")
					}
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					classifier := services.NewClassifierService(
						repositories.NewCategoryRepository(db),
						repositories.NewFilterRepository(db),
						repositories.NewFilterOptionRepository(db),
						repositories.NewCategoryFilterRepository(db),
					)
					return classifier.Classify(ctx, categoryID)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
