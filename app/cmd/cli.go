package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"

	"github.com/Rakhulsr/go-storefront/app/configs"
	"github.com/Rakhulsr/go-storefront/app/db/seeders"
	"github.com/Rakhulsr/go-storefront/app/models/migrations"
	"github.com/Rakhulsr/go-storefront/app/repositories"
	"github.com/Rakhulsr/go-storefront/app/utils/calc"
	"github.com/Rakhulsr/go-storefront/app/utils/format"
)

// RunCli runs the maintenance command named in args.
func RunCli(ctx context.Context, env configs.ENV, log *logrus.Logger, args []string) error {
	cmd := NewCommand(env, log)
	return cmd.Run(ctx, args)
}

func NewCommand(env configs.ENV, log *logrus.Logger) *cli.Command {
	open := func() (*gorm.DB, error) {
		db, err := configs.OpenConnection(env, log)
		if err != nil {
			return nil, err
		}
		if err := migrations.AutoMigrate(db); err != nil {
			return nil, err
		}
		return db, nil
	}

	return &cli.Command{
		Name:  "storefront",
		Usage: "Storefront admin backend maintenance",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					if _, err := open(); err != nil {
						return err
					}
					log.Info("migrate: migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Insert default settings and the admin user when missing",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := open()
					if err != nil {
						return err
					}
					if err := seeders.DBSeed(ctx, db, env.AdminUsername, env.AdminPassword, log); err != nil {
						return err
					}
					log.Info("seed: seeding complete")
					return nil
				},
			},
			{
				Name:  "create-admin",
				Usage: "Create the admin user or reset its password",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Usage: "admin username", Value: env.AdminUsername},
					&cli.StringFlag{Name: "password", Usage: "admin password", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := open()
					if err != nil {
						return err
					}
					username := c.String("username")
					created, err := seeders.EnsureAdmin(ctx, repositories.NewUserRepository(db), username, c.String("password"), true)
					if err != nil {
						return err
					}
					if created {
						log.WithField("username", username).Info("create-admin: admin created")
					} else {
						log.WithField("username", username).Info("create-admin: password reset")
					}
					return nil
				},
			},
			{
				Name:  "generate-secret",
				Usage: "Generate a random JWT_SECRET for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					secret, err := configs.GenerateSecret()
					if err != nil {
						return err
					}
					fmt.Fprintf(c.Root().Writer, "JWT_SECRET=%s\n", secret)
					return nil
				},
			},
			{
				Name:  "products",
				Usage: "List products with formatted prices",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "currency", Usage: "currency symbol", Value: "$"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := open()
					if err != nil {
						return err
					}
					repo := repositories.NewProductRepository(db)
					total, err := repo.Count(ctx)
					if err != nil {
						return err
					}
					products, err := repo.GetProducts(ctx)
					if err != nil {
						return err
					}

					formatter := format.NewPriceFormatter(c.String("currency"))
					w := tabwriter.NewWriter(c.Root().Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tNAME\tPRICE\tDISCOUNT\tOFF")
					for _, p := range products {
						off := "-"
						if p.DiscountPrice.Valid {
							off = calc.DiscountPercentOf(p.Price, p.DiscountPrice.Decimal).String() + "%"
						}
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, formatter.Format(p.Price), formatter.FormatNullable(p.DiscountPrice), off)
					}
					if err := w.Flush(); err != nil {
						return err
					}
					fmt.Fprintf(c.Root().Writer, "%d products\n", total)
					return nil
				},
			},
		},
		Writer: os.Stdout,
	}
}
