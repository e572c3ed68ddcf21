package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetimport-go/pkg/server"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport"
	"github.com/ukaji3/sheetimport-go/pkg/store"
	"go.uber.org/zap"
)

var errNoDatabase = errors.New("DATABASE_URL is not set")

func openStore() (*store.Store, error) {
	if !cfg.HasDatabase() {
		return nil, errNoDatabase
	}
	return store.Open(cfg.Database.Driver, cfg.Database.URL, logger)
}

func newLoadCmd() *cobra.Command {
	flags := &importFlags{}
	var table string
	cmd := &cobra.Command{
		Use:   "load [input]",
		Short: "Import a worksheet into a database table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			if table == "" {
				table = strings.ToLower(opts.DefaultWorksheet)
			}
			if table == "" {
				return errors.New("--table is required")
			}
			if opts.DefaultWorksheet == "" {
				opts.DefaultWorksheet = table
			}

			records, err := sheetimport.New(logger).PrepareEntityData(args[0], opts)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := db.Save(cmd.Context(), table, records, opts.Type)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d rows written to %s\n", n, table)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&table, "table", "", "Target table (default: lower-cased default worksheet)")
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the import API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var saver server.Saver
			if cfg.HasDatabase() {
				db, err := openStore()
				if err != nil {
					return err
				}
				defer db.Close()
				saver = db
			} else {
				logger.Warn("DATABASE_URL is not set, save requests will be rejected")
			}

			srv := server.New(server.Config{
				UploadDir:      cfg.Server.UploadDir,
				MaxUploadBytes: cfg.Server.MaxUploadMB << 20,
				AllowOrigins:   cfg.Server.AllowOrigins,
				Defaults: sheetimport.Options{
					Encoding: cfg.Import.Encoding,
					Type:     sheetimport.ImportType(cfg.Import.Type),
				},
			}, sheetimport.New(logger), saver, logger)

			addr := fmt.Sprint(":", cfg.Server.Port)
			logger.Info(fmt.Sprint("Running on 0.0.0.0", addr), zap.String("uploads", cfg.Server.UploadDir))
			return http.ListenAndServe(addr, srv.Handler())
		},
	}
}
