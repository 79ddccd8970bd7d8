package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/cobra"

	"github.com/seantiz/directory/internal/api"
	"github.com/seantiz/directory/internal/cloud"
	"github.com/seantiz/directory/internal/config"
	"github.com/seantiz/directory/internal/directory"
	"github.com/seantiz/directory/internal/loadgen"
	"github.com/seantiz/directory/internal/metadata"
	"github.com/seantiz/directory/internal/objectstore"
	"github.com/seantiz/directory/internal/store"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	logger := config.NewLogger(os.Stdout, cfg.LogLevel())

	logger.Info("directory: starting",
		"listen_addr", cfg.ListenAddr,
		"records", cfg.RecordsEnabled(),
		"record_driver", cfg.RecordDriver,
		"photos_bucket", cfg.PhotosBucket,
		"region", cfg.Region,
	)

	opts := cloud.Options{Region: cfg.Region, Endpoint: cfg.AWSEndpoint}
	var awsCfg *aws.Config
	loadAWS := func() (aws.Config, error) {
		if awsCfg == nil {
			c, err := cloud.Load(ctx, opts)
			if err != nil {
				return aws.Config{}, err
			}
			awsCfg = &c
		}
		return *awsCfg, nil
	}

	var records store.Store
	if cfg.RecordsEnabled() {
		switch cfg.RecordDriver {
		case config.DriverSQLite:
			db, err := store.NewSQLiteStore(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			records = db
		default:
			c, err := loadAWS()
			if err != nil {
				return err
			}
			records = store.NewDynamoStore(store.NewDynamoClient(c, opts), config.TableName)
		}
		defer records.Close()
	}

	var photos objectstore.Store
	if cfg.PhotosEnabled() {
		c, err := loadAWS()
		if err != nil {
			return err
		}
		s3Store, err := objectstore.NewS3Store(objectstore.NewS3Client(c, opts, cfg.S3PathStyle), cfg.PhotosBucket, logger)
		if err != nil {
			return err
		}
		photos = s3Store
	}

	spawner, err := loadgen.NewProcessSpawner(logger)
	if err != nil {
		return err
	}

	srv := api.NewServer(cfg.ListenAddr, api.Deps{
		Directory:  directory.New(records, photos, logger),
		Metadata:   metadata.New(cfg.MetadataEndpoint, logger),
		Load:       loadgen.NewGenerator(spawner, cfg.StressMaxSeconds, logger),
		BucketName: cfg.PhotosBucket,
	}, logger)

	return srv.Run()
}

