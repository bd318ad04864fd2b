package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Chapsvision-dev/cloudinary-migrate/internal/version"
)

func newRootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "cloudinary-migrate",
		Short: "Copy every uploaded asset from one Cloudinary account to another",
		Long: `cloudinary-migrate lists all uploaded resources of the source account and
re-uploads each one to the destination account by URL, keeping public IDs,
folders and resource types. Existing public IDs are never overwritten.

Credentials are read from the environment (or a .env file):
  SOURCE_CLOUD_NAME, SOURCE_API_KEY, SOURCE_API_SECRET
  DEST_CLOUD_NAME,   DEST_API_KEY,   DEST_API_SECRET`,
		Version:       version.Info(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadEnvFile(envFile, cmd.Flags().Changed("env-file")); err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return &exitError{code: 1, err: err}
			}
			initLogging()
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.SetVersionTemplate("cloudinary-migrate {{.Version}}\n")

	cmd.AddCommand(&cobra.Command{
		Use:              "version",
		Short:            "Print version information",
		Args:             cobra.NoArgs,
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cloudinary-migrate %s\n", version.Info())
		},
	})
	return cmd
}
