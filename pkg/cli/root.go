package cli

import (
	"errors"
	"fmt"

	"github.com/devsapp/model-packager/pkg/config"
	"github.com/devsapp/model-packager/pkg/history"
	"github.com/devsapp/model-packager/pkg/packager"
	"github.com/devsapp/model-packager/pkg/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.yaml"

var (
	modelDir     string
	bucketName   string
	modelName    string
	requirements []string
	outputDir    string
	storageType  string
	historyType  string
	configFile   string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "packager",
	Short: "Prepare an ML model package and upload it to object storage",
	Long: `Package a model directory into a deployable tar.gz archive with an
inference handler script and an optional requirements manifest, then upload
it to object storage. The printed storage address is what downstream
infrastructure-as-code references.`,
	SilenceUsage: true,
	RunE:         runPackage,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVar(&modelDir, "model-dir", "", "directory containing model files")
	rootCmd.Flags().StringVar(&bucketName, "bucket-name", "", "destination bucket name")
	rootCmd.Flags().StringVar(&modelName, "model-name", "", "name for the model, determines archive name and storage key")
	rootCmd.Flags().StringSliceVar(&requirements, "requirements", nil, "python packages to include (repeatable or comma separated)")
	rootCmd.Flags().StringVar(&outputDir, "output-dir", ".", "output directory for the model package")
	rootCmd.Flags().StringVar(&storageType, "storage", string(storage.S3), "storage backend s3|oss")
	rootCmd.Flags().StringVar(&historyType, "history", string(history.None), "upload history backend sqlite|tableStore|none")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", defaultConfigPath, "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level debug|info|warn")
	rootCmd.MarkFlagRequired("model-dir")
	rootCmd.MarkFlagRequired("bucket-name")
	rootCmd.MarkFlagRequired("model-name")

	rootCmd.AddCommand(historyCmd)
}

func logInit(logLevel string) {
	switch logLevel {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
		// include function and file
		logrus.SetReportCaller(true)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.WarnLevel)
	}
}

func runPackage(cmd *cobra.Command, args []string) error {
	logInit(logLevel)
	if err := config.InitConfig(configFile); err != nil {
		return err
	}

	uploader, err := (&storage.UploaderFactory{}).New(cmd.Context(), storage.StorageType(storageType))
	if err != nil {
		return err
	}

	var store history.Store
	if history.StoreType(historyType) != history.None {
		store, err = (&history.StoreFactory{}).New(history.StoreType(historyType))
		if err != nil {
			return err
		}
		defer store.Close()
	}

	result, err := packager.Run(cmd.Context(), &packager.Options{
		ModelDir:     modelDir,
		BucketName:   bucketName,
		ModelName:    modelName,
		Requirements: requirements,
		OutputDir:    outputDir,
		Uploader:     uploader,
		History:      store,
	})
	if errors.Is(err, packager.ErrUploadFailed) {
		fmt.Fprintln(cmd.OutOrStdout(), "failed to upload model package")
		return err
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "model successfully prepared and uploaded")
	fmt.Fprintf(cmd.OutOrStdout(), "model package: %s\n", result.PackagePath)
	fmt.Fprintf(cmd.OutOrStdout(), "storage location: %s\n", result.Address)
	fmt.Fprintf(cmd.OutOrStdout(), "\nupdate your terraform.tfvars with:\n   model_data_url = %q\n", result.Address)
	return nil
}
