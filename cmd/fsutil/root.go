package main

import (
	"errors"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmgilman/go/fsutil"
)

// app carries state shared by every subcommand.
type app struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:           "fsutil",
		Short:         "Inspect and modify files through fsutil handles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.loadConfig(cmd); err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), a.v.GetString("log-level"), a.v.GetString("log-file"))
			if err != nil {
				return err
			}
			fsutil.SetLogger(logger)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default $HOME/.fsutil.yaml)")
	flags.String("backend", "local", "storage backend: local, afero, memory or minio")
	flags.String("root", ".", "root directory for the local and afero backends")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.String("log-file", "", "write logs to this file with rotation instead of stderr")
	flags.String("minio-endpoint", "", "MinIO endpoint, e.g. localhost:9000")
	flags.String("minio-bucket", "", "MinIO bucket")
	flags.String("minio-access-key", "", "MinIO access key")
	flags.String("minio-secret-key", "", "MinIO secret key")
	flags.String("minio-prefix", "", "key prefix inside the bucket")
	flags.Bool("minio-ssl", false, "use HTTPS for MinIO")
	flags.Bool("minio-create-bucket", false, "create the bucket if it is missing")

	cmd.AddCommand(
		newPathCmd(a),
		newCatCmd(a),
		newReplaceCmd(a),
		newRmCmd(a),
		newLsCmd(a),
		newSeedCmd(a),
	)
	return cmd
}

// loadConfig layers flags over FSUTIL_* environment variables over the
// config file.
func (a *app) loadConfig(cmd *cobra.Command) error {
	v := a.v
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	v.SetEnvPrefix("fsutil")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
		return v.ReadInConfig()
	}

	home, err := homedir.Dir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(home)
	v.SetConfigName(".fsutil")
	v.SetConfigType("yaml")

	var notFound viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return err
	}
	return nil
}
