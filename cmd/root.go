package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/noamichael/fitspreview/config"
	"github.com/paulmatencio/s3c/gLog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	loglevel   int
	verbose    bool

	// loaded once by initConfig, handed to the browser explicitly
	cfgPath string
	cfg     config.Config

	RootCmd = &cobra.Command{
		Use:   "fitspreview",
		Short: "Inspect and export FITS images",
		Long: `Decode the primary HDU of FITS files, print their header, browse a
directory of light frames and export images as PNG, JPEG or raw payloads.`,
		SilenceUsage: true,
	}
)

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file; default $HOME/.config/fits_preview/config.toml")
	RootCmd.PersistentFlags().IntVarP(&loglevel, "loglevel", "l", 0, "output level of logs (1: error, 2: warning, 3: info, 4: trace)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("loglevel", RootCmd.PersistentFlags().Lookup("loglevel"))

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	cfgPath = configFile
	if cfgPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			log.Fatalln(err)
		}
		cfgPath = path
	}

	var err error
	if cfg, err = config.Load(cfgPath); err != nil {
		log.Printf("Error %v, using default configuration", err)
		cfg = config.Config{Logging: config.Logging{Output: "terminal"}}
	}

	level := viper.GetInt("loglevel")
	if level == 0 {
		level = cfg.Logging.Level
	}
	if level == 0 {
		level = 2
	}
	if viper.GetBool("verbose") {
		level = 4
	}
	output := cfg.Logging.Output
	if output == "" {
		output = "terminal"
	}

	gLog.InitLog(RootCmd.Name(), level, output)
	gLog.Trace.Printf("Config %s, logging level %d, output %s", cfgPath, level, output)
}
