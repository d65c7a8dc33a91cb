package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gopherweb/gopherweb"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "gopherwebd",
	Short: "Serve a demo application over Gopher and HTTP on one port",
	Long: `gopherwebd answers both Gopher (RFC 1436) and HTTP clients on a
single listener, dispatching every request through the same handler.
Settings are taken from flags, GOPHERWEB_* environment variables or a
gopherwebd config file, in that order of precedence.`,
	Version:       gopherweb.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default searches for gopherwebd.{toml,yaml})")

	flags := rootCmd.Flags()
	flags.String("bind-addr", "127.0.0.1", "socket bind address")
	flags.String("hostname", "127.0.0.1", "advertised hostname (FQDN) used in menu links")
	flags.Int("port", 70, "server port")
	flags.String("root", "/", "application root prefix")
	flags.String("scheme", "gopher", "preferred scheme for external URLs")
	flags.Int("width", gopherweb.DefaultWidth, "menu layout width")
	flags.Int("max-conns", 0, "simultaneous connection cap (0 for unlimited, 1 serializes)")
	flags.Bool("stack-trace", false, "include stack traces in error documents")
	flags.String("system-log", "", "system log file (blank for stderr, \"disable\" to turn off)")
	flags.String("access-log", "", "access log file (blank for stderr, \"disable\" to turn off)")
	flags.Bool("log-timestamps", false, "timestamp log lines")
	flags.String("secret-key", "", "secret key handed to the session collaborator")
	flags.String("serve-dir", "", "local directory to expose under /files")
	flags.String("description", "gopherweb demo server", "server description in caps.txt")
	flags.String("admin", "", "admin email in caps.txt")
	flags.String("geoloc", "", "server geolocation in caps.txt")

	viper.BindPFlags(flags)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gopherwebd")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/gopherweb")
	}
	viper.SetEnvPrefix("GOPHERWEB")
	viper.AutomaticEnv()

	// A missing config file is fine, flags and env cover everything.
	viper.ReadInConfig()
}

func run(cmd *cobra.Command, args []string) error {
	sysLog, accLog, err := gopherweb.SetupLoggers(
		viper.GetString("system-log"),
		viper.GetString("access-log"),
		viper.GetBool("log-timestamps"),
	)
	if err != nil {
		return err
	}

	cfg := gopherweb.Config{
		BindAddr:       viper.GetString("bind-addr"),
		Hostname:       viper.GetString("hostname"),
		Port:           viper.GetInt("port"),
		Root:           viper.GetString("root"),
		Scheme:         viper.GetString("scheme"),
		Width:          viper.GetInt("width"),
		MaxConns:       viper.GetInt("max-conns"),
		ShowStackTrace: viper.GetBool("stack-trace"),
		SecretKey:      viper.GetString("secret-key"),
		SysLog:         sysLog,
		AccLog:         accLog,
	}

	info := gopherweb.ServerInfo{
		Description: viper.GetString("description"),
		Admin:       viper.GetString("admin"),
		Geolocation: viper.GetString("geoloc"),
	}

	handler, err := demoHandler(cfg, viper.GetString("serve-dir"), info)
	if err != nil {
		return err
	}

	return gopherweb.NewServer(cfg, handler).ListenAndServe()
}
