package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/tsc/config"
	"github.com/dhamidi/tsc/cursor"
	"github.com/dhamidi/tsc/format"
)

const version = "0.1.0"

// app carries the settings shared by all subcommands.
type app struct {
	v          *viper.Viper
	cfg        *config.Config
	configFile string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:          "tsc",
		Short:        "Walk and inspect syntax trees",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReadFile(a.v, a.configFile); err != nil {
				return err
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg

			if cfg.Log != "" {
				commonlog.Configure(cfg.Verbose, &cfg.Log)
			} else {
				commonlog.Configure(cfg.Verbose, nil)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default $HOME/"+config.DefaultFile+")")
	flags.CountP(config.KeyVerbose, "v", "increase log verbosity")
	flags.String(config.KeyLog, "", "log file (default stderr)")
	flags.StringSliceP(config.KeyProps, "p", config.DefaultProps, "properties to project")
	flags.StringP(config.KeyFormat, "f", "line", "output format")
	flags.IntP(config.KeyJobs, "j", 0, "files processed concurrently (default: number of CPUs)")
	if err := bindFlags(a.v, flags, config.KeyVerbose, config.KeyLog, config.KeyProps, config.KeyFormat, config.KeyJobs); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(newWalkCmd(a))
	rootCmd.AddCommand(newSeekCmd(a))
	rootCmd.AddCommand(newCountCmd(a))
	rootCmd.AddCommand(newLangsCmd(a))
	rootCmd.AddCommand(newPropsCmd())
	rootCmd.AddCommand(newLSPCmd(a))

	return rootCmd
}

// bindFlags makes the named flags override the viper keys of the same name.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys ...string) error {
	for _, key := range keys {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return fmt.Errorf("bind flag %s: %w", key, err)
		}
	}
	return nil
}

// props parses the configured property names, rejecting unknown ones.
func (a *app) props() ([]cursor.Prop, error) {
	props := cursor.ParseProps(a.cfg.Props)
	for i, p := range props {
		if p == cursor.PropUnknown {
			return nil, fmt.Errorf("unknown property %q (see tsc props)", a.cfg.Props[i])
		}
	}
	return props, nil
}

func (a *app) encoder(cmd *cobra.Command) (format.Encoder, error) {
	return format.New(a.cfg.Format, cmd.OutOrStdout(), a.cfg.Props)
}
