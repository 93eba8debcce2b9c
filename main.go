package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/facebookgo/inject"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"
	settings "github.com/tryanzu/storefront/core/config"
	"github.com/tryanzu/storefront/core/events"
	"github.com/tryanzu/storefront/core/shell"
	"github.com/tryanzu/storefront/deps"
	"github.com/tryanzu/storefront/modules/api"
	cartapi "github.com/tryanzu/storefront/modules/api/controller/cart"
	"github.com/tryanzu/storefront/modules/cart"
	"github.com/tryanzu/storefront/modules/exceptions"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "storefront",
		Short:        "Storefront catalog and shopping cart",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := gotenv.Load(); err != nil && !os.IsNotExist(err) {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&deps.ConfigFile, "config", deps.ConfigFile, "hjson config merged over the defaults")
	rootCmd.PersistentFlags().BoolVar(&deps.Watch, "watch", deps.Watch, "reload the config file when it changes")

	serveCmd := &cobra.Command{
		Use:   "serve [address]",
		Short: "Starts API web server",
		Long: `Starts the storefront API web server listening
on the given address or on server.address.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := deps.Bootstrap()
			if err != nil {
				return err
			}
			defer container.Close()

			address := container.Config().UString("server.address", ":3200")
			if len(args) == 1 {
				address = args[0]
			}

			var module api.Module
			if err := populate(container, &module); err != nil {
				return err
			}
			return module.Run(address)
		},
	}

	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Starts interactive shell",
		Long: `Starts the storefront interactive shell
over the local cart slot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := deps.Bootstrap()
			if err != nil {
				return err
			}
			defer container.Close()

			if container.Carts() == nil {
				return errors.New("the shell needs a cart storage other than session")
			}

			errs, err := exceptions.Boot(container.Config().UString("sentry.dsn"))
			if err != nil {
				return err
			}
			defer errs.Recover()

			shell.RunShell(container.Catalog(), container.Carts().Get(container.Slot("")))
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Prints the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := settings.Bootstrap(deps.ConfigFile)
			if err != nil {
				return err
			}
			return c.Dump(os.Stdout)
		},
	})

	rootCmd.AddCommand(serveCmd, shellCmd, configCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// populate wires the API module through the dependency graph.
func populate(container deps.Deps, module *api.Module) error {
	errs, err := exceptions.Boot(container.Config().UString("sentry.dsn"))
	if err != nil {
		return err
	}

	var carts cartapi.Carts
	if registry := container.Carts(); registry != nil {
		carts = &cartapi.Registry{Carts: registry, Slot: container.Slot}
	} else {
		carts = &cartapi.Session{
			Key:       container.Slot(""),
			Listeners: []cart.KeyedListener{events.Forward(container.Events())},
		}
	}

	var g inject.Graph
	err = g.Provide(
		&inject.Object{Value: container.Config(), Complete: true},
		&inject.Object{Value: container.Catalog(), Complete: true},
		&inject.Object{Value: container.Events(), Complete: true},
		&inject.Object{Value: errs, Complete: true},
		&inject.Object{Value: carts, Complete: true},
	)
	if err != nil {
		return err
	}
	return module.Populate(&g)
}
