package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	storefront "github.com/NTAravind/eshop-sub000"
	"github.com/NTAravind/eshop-sub000/components"
	"github.com/NTAravind/eshop-sub000/lib/encoding"
	"github.com/NTAravind/eshop-sub000/store"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "storefrontd",
	Short:   "Storefront document runtime server",
	Long:    "storefrontd renders published storefront documents and dispatches their declared actions.",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the storefront",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("db", "", "sqlite database path (empty = in-memory store with demo seed)")
	serveCmd.Flags().String("signing-key", "dev-only-signing-key", "action envelope signing key")
	serveCmd.Flags().String("store-id", "demo", "tenant store id to serve")

	viper.SetEnvPrefix("STOREFRONT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlags(serveCmd.Flags())

	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	encoder, err := encoding.NewEncoder([]byte(viper.GetString("signing-key")))
	if err != nil {
		return err
	}

	var docs store.Store
	if path := viper.GetString("db"); path != "" {
		sqliteStore, err := store.OpenSQLite(path, log)
		if err != nil {
			return err
		}
		defer sqliteStore.Close()
		docs = sqliteStore
	} else {
		mem := store.NewMemoryStore()
		if err := seedDemoDocuments(cmd.Context(), mem, viper.GetString("store-id")); err != nil {
			return err
		}
		docs = mem
	}

	comps := storefront.NewComponentRegistry()
	components.Register(comps)

	actions := storefront.NewActionRegistry()
	registerDemoHandlers(actions, log)

	renderer := storefront.NewRenderer(comps,
		storefront.WithEncoder(encoder),
		storefront.WithLogger(log),
	)
	dispatcher := storefront.NewDispatcher(actions,
		storefront.WithDispatchLogger(log),
	)

	loader := &storeLoader{
		docs:    docs,
		storeID: viper.GetString("store-id"),
	}
	handler := storefront.NewHandler(loader, renderer, dispatcher, encoder, log)

	addr := viper.GetString("addr")
	log.Info().Str("addr", addr).Str("store", loader.storeID).Msg("storefront listening")
	return http.ListenAndServe(addr, handler.Routes())
}
