// file: cmd/root.go
// version: 1.1.0
// guid: c1d2e3f4-a5b6-7c8d-9e0f-a1b2c3d4e5f6

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hoangdinhthien/swimadmin/internal/cache"
	"github.com/hoangdinhthien/swimadmin/internal/config"
	"github.com/hoangdinhthien/swimadmin/internal/server"
	"github.com/hoangdinhthien/swimadmin/internal/upstream"
)

var cfgFile string
var upstreamURL string
var tenantID string
var apiToken string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "swimadmin",
	Short: "Admin gateway for the swim-school management backend",
	Long: `swimadmin fronts the multi-tenant swim-school backend API for admin
tooling. It normalizes the backend's inconsistent response envelopes, caches
slow-moving catalogs, collapses duplicate in-flight requests, and exposes a
clean local REST API.`,
}

// newClient composes the upstream client and shared cache from the app config.
func newClient() (*upstream.Client, *cache.Cache[any]) {
	store := cache.New[any](config.AppConfig.DefaultCacheTTL)
	client := upstream.New(
		config.AppConfig.UpstreamBaseURL,
		upstream.StaticCredentials{
			APIToken: config.AppConfig.APIToken,
			TenantID: config.AppConfig.TenantID,
		},
		upstream.WithCache(store),
		upstream.WithCatalogTTL(config.AppConfig.CatalogCacheTTL),
		upstream.WithRateLimit(config.AppConfig.UpstreamRequestsPerMinute, config.AppConfig.UpstreamBurst),
	)
	return client, store
}

// serveCmd starts the gateway HTTP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the admin gateway server",
	Long:  `Start the HTTP gateway that fronts the swim-school backend API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.AppConfig.UpstreamBaseURL == "" {
			return fmt.Errorf("upstream base URL not specified")
		}

		client, store := newClient()
		srv := server.NewServer(client, store)
		cfg := server.GetDefaultServerConfig()

		if port := cmd.Flag("port").Value.String(); port != "" {
			cfg.Port = port
		}
		if host := cmd.Flag("host").Value.String(); host != "" {
			cfg.Host = host
		}
		if rt := cmd.Flag("read-timeout").Value.String(); rt != "" {
			if d, err := time.ParseDuration(rt); err == nil {
				cfg.ReadTimeout = d
			}
		}
		if wt := cmd.Flag("write-timeout").Value.String(); wt != "" {
			if d, err := time.ParseDuration(wt); err == nil {
				cfg.WriteTimeout = d
			}
		}

		fmt.Printf("Upstream backend: %s (tenant %s)\n",
			config.AppConfig.UpstreamBaseURL, config.AppConfig.TenantID)
		return srv.Start(cfg)
	},
}

// checkCmd probes upstream connectivity with the configured credentials
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify upstream connectivity and credentials",
	Long:  `Fetch the current profile and tenant list to verify the configured upstream URL, token, and tenant.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.AppConfig.UpstreamBaseURL == "" {
			return fmt.Errorf("upstream base URL not specified")
		}

		client, _ := newClient()
		ctx, cancel := context.WithTimeout(context.Background(), config.AppConfig.RequestTimeout)
		defer cancel()

		user, err := client.CurrentUser(ctx)
		if err != nil {
			return fmt.Errorf("profile check failed: %w", err)
		}
		fmt.Printf("Authenticated as %s (%s)\n", user.Username, user.ID)

		tenants, err := client.ListTenants(ctx)
		if err != nil {
			return fmt.Errorf("tenant check failed: %w", err)
		}
		fmt.Printf("Account can administer %d tenant(s)\n", len(tenants))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.swimadmin.yaml)")
	rootCmd.PersistentFlags().StringVar(&upstreamURL, "upstream", "", "base URL of the swim-school backend API")
	rootCmd.PersistentFlags().StringVar(&tenantID, "tenant", "", "tenant id sent in the x-tenant-id header")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "bearer token for the backend API")

	viper.BindPFlag("upstream_base_url", rootCmd.PersistentFlags().Lookup("upstream"))
	viper.BindPFlag("tenant_id", rootCmd.PersistentFlags().Lookup("tenant"))
	viper.BindPFlag("api_token", rootCmd.PersistentFlags().Lookup("token"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)

	serveCmd.Flags().String("port", "", "port to run the gateway on")
	serveCmd.Flags().String("host", "", "host to bind the gateway to")
	serveCmd.Flags().String("read-timeout", "15s", "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("write-timeout", "15s", "write timeout (e.g. 15s, 1m)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".swimadmin")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()
}
