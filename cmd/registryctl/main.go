// registryctl is a small CLI over the registrydata lookup client.
//
// Usage
//
//	registryctl domain example.com
//	registryctl domain example.com --prefer-whois --include-raw
//	registryctl domain example.com --redis-addr localhost:6379 -v 1
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	redis "github.com/go-redis/redis/v7"
	"github.com/spf13/cobra"

	"go.datum.net/registry-lookup/internal/registrydata"
)

var (
	flagPreferWhois   bool
	flagIncludeRaw    bool
	flagRedisAddr     string
	flagWhoisBackends []string
	flagVerbosity     int
)

func main() {
	root := &cobra.Command{
		Use:   "registryctl",
		Short: "Domain registration lookup over RDAP and WHOIS",
	}

	root.PersistentFlags().IntVarP(&flagVerbosity, "verbosity", "v", 0, "log verbosity (higher is noisier)")

	root.AddCommand(cmdDomain())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func cmdDomain() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domain <name>",
		Short: "Look up a domain's registration record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			out, err := c.LookupDomain(cmd.Context(), registrydata.LookupRequest{
				Domain:      args[0],
				PreferWhois: flagPreferWhois,
				IncludeRaw:  flagIncludeRaw,
			})
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	cmd.Flags().BoolVar(&flagPreferWhois, "prefer-whois", false, "try WHOIS first and fall back to RDAP")
	cmd.Flags().BoolVar(&flagIncludeRaw, "include-raw", false, "include the raw registry payload in the output")
	cmd.Flags().StringVar(&flagRedisAddr, "redis-addr", "", "Redis address for the endpoint cache (in-memory when unset)")
	cmd.Flags().StringArrayVar(&flagWhoisBackends, "whois-backend", nil, "HTTP WHOIS backend URL, tried before port 43 (repeatable)")
	return cmd
}

func newClient() (registrydata.Client, error) {
	cfg := registrydata.Config{
		Logger:        newLogger(),
		WhoisBackends: flagWhoisBackends,
	}
	if flagRedisAddr != "" {
		cfg.Cache = registrydata.CacheConfig{
			Backend:        registrydata.CacheBackendRedis,
			RedisKeyPrefix: "registryctl:",
		}
		cfg.RedisClient = redis.NewClient(&redis.Options{Addr: flagRedisAddr})
	}
	return registrydata.NewClient(cfg)
}

// newLogger writes structured log lines to stderr so stdout stays pure JSON.
func newLogger() logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintln(os.Stderr, prefix, args)
			return
		}
		fmt.Fprintln(os.Stderr, args)
	}, funcr.Options{Verbosity: flagVerbosity})
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
