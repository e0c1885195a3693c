package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/famomatic/ytscribe/internal/proxypool"
)

var proxiesCmd = &cobra.Command{
	Use:   "proxies",
	Short: "Proxy pool utilities",
}

var proxiesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Health-check every proxy in the list",
	RunE:  runProxiesCheck,
}

func init() {
	f := proxiesCheckCmd.Flags()
	f.String("health-url", "https://www.google.com", "URL fetched through each proxy")
	f.Duration("health-timeout", 10*time.Second, "timeout per proxy check")
	proxiesCmd.AddCommand(proxiesCheckCmd)
	rootCmd.AddCommand(proxiesCmd)
}

func runProxiesCheck(cmd *cobra.Command, args []string) error {
	path := viper.GetString("proxy-list")
	if path == "" {
		return fmt.Errorf("--proxy-list is required")
	}

	healthURL, _ := cmd.Flags().GetString("health-url")
	healthTimeout, _ := cmd.Flags().GetDuration("health-timeout")

	pool, err := proxypool.Load(path, proxypool.Options{
		Strategy:           proxypool.Strategy(viper.GetString("rotation-strategy")),
		HealthCheckURL:     healthURL,
		HealthCheckTimeout: healthTimeout,
		Logger:             logger,
	})
	if err != nil {
		return err
	}

	logger.Info("checking proxies", "count", pool.Len(), "url", healthURL)
	results := pool.HealthCheck(context.Background())

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		status := "FAIL"
		if results[name] {
			status = "OK"
		}
		fmt.Printf("%-4s %s\n", status, name)
	}

	stats := pool.Stats()
	fmt.Printf("\n%d total, %d active, %d inactive, %d recorded failures\n",
		stats.TotalProxies, stats.ActiveProxies, stats.InactiveProxies, stats.TotalFailures)
	return nil
}
