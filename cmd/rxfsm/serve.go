package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/colintheshots/RxFsm"
	"github.com/colintheshots/RxFsm/internal/config"
	"github.com/colintheshots/RxFsm/internal/logging"
	httpadapter "github.com/colintheshots/RxFsm/pkg/adapters/http"
	redisadapter "github.com/colintheshots/RxFsm/pkg/adapters/redis"
	"github.com/colintheshots/RxFsm/pkg/dsl"
	"github.com/colintheshots/RxFsm/pkg/observability"
	"github.com/colintheshots/RxFsm/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose a machine as a JSON API over HTTP",
	Long: `Loads the machine definition, activates it and serves it over HTTP.
Prometheus metrics are exposed on a separate listener, and occurrences
can additionally arrive over Redis pub/sub when RXFSM_REDIS_ADDR is set.
Configuration comes from RXFSM_* environment variables.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")

		cfg, err := config.LoadServe()
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}

		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		logger := logging.New(level)

		def, err := dsl.Load(file)
		if err != nil {
			fmt.Printf("Error loading definition: %v\n", err)
			os.Exit(1)
		}

		streams := registry.New()
		topStates, initial, err := dsl.Build(def, streams)
		if err != nil {
			fmt.Printf("Error building machine: %v\n", err)
			os.Exit(1)
		}

		promReg := prometheus.NewRegistry()
		metrics := observability.NewMetrics(promReg)

		machine := rxfsm.Create(
			rxfsm.WithLogger(logger),
			rxfsm.WithHooks(metrics.Hooks()),
		).WithTopStates(topStates...).WithInitialState(initial)
		if err := machine.Activate(); err != nil {
			fmt.Printf("Error activating machine: %v\n", err)
			os.Exit(1)
		}
		defer machine.Deactivate()

		// One lock serializes every occurrence producer against the machine.
		var lock sync.Mutex

		srv := &http.Server{
			Addr: cfg.Addr,
			Handler: httpadapter.NewHandler(machine, streams,
				httpadapter.WithLogger(logger),
				httpadapter.WithLock(&lock)),
		}

		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))
		metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux}

		// Channel to listen for errors coming from the listeners.
		serverErrors := make(chan error, 3)

		go func() {
			logger.Info("starting api server", "addr", srv.Addr, "definition", file)
			serverErrors <- srv.ListenAndServe()
		}()

		go func() {
			logger.Info("starting metrics server", "addr", metricsSrv.Addr)
			serverErrors <- metricsSrv.ListenAndServe()
		}()

		pumpCtx, stopPump := context.WithCancel(context.Background())
		defer stopPump()

		if cfg.RedisAddr != "" {
			client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
			pump := redisadapter.NewPump(client, streams,
				redisadapter.WithPrefix(cfg.RedisPrefix),
				redisadapter.WithLock(&lock),
				redisadapter.WithLogger(logger))
			go func() {
				logger.Info("starting redis pump", "addr", cfg.RedisAddr, "prefix", cfg.RedisPrefix)
				serverErrors <- pump.Run(pumpCtx)
			}()
		}

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			stopPump()

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "error", err)
				}
			}
			if err := metricsSrv.Shutdown(ctx); err != nil {
				_ = metricsSrv.Close()
			}
			logger.Info("rxfsm server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
