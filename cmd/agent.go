package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"hostwatch/internal/agent"
	"hostwatch/internal/alert"
	"hostwatch/internal/auth"
	"hostwatch/internal/conf"
	"hostwatch/internal/console"
	"hostwatch/internal/metrics"
	"hostwatch/internal/smart"
	"hostwatch/internal/system"
	"hostwatch/internal/web"
)

func main() {
	configPath := flag.String("config", "config.toml", "Path to config file")
	consoleFlag := flag.Bool("console", false, "Print every reading to stdout")
	addUser := flag.String("add-user", "", "Add a dashboard user as name:password and exit")
	flag.Parse()

	file := conf.NewFile(*configPath)
	users := auth.NewUsers(file)

	if *addUser != "" {
		name, password, ok := strings.Cut(*addUser, ":")
		if !ok {
			log.Fatalf("-add-user expects name:password")
		}
		if err := users.NewUser(name, password); err != nil {
			log.Fatalf("Failed to add user: %v", err)
		}
		log.Printf("User %s added to %s", name, *configPath)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Startup settings; interval, metric families and thresholds are read
	// again by every cycle.
	cfg := file.Read()

	vendor := cfg.Sensor.Vendor
	if vendor == "" {
		vendor = system.GetCPUVendor(ctx)
	}
	model := system.GetCPUModel(ctx)
	log.Printf("CPU: %s (vendor %q)", model, vendor)

	collector := metrics.NewCollector(
		metrics.NewPlatformSource(cfg.Sensor, vendor),
		smart.NewRunner(cfg.Smartctl.Path, cfg.Smartctl.Timeout),
		model,
	)

	alertLog := alert.NewLog(cfg.Alerts.LogSize)
	sinks := []agent.Sink{alertLog}
	if notifier := alert.NewNotifier(cfg.Alerts); notifier.Enabled() {
		sinks = append(sinks, notifier)
	}
	if *consoleFlag || !cfg.Web.Enabled {
		sinks = append(sinks, console.New(os.Stdout))
	}

	var (
		srv  *http.Server
		dash *web.Dashboard
	)
	if cfg.Web.Enabled {
		srv, dash = web.NewServer(cfg.Web.Addr, cfg.Web.RootPath, users, alertLog)
		sinks = append(sinks, dash)
	}

	scheduler := agent.New(collector, file, system.SampleWindow, sinks...)
	if srv != nil {
		dash.Refresher = scheduler
		go func() {
			log.Printf("Dashboard listening on %s", cfg.Web.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("HTTP serve: %v", err)
			}
		}()
	}

	if err := scheduler.Run(ctx); err != nil {
		log.Fatalf("hostwatch: %v", err)
	}

	log.Println("Shutting down...")
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}
}
