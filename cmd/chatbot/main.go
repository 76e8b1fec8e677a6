// cmd/chatbot/main.go
//
// Interactive campus assistant. Loads the configuration, the intent corpus,
// the fee table and the trained model bundle (all fatal on error: the process
// must not serve requests with a broken configuration), then runs the chat
// TUI with an ops sidecar for health and metrics.
package main

import (
	"context"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"college-chatbot/internal/classifier"
	"college-chatbot/internal/common/cache"
	"college-chatbot/internal/common/config"
	"college-chatbot/internal/common/logger"
	"college-chatbot/internal/common/observability"
	"college-chatbot/internal/fees"
	"college-chatbot/internal/intents"
	"college-chatbot/internal/router"
	"college-chatbot/internal/session"
	"college-chatbot/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zapBoot := logger.New("info", "console")
		zapBoot.Fatal("failed to load configuration", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	corpus, err := intents.Load(cfg.Assistant.IntentsPath)
	if err != nil {
		zapLog.Fatal("failed to load intent corpus", zap.Error(err))
	}

	table, err := fees.LoadTable(cfg.Assistant.FeesPath)
	if err != nil {
		zapLog.Fatal("failed to load fee table", zap.Error(err))
	}

	// The bundle is loaded exactly once, as one atomic pair, and held as
	// read-only shared state for the process lifetime.
	bundle, err := classifier.LoadBundle(cfg.Assistant.BundlePath)
	if err != nil {
		zapLog.Fatal("failed to load model bundle", zap.Error(err))
	}

	log.Info("assistant state loaded", map[string]interface{}{
		"intents":    corpus.Len(),
		"programs":   len(table),
		"vocabulary": bundle.Vectorizer.NumFeatures(),
		"classes":    len(bundle.Model.Classes),
	})

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	resolver := fees.NewResolver(table, cfg.Assistant.HostelAnswer, cfg.Assistant.MessAnswer, log)

	routerOpts := []router.Option{}
	if cfg.Cache.Enabled {
		client := cache.NewRedis(cfg.Cache.Redis)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := cache.Ping(ctx, client); err != nil {
			log.Warn("prediction cache unreachable, continuing without it", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
				"error":   err.Error(),
			})
		} else {
			routerOpts = append(routerOpts, router.WithCache(client, config.GetDuration(cfg.Cache.TTL)))
			defer client.Close()
		}
		cancel()
	}

	rtr := router.New(resolver, bundle, corpus, log, routerOpts...)
	manager := session.NewManager(rtr, cfg.Assistant.Greeting, obs, log)

	if cfg.Ops.Enabled {
		go serveOps(cfg.Ops.Address, log)
	}

	s := manager.Open()
	defer manager.Close(s.ID())

	program := tea.NewProgram(tui.NewChatModel(s), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		zapLog.Fatal("display layer failed", zap.Error(err))
	}
}

// serveOps exposes liveness, readiness and prometheus metrics on a sidecar
// listener. This is operational surface, not the chat transport.
func serveOps(address string, log logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	log.Info("ops listener started", map[string]interface{}{"address": address})
	if err := http.ListenAndServe(address, mux); err != nil {
		log.Error("ops listener stopped", map[string]interface{}{"error": err.Error()})
	}
}
