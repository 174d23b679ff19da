package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"poasmaster/pkg/api"
	"poasmaster/pkg/config"
	"poasmaster/pkg/core/agent"
	"poasmaster/pkg/core/prompt"
	"poasmaster/pkg/core/settings"
	"poasmaster/pkg/logging"
	"poasmaster/resources"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, nil)

	// Prompt library: disk first so prompts can be edited without a rebuild.
	resourcesPath := cfg.ResourcesDir
	if _, err := os.Stat(resourcesPath); os.IsNotExist(err) {
		exePath, _ := os.Executable()
		resourcesPath = filepath.Join(filepath.Dir(exePath), "resources")
	}
	if err := prompt.LoadFromDirectory(resourcesPath); err != nil {
		logger.WithError(err).Warn("prompt library not found on disk, using embedded prompts")
		if err := prompt.Get().LoadFS(resources.FS, "prompts"); err != nil {
			logger.Fatalf("Failed to load embedded prompts: %v", err)
		}
	} else {
		logger.WithField("path", resourcesPath).Infof("loaded %d prompts", prompt.Get().Count())
	}

	agentCfg, err := agent.LoadConfig(cfg.ModelsConfig)
	if err != nil {
		logger.Fatalf("Failed to load models config: %v", err)
	}
	agentMgr := agent.NewManager(agentCfg, logger)

	store := settings.NewFileStore(cfg.SettingsPath)
	if s, err := store.Load(); err != nil {
		logger.WithError(err).Warn("settings file unreadable, using defaults")
	} else {
		logger.WithFields(logrus.Fields{"currency": s.Currency, "language": s.Language}).Info("settings loaded")
	}

	router := api.NewRouter(api.Deps{
		Agents:        agentMgr,
		Prompts:       prompt.Get(),
		Settings:      store,
		Log:           logger,
		AllowedOrigin: cfg.AllowedOrigin,
		Timeout:       cfg.RequestTimeout,
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("shutdown")
		}
	}()

	logger.WithFields(logrus.Fields{
		"addr":     addr,
		"provider": agentMgr.GetActiveProvider(),
	}).Info("starting server")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server failed: %v", err)
	}
	logger.Info("server stopped")
}
