// Copyright 2026 Dataflow Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
// beamline-mcp exposes the beamline tools to MCP clients over stdio
// (JSON-RPC, one message per line). stdout carries the protocol, so
// all logging goes to stderr or a file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/dataflow-labs/beamline/internal/app"
	"github.com/dataflow-labs/beamline/internal/log"
	"github.com/dataflow-labs/beamline/internal/version"
	"github.com/dataflow-labs/beamline/pkg/config"
	"github.com/dataflow-labs/beamline/pkg/history"
	"github.com/dataflow-labs/beamline/pkg/mcp/server"
	"github.com/dataflow-labs/beamline/pkg/mcp/transport"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error")
	logFile := flag.String("log-file", "", "log file path (default stderr)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get())
		return
	}

	if err := run(*configPath, *logLevel, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "beamline-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logLevel, logFile string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}

	if err := log.Setup(cfg.Log.Level, cfg.Log.File); err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer func() { _ = log.Sync() }()

	registry := app.BuildRegistry(cfg)

	var recorder server.Recorder
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			// History is best-effort; the server still runs without it.
			log.Warn("history disabled", zap.String("path", cfg.History.Path), zap.Error(err))
		} else {
			defer store.Close()
			recorder = store
		}
	}

	srv := server.New("beamline-mcp", version.Get(), log.Logger(),
		server.WithToolProvider(server.NewRegistryProvider(registry, recorder)))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	t := transport.NewStdio(os.Stdin, os.Stdout)
	defer t.Close()

	log.Info("starting beamline-mcp",
		zap.String("version", version.Get()),
		zap.Int("tools", registry.Count()))

	err = srv.Serve(ctx, t)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		// Client disconnect or signal: a clean shutdown.
		return nil
	}
	return err
}
