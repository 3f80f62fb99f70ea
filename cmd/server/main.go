package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"top-movers-server/internal/api"
	"top-movers-server/internal/app"
	"top-movers-server/internal/config"
	"top-movers-server/internal/render"
)

func main() {
	cfg, err := config.Load("configs/app.yaml")
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	app.SetupLogging(cfg)

	registry, err := app.NewRegistry(context.Background(), cfg)
	if err != nil {
		log.Fatalf("tool registry error: %v", err)
	}

	shell := filepath.Join(cfg.Server.PublicDir, "index.html")
	page, err := render.LoadPage(shell)
	switch {
	case errors.Is(err, os.ErrNotExist):
		hlog.Warnf("page shell %s not found; GET / will 404", shell)
	case err != nil:
		log.Fatalf("page shell error: %v", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	h := server.Default(server.WithHostPorts(addr))

	api.RegisterRoutes(h, registry, api.Options{
		PublicDir: cfg.Server.PublicDir,
		ClientDir: cfg.Server.ClientDir,
		Page:      page,
		Caller:    registry,
	})

	hlog.Infof("Server listening on http://localhost:%d", cfg.Server.Port)
	hlog.Infof("MCP endpoint available at http://localhost:%d/mcp", cfg.Server.Port)
	if err := h.Run(); err != nil {
		log.Fatalf("server run error: %v", err)
	}
}
