package main

import (
	"PowerOutage/internal/config"
	"PowerOutage/internal/engine"
	"PowerOutage/internal/logger"
	"flag"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to the TOML config (default: "+config.DefaultPath+" next to the game)")
	flag.Parse()

	logger.Init()
	defer logger.Sync()

	path := *configPath
	if path == "" {
		path = findAsset(config.DefaultPath)
	}
	cfg, err := config.Load(path)
	if err != nil {
		logger.Log.Error("Invalid config", zap.String("path", path), zap.Error(err))
		logger.Sync()
		os.Exit(-1)
	}
	if cfg.Assets.Dir == "." {
		if dir := findAsset("models"); dir != "" {
			cfg.Assets.Dir = filepath.Dir(dir)
		}
	}
	logger.Log.Info("Starting Power Outage",
		zap.String("assets", cfg.Assets.Dir),
		zap.Int32("width", cfg.Window.Width),
		zap.Int32("height", cfg.Window.Height))

	if err := engine.Run(cfg); err != nil {
		logger.Log.Error("Game failed to start", zap.Error(err))
		logger.Sync()
		os.Exit(-1)
	}
}

// findAsset looks for name beside the executable, then in the working directory.
// It returns "" when nothing is found.
func findAsset(name string) string {
	exePath, _ := os.Executable()
	exeDir := filepath.Dir(exePath)

	paths := []string{
		filepath.Join(exeDir, "assets", name),
		filepath.Join(exeDir, name),
		filepath.Join("assets", name),
		name,
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
