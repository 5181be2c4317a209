package main

import (
	"os"
	"time"

	"salesnote/internal/config"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

var rootCmd = &cobra.Command{
	Use:          "salesnote",
	Short:        "Sales note service",
	SilenceUsage: true,
	//サブコマンド無しならAPIを起動
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, productCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// 設定読み込み＋ロガー初期化（全サブコマンド共通）
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	setupLogger(cfg)
	return cfg, nil
}

func setupLogger(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	//開発時は読みやすい形式
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
}
