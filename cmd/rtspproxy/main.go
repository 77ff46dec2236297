package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"rtspproxy_go/internal/app"
	"rtspproxy_go/internal/cli"
	"rtspproxy_go/internal/engine/live"
	"rtspproxy_go/internal/logger"
)

func main() {
	progName := filepath.Base(os.Args[0])

	// 1. 解析命令行参数
	cfg, err := cli.Parse(os.Args[1:])
	if err != nil {
		// Use standard fmt before logger is initialized.
		if !errors.Is(err, cli.ErrUsage) {
			fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		}
		fmt.Fprintln(os.Stderr, cli.UsageString(progName))
		os.Exit(1)
	}

	// 2. 初始化日志系统
	if err := logger.Init(cfg.LogConf, cfg.Verbosity); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info().Msg("RTSP Proxy Server")

	// 3. 创建并运行服务器；事件循环正常情况下不会返回
	a := app.New(cfg, live.New())
	if err := a.Run(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("Server bootstrap failed")
	}
}
