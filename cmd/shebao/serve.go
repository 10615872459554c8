package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shebao/internal/config"
	"shebao/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("==========================================")
	fmt.Println("  shebao - 社保缴费计算服务")
	fmt.Println("==========================================")

	// 命令行端口仅在配置文件未显式指定时生效
	if servePort > 0 && !cfgInfo.PortSpecified {
		cfg.Server.Port = servePort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := openRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	if cfg.Store.Driver == config.DriverSQLite {
		fmt.Printf("数据目录: %s\n", config.ResolveDataDir(cfg))
	}

	srv := server.NewServer(cfg, repo, logger)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		errCh <- srv.Run(addr)
	}()
	fmt.Println("\n按 Ctrl+C 停止服务...")

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("服务启动失败: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Println("\n正在关闭服务...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Warn("shutdown failed", zap.Error(err))
	}
	return <-errCh
}
