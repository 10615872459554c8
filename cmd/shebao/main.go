package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shebao/internal/config"
	"shebao/internal/logging"
	"shebao/internal/server"
	"shebao/internal/store"
)

var (
	// 全局参数
	configPath string
	dataDir    string
	devMode    bool

	cfg     *config.AppConfig
	cfgInfo config.LoadConfigInfo
	logger  *zap.Logger
)

// rootCmd 根命令，无子命令时启动 HTTP 服务
var rootCmd = &cobra.Command{
	Use:   "shebao",
	Short: "社保缴费计算服务",
	Long: `上传城市社保标准与员工月度工资 Excel，按年度平均工资计算缴费基数与单位缴费金额。

不带子命令运行时等同于 shebao serve。`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}

		var err error
		cfg, cfgInfo, err = config.LoadConfigWithInfo(configPath)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		if devMode {
			cfg.Server.DevMode = true
		}
		if dataDir != "" {
			cfg.Data.DataDir = dataDir
		}

		logger, err = logging.New(cfg.Log.Level, cfg.Server.DevMode)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "配置文件路径 (默认为可执行文件同目录下的 config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "数据目录 (覆盖配置文件)")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "开发模式")

	serveCmd.Flags().IntVar(&servePort, "port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())

	calculateCmd.Flags().StringVar(&calcYear, "year", "", "计算年份，如 2024")
	calculateCmd.Flags().StringVar(&calcCity, "city", "", "城市 (默认取 business.default_city)")
	_ = calculateCmd.MarkFlagRequired("year")

	exportCmd.Flags().StringVar(&exportYear, "year", "", "导出年份")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "输出文件 (默认写入数据目录 exports/)")
	_ = exportCmd.MarkFlagRequired("year")

	importCmd.AddCommand(importCitiesCmd, importSalariesCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(serveCmd, importCmd, calculateCmd, exportCmd, citiesCmd, configCmd)
}

// openRepository 按配置打开存储
func openRepository(ctx context.Context) (store.Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return server.OpenRepository(ctx, cfg, logger.Named("store"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
