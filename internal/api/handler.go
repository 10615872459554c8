package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shebao/internal/calculator"
	"shebao/internal/importer"
	"shebao/internal/logging"
	"shebao/internal/store"
)

// DefaultMaxUploadBytes 未配置时的上传大小上限
const DefaultMaxUploadBytes int64 = 20 << 20

// Options API 处理器选项
type Options struct {
	DefaultCity    string
	MaxUploadBytes int64
	Logger         *zap.Logger
}

// Handler API 处理器
type Handler struct {
	repo      store.Repository
	importer  *importer.Coordinator
	calc      *calculator.Calculator
	maxUpload int64
	logger    *zap.Logger
}

// NewHandler 创建 API 处理器
func NewHandler(repo store.Repository, opts Options) *Handler {
	logger := logging.OrNop(opts.Logger)
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}
	return &Handler{
		repo:     repo,
		importer: importer.NewCoordinator(repo, logger.Named("importer")),
		calc: calculator.NewCalculator(repo,
			calculator.WithDefaultCity(opts.DefaultCity),
			calculator.WithLogger(logger.Named("calculator"))),
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 数据上传
	router.POST("/upload-cities", h.UploadCities)
	router.POST("/upload-salaries", h.UploadSalaries)
	router.GET("/templates/:kind", h.DownloadTemplate)

	// 数据查询
	router.GET("/cities", h.ListCities)
	router.GET("/salaries", h.ListSalaries)

	// 计算与结果
	router.POST("/calculate", h.Calculate)
	router.GET("/results", h.ListResults)
	router.GET("/results/export", h.ExportResults)
}
