package provider

import (
	"github.com/caneca-next/internal/cache"
	"github.com/caneca-next/internal/config"
	"github.com/caneca-next/internal/logger"
	"github.com/caneca-next/internal/models"
	"github.com/caneca-next/internal/queue"
	"github.com/caneca-next/internal/repository"
	"github.com/caneca-next/internal/service"
	"github.com/caneca-next/internal/storage"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Storage     storage.ObjectStorage

	// Repositories
	UserRepo          repository.UserRepository
	ProductRepo       repository.ProductRepository
	StockRepo         repository.StockRepository
	StockMovementRepo repository.StockMovementRepository
	OrderRepo         repository.OrderRepository
	OrderItemRepo     repository.OrderItemRepository
	OrderServiceRepo  repository.OrderServiceRepository
	DesignUploadRepo  repository.DesignUploadRepository

	// Services
	AuthService    *service.AuthService
	ProductService *service.ProductService
	StockService   *service.StockService
	OrderService   *service.OrderService
	UploadService  *service.UploadService
	EmailService   *service.EmailService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Storage:     storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.BaseURL),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.StockRepo = repository.NewStockRepository(db)
	c.StockMovementRepo = repository.NewStockMovementRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.OrderItemRepo = repository.NewOrderItemRepository(db)
	c.OrderServiceRepo = repository.NewOrderServiceRepository(db)
	c.DesignUploadRepo = repository.NewDesignUploadRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.StockRepo)
	c.StockService = service.NewStockService(c.ProductRepo, c.StockRepo, c.StockMovementRepo)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.OrderItemRepo,
		c.OrderServiceRepo,
		c.ProductRepo,
		c.StockRepo,
		c.StockMovementRepo,
		c.QueueClient,
	)
	c.UploadService = service.NewUploadService(c.Config, c.Storage, c.DesignUploadRepo, c.OrderRepo)
	c.EmailService = service.NewEmailService(&c.Config.Email)
}
