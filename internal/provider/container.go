package provider

import (
	"github.com/siisjewelry/siis-api/internal/authz"
	"github.com/siisjewelry/siis-api/internal/cache"
	"github.com/siisjewelry/siis-api/internal/cart"
	"github.com/siisjewelry/siis-api/internal/config"
	"github.com/siisjewelry/siis-api/internal/logger"
	"github.com/siisjewelry/siis-api/internal/models"
	"github.com/siisjewelry/siis-api/internal/queue"
	"github.com/siisjewelry/siis-api/internal/repository"
	"github.com/siisjewelry/siis-api/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo     repository.AdminRepository
	MemberRepo    repository.MemberRepository
	ProductRepo   repository.ProductRepository
	OrderRepo     repository.OrderRepository
	DashboardRepo repository.DashboardRepository

	// 购物车与图片
	CartStore     *cart.Store
	ImageResolver *cart.ImageResolver

	// Services
	AuthzService      *authz.Service
	AuthService       *service.AuthService
	MemberAuthService *service.MemberAuthService
	MemberService     *service.MemberService
	CaptchaService    *service.CaptchaService
	UploadService     *service.UploadService
	ProductService    *service.ProductService
	OrderService      *service.OrderService
	CheckoutService   *service.CheckoutService
	DashboardService  *service.DashboardService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

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
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.MemberRepo = repository.NewMemberRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.CartStore = cart.NewStore(c.Config.Checkout.CartTTLHours)
	c.ImageResolver = cart.NewImageResolver(c.Config.Upload.PublicBaseURL)

	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.MemberAuthService = service.NewMemberAuthService(c.Config, c.MemberRepo, c.CartStore)
	c.MemberService = service.NewMemberService(c.MemberRepo, c.OrderRepo)
	c.UploadService = service.NewUploadService(c.Config)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.MemberService, c.QueueClient)
	c.CheckoutService = service.NewCheckoutService(c.Config.Checkout, c.CartStore, c.ProductRepo, c.OrderRepo, c.MemberRepo)
	c.DashboardService = service.NewDashboardService(c.Config.Dashboard, c.DashboardRepo)
}
