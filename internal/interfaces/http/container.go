package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	accessUsecases "github.com/reelgate-inc/reelgate/internal/application/access/usecases"
	entitlementApp "github.com/reelgate-inc/reelgate/internal/application/entitlement"
	entitlementUsecases "github.com/reelgate-inc/reelgate/internal/application/entitlement/usecases"
	notificationUsecases "github.com/reelgate-inc/reelgate/internal/application/notification/usecases"
	purchaseUsecases "github.com/reelgate-inc/reelgate/internal/application/purchase/usecases"
	userUsecases "github.com/reelgate-inc/reelgate/internal/application/user/usecases"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/auth"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/cache"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/config"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/content"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/email"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/payment"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/permission"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/ratelimit"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/repository"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/scheduler"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/template"
	"github.com/reelgate-inc/reelgate/internal/infrastructure/video"
	"github.com/reelgate-inc/reelgate/internal/interfaces/http/handlers"
	"github.com/reelgate-inc/reelgate/internal/interfaces/http/middleware"
	"github.com/reelgate-inc/reelgate/internal/shared/biztime"
	"github.com/reelgate-inc/reelgate/internal/shared/db"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
	"github.com/reelgate-inc/reelgate/internal/shared/services/markdown"
)

// Container holds infrastructure, use cases, handlers and background jobs,
// wired once at startup.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client
	clock  biztime.Clock

	// Repositories and stores
	entitlementStore *entitlementApp.Store
	checkoutRepo     *repository.CheckoutRepository
	profileRepo      *repository.UserProfileRepository
	txManager        *db.TransactionManager
	purchaseLocker   purchaseUsecases.UserLocker
	notifierLocker   notificationUsecases.SweepLocker
	enforcer         *permission.Enforcer

	// Use cases
	ucs *useCases

	// Handlers
	purchaseHandler *handlers.PurchaseHandler
	contentHandler  *handlers.ContentHandler
	accessHandler   *handlers.AccessHandler
	tierHandler     *handlers.TierHandler
	adminHandler    *handlers.AdminHandler
	healthHandler   *handlers.HealthHandler

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter

	// Background jobs
	schedulerManager *scheduler.SchedulerManager
}

type useCases struct {
	syncProfile         *userUsecases.SyncProfileUseCase
	checkEligibility    *purchaseUsecases.CheckEligibilityUseCase
	createCheckout      *purchaseUsecases.CreateCheckoutUseCase
	settlePayment       *purchaseUsecases.SettlePaymentUseCase
	handleWebhook       *purchaseUsecases.HandlePaymentWebhookUseCase
	expireCheckouts     *purchaseUsecases.ExpireCheckoutsUseCase
	checkAccess         *accessUsecases.CheckAccessUseCase
	mintPlaybackURL     *accessUsecases.MintPlaybackURLUseCase
	getUserEntitlements *entitlementUsecases.GetUserEntitlementsUseCase
	expirationNotices   *notificationUsecases.SendExpirationNoticesUseCase
	purchaseReceipt     *notificationUsecases.SendPurchaseReceiptUseCase
}

// NewContainer wires every component. Startup fails on anything that would
// leave a route unable to serve: catalog, policies, email templates.
func NewContainer(ctx context.Context, database *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     database,
		cfg:    cfg,
		log:    log,
		clock:  biztime.SystemClock,
		ucs:    &useCases{},
	}

	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}
	if err := c.initPurchase(); err != nil {
		return nil, err
	}
	if err := c.initAccess(ctx); err != nil {
		return nil, err
	}
	if err := c.initNotification(); err != nil {
		return nil, err
	}
	c.initHandlers()
	if err := c.initScheduler(); err != nil {
		return nil, err
	}

	return c, nil
}

// initInfrastructure sets up Redis, repositories, the locks and casbin.
func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.cfg
	log := c.log

	c.redis = initRedis(ctx, cfg, log)

	entitlementRepo := repository.NewEntitlementRepository(c.db, log)
	c.entitlementStore = entitlementApp.NewStore(entitlementRepo, c.clock, log)
	c.checkoutRepo = repository.NewCheckoutRepository(c.db, log)
	c.profileRepo = repository.NewUserProfileRepository(c.db, log)
	c.txManager = db.NewTransactionManager(c.db)

	if c.redis != nil {
		c.purchaseLocker = cache.NewPurchaseLock(c.redis, cache.DefaultPurchaseLockTTL, log)
		c.notifierLocker = cache.NewJobLock(c.redis, cache.DefaultJobLockTTL, log)
		c.rateLimiter = middleware.NewRateLimiter(ratelimit.NewRedisRateLimiter(c.redis), log)
	} else {
		log.Warnw("redis disabled, purchase and notifier locks are process-local and rate limiting is off")
		c.purchaseLocker = cache.NewLocalPurchaseLock()
		c.notifierLocker = cache.NewLocalPurchaseLock()
		c.rateLimiter = middleware.NewRateLimiter(nil, log)
	}

	enforcer, err := permission.NewEnforcer(c.db, log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := permission.InitDefaultPolicies(enforcer, log); err != nil {
		return fmt.Errorf("failed to initialize permission policies: %w", err)
	}
	for _, userID := range cfg.Auth.AdminUsers {
		if err := enforcer.AddRoleForUser(userID, permission.RoleAdmin); err != nil {
			return fmt.Errorf("failed to grant admin role to %s: %w", userID, err)
		}
	}
	c.enforcer = enforcer

	c.ucs.syncProfile = userUsecases.NewSyncProfileUseCase(c.profileRepo, c.clock, log)
	c.authMiddleware = middleware.NewAuthMiddleware(auth.NewJWTVerifier(cfg.Auth), c.ucs.syncProfile, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(enforcer, log)
	return nil
}

// initRedis connects to Redis. Redis is optional: a failed ping disables it.
func initRedis(ctx context.Context, cfg *config.Config, log logger.Interface) *redis.Client {
	if !cfg.Redis.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warnw("failed to connect to Redis, continuing without it", "addr", cfg.Redis.GetAddr(), "error", err)
		_ = client.Close()
		return nil
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())
	return client
}

// initPurchase wires the payment processor and the purchase flow.
func (c *Container) initPurchase() error {
	cfg := c.cfg
	log := c.log

	if cfg.Payment.Provider != "stripe" {
		return fmt.Errorf("unsupported payment provider %q", cfg.Payment.Provider)
	}
	gateway := payment.NewStripeGateway(cfg.Payment, log)

	c.ucs.checkEligibility = purchaseUsecases.NewCheckEligibilityUseCase(c.entitlementStore, log)

	c.ucs.createCheckout = purchaseUsecases.NewCreateCheckoutUseCase(
		c.entitlementStore, c.checkoutRepo, gateway, cfg.Payment.CheckoutTTL(), log)
	c.ucs.createCheckout.SetProfileReader(c.profileRepo)

	c.ucs.settlePayment = purchaseUsecases.NewSettlePaymentUseCase(
		c.entitlementStore, c.checkoutRepo, c.purchaseLocker, c.txManager, log)
	c.ucs.handleWebhook = purchaseUsecases.NewHandlePaymentWebhookUseCase(gateway, c.ucs.settlePayment, log)
	c.ucs.expireCheckouts = purchaseUsecases.NewExpireCheckoutsUseCase(c.checkoutRepo, c.clock, log)

	c.ucs.getUserEntitlements = entitlementUsecases.NewGetUserEntitlementsUseCase(c.entitlementStore, log)
	return nil
}

// initAccess loads the content catalog and the video platform signer.
func (c *Container) initAccess(ctx context.Context) error {
	cfg := c.cfg
	log := c.log

	catalog, err := content.LoadYAMLCatalog(cfg.Content.CatalogPath, log)
	if err != nil {
		return fmt.Errorf("failed to load content catalog: %w", err)
	}

	signer, err := video.NewS3Signer(ctx, cfg.Video, log)
	if err != nil {
		return fmt.Errorf("failed to create playback URL signer: %w", err)
	}

	c.ucs.checkAccess = accessUsecases.NewCheckAccessUseCase(c.entitlementStore, log)
	c.ucs.mintPlaybackURL = accessUsecases.NewMintPlaybackURLUseCase(
		c.ucs.checkAccess, catalog, signer, cfg.Video.URLTTL(), log)
	return nil
}

// initNotification wires email rendering, SMTP delivery and the notifiers.
func (c *Container) initNotification() error {
	cfg := c.cfg
	log := c.log

	loader := template.NewEmailTemplateLoader(cfg.Email.TemplatesDir, log)
	kinds := email.Kinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, string(k))
	}
	if err := loader.Load(names); err != nil {
		return fmt.Errorf("failed to load email templates: %w", err)
	}

	renderer, err := email.NewRenderer(markdown.NewMarkdownService(), loader)
	if err != nil {
		return fmt.Errorf("failed to build email renderer: %w", err)
	}
	sender := email.NewSMTPSender(cfg.Email, renderer, log)

	c.ucs.expirationNotices = notificationUsecases.NewSendExpirationNoticesUseCase(
		c.entitlementStore, c.profileRepo, sender, c.notifierLocker, log)
	c.ucs.purchaseReceipt = notificationUsecases.NewSendPurchaseReceiptUseCase(c.profileRepo, sender, log)
	c.ucs.settlePayment.SetPurchaseNotifier(c.ucs.purchaseReceipt)
	return nil
}

func (c *Container) initHandlers() {
	log := c.log

	c.purchaseHandler = handlers.NewPurchaseHandler(
		c.ucs.checkEligibility, c.ucs.createCheckout, c.ucs.handleWebhook, log)
	c.contentHandler = handlers.NewContentHandler(c.ucs.mintPlaybackURL, log)
	c.accessHandler = handlers.NewAccessHandler(c.ucs.checkAccess, log)
	c.tierHandler = handlers.NewTierHandler()
	c.adminHandler = handlers.NewAdminHandler(c.ucs.getUserEntitlements, c.ucs.expirationNotices, log)

	checks := map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if c.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		}
	}
	c.healthHandler = handlers.NewHealthHandler(checks, log)
}

func (c *Container) initScheduler() error {
	manager, err := scheduler.NewSchedulerManager(c.log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	if err := manager.RegisterCheckoutJobs(c.ucs.expireCheckouts); err != nil {
		return fmt.Errorf("failed to register checkout jobs: %w", err)
	}
	if c.cfg.Notifier.Enabled {
		interval := time.Duration(c.cfg.Notifier.IntervalMinutes) * time.Minute
		if err := manager.RegisterNotifierJob(c.ucs.expirationNotices, interval); err != nil {
			return fmt.Errorf("failed to register notifier job: %w", err)
		}
	} else {
		c.log.Infow("expiration notifier disabled by configuration")
	}

	c.schedulerManager = manager
	return nil
}

// StartBackground starts scheduled jobs.
func (c *Container) StartBackground() {
	c.schedulerManager.Start()
}

// Shutdown stops background jobs and releases connections owned by the container.
func (c *Container) Shutdown() {
	if c.schedulerManager != nil {
		if err := c.schedulerManager.Stop(); err != nil {
			c.log.Errorw("failed to stop scheduler", "error", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close Redis client", "error", err)
		}
	}
}
