package route

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"terminal-terrace/ai-magazine/config"
	"terminal-terrace/ai-magazine/internal/aigateway"
	"terminal-terrace/ai-magazine/internal/aisetting"
	"terminal-terrace/ai-magazine/internal/approved"
	"terminal-terrace/ai-magazine/internal/article"
	"terminal-terrace/ai-magazine/internal/auth"
	"terminal-terrace/ai-magazine/internal/cache"
	"terminal-terrace/ai-magazine/internal/category"
	"terminal-terrace/ai-magazine/internal/dashboard"
	"terminal-terrace/ai-magazine/internal/keywordrewrite"
	"terminal-terrace/ai-magazine/internal/media"
	"terminal-terrace/ai-magazine/internal/middleware"
	"terminal-terrace/ai-magazine/internal/notify"
	"terminal-terrace/ai-magazine/internal/rewrite"
	"terminal-terrace/ai-magazine/internal/scrape"
	"terminal-terrace/ai-magazine/internal/storagelink"
	"terminal-terrace/ai-magazine/internal/user"
	"terminal-terrace/ai-magazine/internal/website"
	"terminal-terrace/ai-magazine/packages/database"
	"terminal-terrace/ai-magazine/packages/email"
)

// 中间件触发的链接检查最短间隔
const storageCheckCooldown = time.Minute

// Deps 路由依赖
type Deps struct {
	DB       *gorm.DB
	Redis    *database.RedisClient // 可为 nil
	Guardian *storagelink.Guardian
}

func initRoute(r *gin.Engine, deps Deps) {
	conf := config.Conf
	db := deps.DB

	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 初始化依赖
	store := cache.New(deps.Redis, conf.AI.CacheTTL())
	aiSettings := aisetting.NewService(db, store, aigateway.New(), conf.AI)

	articleService := article.NewService(db,
		article.WithGenerator(aiSettings),
		article.WithNotifier(notify.NewReviewNotifier(db, email.NewClient(&conf.Smtp), conf.Feed.Title, conf.Server.FrontendURL)),
		article.WithScraper(scrape.New(nil)),
	)
	userService := user.NewService(db)
	keywordService := keywordrewrite.NewService(db, aiSettings)

	// 初始化 handler
	articleHandler := article.NewHandler(articleService)
	authHandler := auth.NewHandler(auth.NewService(db, conf.JWT.Secret, conf.JWT.AccessTokenTTL()))
	categoryHandler := category.NewHandler(category.NewService(db, store))
	approvedHandler := approved.NewHandler(approved.NewService(db))
	mediaHandler := media.NewHandler(media.NewService(db, media.Options{
		PrivateDir: conf.Storage.PrivateDir,
		PublicURL:  conf.Storage.PublicURL,
		MaxBytes:   conf.Storage.MaxUploadBytes(),
	}))

	api := r.Group("/api")
	public := api.Group("/public")
	staff := api.Group("/admin", middleware.JWTAuth(), middleware.Staff())
	admin := api.Group("/admin", middleware.JWTAuth(), middleware.AdminOnly())

	auth.RegisterRoutes(api, authHandler)
	article.RegisterRoutes(api, articleHandler)
	category.RegisterRoutes(api, public, categoryHandler)
	media.RegisterRoutes(api, mediaHandler)
	approved.RegisterPublicRoutes(r, public, approvedHandler)
	website.RegisterRoutes(public, admin, website.NewHandler(website.NewService(db, store, conf.Feed.Title)))

	// 编辑与管理员
	rewrite.RegisterRoutes(staff, rewrite.NewHandler(rewrite.NewService(db)))
	approved.RegisterRoutes(staff, approvedHandler)
	keywordrewrite.RegisterRoutes(staff, keywordrewrite.NewHandler(keywordService))

	// 仅管理员
	article.RegisterAdminRoutes(admin, articleHandler)
	category.RegisterAdminRoutes(admin, categoryHandler)
	user.RegisterRoutes(admin, user.NewHandler(userService))
	aisetting.RegisterRoutes(admin, aisetting.NewHandler(aiSettings))
	dashboard.RegisterRoutes(admin, dashboard.NewHandler(dashboard.NewService(db, userService.Repository(), keywordService)))
	storagelink.RegisterRoutes(admin, storagelink.NewHandler(deps.Guardian))
}

func SetupRouter(deps Deps) *gin.Engine {
	conf := config.Conf
	if conf.Server.Mode != "" {
		gin.SetMode(conf.Server.Mode)
	}
	r := gin.Default()

	origin := conf.Server.FrontendURL
	if origin == "" {
		origin = "http://localhost:5173" // 默认值
	}

	// 设置跨域请求
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	// 媒体请求先确认存储链接可用，再由公开链接提供静态文件
	r.Use(storagelink.Middleware(deps.Guardian, conf.Storage.PublicURL, storageCheckCooldown))
	r.Static(conf.Storage.PublicURL, conf.Storage.PublicLink)

	initRoute(r, deps)

	return r
}
