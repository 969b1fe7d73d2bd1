package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"recyclemart-backend/config"
	"recyclemart-backend/internal/api/auth"
	"recyclemart-backend/internal/api/product"
	"recyclemart-backend/internal/api/seller"
	"recyclemart-backend/internal/cache"
	"recyclemart-backend/internal/errors"
	"recyclemart-backend/internal/middleware"
	"recyclemart-backend/internal/model"
	"recyclemart-backend/internal/repository/mongodb"
	"recyclemart-backend/internal/service"
	"recyclemart-backend/internal/storage"
	"recyclemart-backend/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 连接 MongoDB
	db, teardown, err := mongodb.Connect(config.AppConfig.MongoURI, config.AppConfig.MongoDBName)
	if err != nil {
		util.Logger.Fatal("连接MongoDB失败", zap.Error(err))
	}
	defer teardown()
	util.Logger.Info("MongoDB连接成功")

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 30*time.Second)
	if err := mongodb.EnsureIndexes(indexCtx, db); err != nil {
		util.Logger.Fatal("创建索引失败", zap.Error(err))
	}
	cancelIndex()

	// 连接 Redis，失败时降级为无缓存运行
	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		util.Logger.Warn("连接Redis失败，缓存已停用", zap.Error(err))
		redisClient = nil
	} else {
		util.Logger.Info("Redis连接成功")
	}
	cancelPing()
	appCache := cache.New(redisClient)

	// 确保上传文件夹存在
	ensureUploadsFolder()

	// 初始化文件存储后端
	fileStorage, err := storage.NewFileStorage(&config.AppConfig)
	if err != nil {
		util.Logger.Fatal("初始化文件存储失败", zap.Error(err))
	}

	// 初始化存储库、服务和处理器
	userRepo := mongodb.NewUserRepository(db)
	sellerRepo := mongodb.NewSellerRepository(db)
	buyerRepo := mongodb.NewBuyerRepository(db)
	productRepo := mongodb.NewProductRepository(db)

	userService := service.NewUserService(userRepo, buyerRepo, sellerRepo, appCache)
	productService := service.NewProductService(productRepo, sellerRepo, appCache)
	sellerService := service.NewSellerService(sellerRepo, userRepo, productRepo, appCache)

	authHandler := auth.NewAuthHandler(userService)
	productHandler := product.NewProductHandler(productService, fileStorage)
	sellerHandler := seller.NewSellerHandler(sellerService, fileStorage)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	// 设置 Gin 路由
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	r.Use(cors.New(corsConfig))

	// 静态文件的CORS头单独处理
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			c.Header("Access-Control-Allow-Origin", config.AppConfig.FrontendURL)
			c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type")

			if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(200)
				return
			}
		}
		c.Next()
	})

	// 本地上传文件的静态服务
	r.Static("/uploads", config.AppConfig.LocalStoragePath)

	// 健康检查
	startedAt := time.Now()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Server is running",
			"timestamp": time.Now().Format(time.RFC3339),
			"uptime":    time.Since(startedAt).String(),
		})
	})

	// 定义 API 路由
	api := r.Group("/api")
	{
		// 认证相关路由
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)

			authorized := authRoutes.Group("/")
			authorized.Use(middleware.AuthMiddleware())
			{
				authorized.GET("/me", authHandler.Me)
				authorized.POST("/logout", authHandler.Logout)
				authorized.POST("/buyer/profile", middleware.RequireRole(model.RoleBuyer), authHandler.BuyerProfile)
			}
		}

		// 产品相关路由，公共端点在前
		api.GET("/products", productHandler.List)
		api.GET("/products/filters/options", productHandler.FilterOptions)
		api.GET("/products/:id", productHandler.Get)
		api.POST("/products/:id/inquiry",
			middleware.AuthMiddleware(), middleware.RequireRole(model.RoleBuyer), productHandler.Inquiry)

		sellerOnly := api.Group("/")
		sellerOnly.Use(middleware.AuthMiddleware(), middleware.RequireRole(model.RoleSeller))
		{
			sellerOnly.POST("/products", productHandler.Create)
			sellerOnly.PUT("/products/:id", productHandler.Update)
			sellerOnly.DELETE("/products/:id", productHandler.Delete)
			sellerOnly.GET("/products/seller/my-products", productHandler.MyProducts)

			// 卖家档案与仪表盘
			sellerOnly.POST("/seller/profile", sellerHandler.UpsertProfile)
			sellerOnly.GET("/seller/profile", sellerHandler.GetProfile)
			sellerOnly.GET("/seller/dashboard", sellerHandler.Dashboard)
		}
	}

	// 未匹配的路由统一返回404
	r.NoRoute(func(c *gin.Context) {
		errors.HandleError(c, errors.New(errors.ErrResourceNotFound, "Route not found"))
	})

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.Port,
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动", zap.String("port", config.AppConfig.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}

// 确保上传文件夹存在
func ensureUploadsFolder() {
	uploadsPath := config.AppConfig.LocalStoragePath
	if err := os.MkdirAll(uploadsPath, 0755); err != nil {
		util.Logger.Fatal("创建上传文件夹失败", zap.Error(err), zap.String("path", uploadsPath))
	}
}
