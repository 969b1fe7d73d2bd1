package config

import (
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// Config 结构体用于存储应用程序的配置信息
type Config struct {
	Port             string
	MongoURI         string
	MongoDBName      string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	JWTSecret        string
	JWTExpiresHours  int
	LogLevel         string
	FrontendURL      string
	BackendURL       string
	S3Region         string
	S3Bucket         string
	LocalStoragePath string
	Debug            bool // 是否开启调试模式
}

// AppConfig 是全局配置变量
var AppConfig Config

// Init 函数用于初始化配置
func Init() {
	// 加载 .env 文件
	err := godotenv.Load()
	if err != nil {
		log.Printf("警告：无法加载 .env 文件: %v", err)
	}

	// 从环境变量中读取配置
	AppConfig = Config{
		Port:             getEnv("PORT", "5000"),
		MongoURI:         getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDBName:      getEnv("MONGODB_NAME", "recyclemart"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTExpiresHours:  getEnvAsInt("JWT_EXPIRES_HOURS", 24),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:5173"),
		BackendURL:       getEnv("BACKEND_URL", "http://localhost:5000"),
		S3Region:         getEnv("S3_REGION", ""),
		S3Bucket:         getEnv("S3_BUCKET", ""),
		LocalStoragePath: getEnv("LOCAL_STORAGE_PATH", "./uploads"),
		Debug:            getEnvAsBool("DEBUG", false),
	}

	validateConfig()

	if AppConfig.Debug {
		gin.SetMode(gin.DebugMode)
		log.Println("应用程序运行在调试模式")
	} else {
		gin.SetMode(gin.ReleaseMode)
		log.Println("应用程序运行在生产模式")
	}

	log.Printf("配置加载完成。MongoDB：%s/%s", AppConfig.MongoURI, AppConfig.MongoDBName)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultVal int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := getEnv(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return defaultVal
}

func validateConfig() {
	if AppConfig.MongoURI == "" || AppConfig.MongoDBName == "" {
		log.Fatal("错误：MongoDB配置不完整")
	}
	if AppConfig.JWTSecret == "" {
		log.Fatal("错误：JWT密钥未设置")
	}
	if AppConfig.RedisAddr == "" {
		log.Fatal("错误：Redis地址未设置")
	}
}
