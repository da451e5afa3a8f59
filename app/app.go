package app

import (
	"Gin_boardgame_lending_tool/db"
	"Gin_boardgame_lending_tool/ledger"
	"Gin_boardgame_lending_tool/session"
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 简化别名，便于 handlers 调用
type Ctx = gin.Context
type H = gin.H

// App 聚合各依赖
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Logger *zap.Logger
	Ledger *ledger.Client
	Loans  *ledger.Snapshot
	Cron   *cron.Cron
	Config Config

	staffSess *session.StaffSessionStore
}

// Config 从环境变量读取
type Config struct {
	LedgerURL     string
	RedisAddr     string
	RedisPwd      string
	WebOrigin     string
	StaffPasscode string
	SessionTTL    time.Duration
	ScanIdleGap   time.Duration
}

func (a *App) StaffSessions() *session.StaffSessionStore { return a.staffSess }

func MustNew() *App {
	cfg := loadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap: %v", err)
	}

	// --- DB: Postgres (catalog cache) ---
	dbConn := db.ConnectDB()

	// --- Redis (staff sessions) ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("redis", zap.Error(err))
	}

	// --- External ledger ---
	lc := ledger.NewClient(cfg.LedgerURL, logger)
	snap := ledger.NewSnapshot(lc, logger)

	// keep the displayed loan list warm; reconciliation never reads this
	c := cron.New()
	_, _ = c.AddFunc("@every 1m", func() {
		rctx, rcancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer rcancel()
		_ = snap.Refresh(rctx)
	})

	// --- Gin ---
	r := gin.Default()
	useCORS(r, cfg.WebOrigin)

	a := &App{
		Router: r, DB: dbConn, RDB: rdb, Logger: logger,
		Ledger: lc, Loans: snap, Cron: c, Config: cfg,
		staffSess: session.NewStaffSessionStore(rdb, cfg.SessionTTL),
	}
	return a
}

func (a *App) Close() {
	a.Cron.Stop()
	_ = a.RDB.Close()
	_ = a.Logger.Sync()
}

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	ttl := 1 * time.Hour
	if d, err := time.ParseDuration(get("STAFF_SESSION_TTL", "1h")); err == nil {
		ttl = d
	}
	idle := 3 * time.Second
	if d, err := time.ParseDuration(get("SCAN_IDLE_GAP", "3s")); err == nil {
		idle = d
	}
	return Config{
		LedgerURL:     get("LEDGER_URL", "http://127.0.0.1:8080/exec"),
		RedisAddr:     get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:      os.Getenv("REDIS_PASSWORD"),
		WebOrigin:     get("WEB_ORIGIN", "http://localhost:5173"),
		StaffPasscode: get("STAFF_PASSCODE", "staff1234"),
		SessionTTL:    ttl,
		ScanIdleGap:   idle,
	}
}
