package core

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Liunian06/LNChat-sub000/app/store/sqlstore"
	"github.com/Liunian06/LNChat-sub000/pkg/metrics"
	"github.com/Liunian06/LNChat-sub000/pkg/socket"
)

type Core struct {
	cfg CoreConfig

	stores     func() *sqlstore.Provider
	httpEngine *gin.Engine
	hub        *socket.Hub
}

func MustSetupCore(cfg CoreConfig) *Core {
	{
		var writer io.Writer = os.Stdout
		if cfg.Log.Path != "" {
			writer = &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    500, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			}
		}
		l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		}))
		slog.SetDefault(l)
	}

	metrics.SetupMetricsManager("lnchat", "core", prometheus.NewRegistry())

	core := &Core{
		cfg:        cfg,
		httpEngine: gin.New(),
		hub:        socket.NewHub(),
	}

	setupSqlStore(core)

	return core
}

func setupSqlStore(core *Core) {
	core.stores = sqlstore.MustSetup(core.cfg.Postgres)
	// 执行数据库表初始化
	if err := core.stores().Install(); err != nil {
		panic(err)
	}
	fmt.Println("setupSqlStore done")
}

func (s *Core) Cfg() CoreConfig {
	return s.cfg
}

func (s *Core) Store() *sqlstore.Provider {
	return s.stores()
}

func (s *Core) HttpEngine() *gin.Engine {
	return s.httpEngine
}

func (s *Core) Hub() *socket.Hub {
	return s.hub
}
