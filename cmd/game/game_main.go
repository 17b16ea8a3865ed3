package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"go.uber.org/zap"

	allianceapp "IslandKingdoms/internal/alliance/app"
	alliancemongo "IslandKingdoms/internal/alliance/infra/persistence/mongodb"
	alliancehandler "IslandKingdoms/internal/alliance/interfaces/handler"
	cityapp "IslandKingdoms/internal/city/app"
	citymongo "IslandKingdoms/internal/city/infra/persistence/mongodb"
	cityhandler "IslandKingdoms/internal/city/interfaces/handler"
	movementapp "IslandKingdoms/internal/movement/app"
	movementmongo "IslandKingdoms/internal/movement/infra/persistence/mongodb"
	movementhandler "IslandKingdoms/internal/movement/interfaces/handler"
	"IslandKingdoms/internal/shared/cache"
	"IslandKingdoms/internal/shared/gameconfig/building"
	"IslandKingdoms/internal/shared/gameconfig/god"
	"IslandKingdoms/internal/shared/gameconfig/research"
	"IslandKingdoms/internal/shared/gameconfig/unit"
	"IslandKingdoms/internal/shared/gameconfig/wonder"
	mongokit "IslandKingdoms/internal/shared/infrastructure/mongo"
	"IslandKingdoms/internal/shared/logs"
	"IslandKingdoms/internal/shared/observer"
	"IslandKingdoms/internal/shared/serverconfig"
	transporthttp "IslandKingdoms/internal/shared/transport/http"
	"IslandKingdoms/internal/shared/transport/http/middleware"
	transportws "IslandKingdoms/internal/shared/transport/ws"
	"IslandKingdoms/internal/shared/utils"
	tradeapp "IslandKingdoms/internal/trade/app"
	trademongo "IslandKingdoms/internal/trade/infra/persistence/mongodb"
	tradehandler "IslandKingdoms/internal/trade/interfaces/handler"
	worldapp "IslandKingdoms/internal/world/app"
	worldmongo "IslandKingdoms/internal/world/infra/persistence/mongodb"
	worldhandler "IslandKingdoms/internal/world/interfaces/handler"
	"IslandKingdoms/modules/kit/logx"
)

// 走快照推送的集合，每个集合一条 change stream。
var watchedCollections = []string{"city", "movement", "trade_offer", "alliance", "world", "slot"}

func main() {
	serverconfig.Load()
	if err := logs.Init("game", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))

	// 加载数值表
	dataDir := serverconfig.Conf.Logic.JSONData
	building.Load(dataDir)
	unit.Load(dataDir)
	research.Load(dataDir)
	god.Load(dataDir)
	wonder.Load(dataDir)

	client, err := mongokit.Open(serverconfig.Conf.MongoDB, logs.Logger())
	if err != nil {
		logs.Fatal("open mongodb failed", zap.Error(err))
	}
	db := client.Database(serverconfig.Conf.MongoDB.Database)
	tx := mongokit.NewTxRunner(client)

	log := logx.NewZapLogger(logs.Logger())
	clock := utils.SystemClock{}
	hub := observer.NewHub()

	idGen, err := utils.NewIDGen(int64(serverconfig.Conf.Logic.ServerID))
	if err != nil {
		logs.Fatal("init id generator failed", zap.Error(err))
	}

	cityRepo := citymongo.NewCityRepository(db)
	movementRepo := movementmongo.NewMovementRepository(db)
	reinforcementRepo := movementmongo.NewReinforcementRepository(db)
	offerRepo := trademongo.NewOfferRepository(db)
	allianceRepo := alliancemongo.NewAllianceRepository(db)
	slotRepo := worldmongo.NewSlotRepository(db)
	worldRepo := worldmongo.NewWorldRepository(db)

	citySvc := cityapp.NewCityService(cityRepo, tx, clock, idGen.NextID, log, hub,
		cityapp.Tables{Buildings: building.Conf, Units: unit.Conf, Research: research.Conf, Gods: god.Conf},
		serverconfig.Conf.Logic.InstantBuild)
	worldSvc := worldapp.NewWorldService(slotRepo, worldRepo, cityRepo, tx, clock, idGen.NextID,
		cache.NewTTLCache(serverconfig.Conf.Logic.CacheTTL, clock), log, hub,
		int64(serverconfig.Conf.Logic.ServerID), serverconfig.Conf.Logic.SlotClaimRetry)
	dispatchSvc := movementapp.NewDispatchService(movementRepo, reinforcementRepo, cityRepo, worldSvc,
		tx, clock, idGen.NextID, log, hub,
		movementapp.Tables{Units: unit.Conf, Buildings: building.Conf, Gods: god.Conf},
		serverconfig.Conf.Logic.WorldSpeed, rand.Float64)
	tradeSvc := tradeapp.NewTradeService(offerRepo, cityRepo, tx, clock, shortuuid.New, log, hub,
		tradeapp.Tables{Buildings: building.Conf, Gods: god.Conf})
	wonderSvc := allianceapp.NewWonderService(allianceRepo, cityRepo, tx, clock, log, hub,
		allianceapp.Tables{Buildings: building.Conf, Gods: god.Conf, Wonder: wonder.Conf})

	host := serverconfig.Conf.GameServer.Host
	if host == "" {
		host = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", host, serverconfig.Conf.GameServer.Port)

	server := transporthttp.NewHttpServer(addr, nil, log)
	gateway := transportws.NewGateway(hub, log)
	server.Group().GET("/ws", gateway.Handle)

	api := server.Group().Group("/api", middleware.Auth())
	cityhandler.NewCity(citySvc, log).RegisterRoutes(api)
	movementhandler.NewMovement(dispatchSvc, log).RegisterRoutes(api)
	tradehandler.NewTrade(tradeSvc, log).RegisterRoutes(api)
	alliancehandler.NewAlliance(wonderSvc, log).RegisterRoutes(api)
	worldhandler.NewWorld(worldSvc, log).RegisterRoutes(api)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher := mongokit.NewWatcher(db, hub, logs.Logger())
	for _, col := range watchedCollections {
		go func(col string) {
			if err := watcher.Watch(ctx, col); err != nil && !errors.Is(err, context.Canceled) {
				logs.Error("change stream stopped", zap.String("collection", col), zap.Error(err))
			}
		}(col)
	}

	errCh := make(chan error, 1)
	go func() {
		logs.Info("game http server started", zap.String("addr", addr))
		if err := server.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("game http serve failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logs.Error("http server shutdown", zap.Error(err))
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logs.Error("mongodb disconnect", zap.Error(err))
	}
}
