package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/configs"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/adapter/cache"
	httpadapter "github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/adapter/http"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/adapter/http/middleware"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/adapter/kafka"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/adapter/queue"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/adapter/repo"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/cart"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/logging"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	log := logging.New("app")

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, nil, err
	}

	log.Info("booking-api starting up")

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	// init rabbitmq
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}
	producer, err := queue.NewRabbitProducer(ch)
	if err != nil {
		return nil, nil, err
	}

	// infra
	orderRepo := repo.NewMySQLOrderRepo(db)
	catalogRepo := repo.NewMySQLCatalogRepo(db)
	eventLog := repo.NewMySQLEventLogRepo(db)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	statusCache := cache.NewRedisStatusCache(rdb, cfg.StatusCache.TTL)
	gateStore := cache.NewRedisGate(rdb, cfg.Session.TTL)
	stash := cache.NewRedisSessionStash(rdb, cfg.Session.TTL)
	carts := func(sessionID string) *cart.Store {
		return cart.NewStore(cache.NewRedisCartSnapshot(rdb, sessionID, cfg.Session.TTL))
	}

	// use cases
	submitUC := usecase.NewSubmitOrder(orderRepo, idem, producer)
	statusUC := usecase.NewUpdateOrderStatus(orderRepo, statusCache, producer)
	statusQuery := usecase.NewOrderStatus(orderRepo, statusCache)
	reportUC := usecase.NewOrderReport(orderRepo)

	// admin notification consumer
	setupQueue(ch, eventLog)

	// back-office payment review listener
	setupKafkaListener(cfg, statusUC)

	// handlers + router + middleware
	cartH := httpadapter.NewCartHandler(carts, catalogRepo, gateStore)
	orderH := httpadapter.NewOrderHandler(submitUC, statusQuery, carts, stash, gateStore)
	funnelH := httpadapter.NewFunnelHandler(carts, stash, gateStore)
	adminH := httpadapter.NewAdminHandler(statusUC, reportUC)
	tokenH := httpadapter.NewTokenHandler(cfg)
	authz := middleware.NewAuthz(cfg)
	router := httpadapter.NewRouter(cartH, orderH, funnelH, adminH, tokenH, authz)

	cleanup := func() {
		_ = db.Close()
		_ = rdb.Close()
		_ = ch.Close()
		_ = conn.Close()
	}

	return &App{Router: router}, cleanup, nil
}

func setupQueue(ch *amqp091.Channel, eventLog *repo.MySQLEventLogRepo) {
	n := queue.NewAdminNotifier(eventLog)

	router := queue.NewRouter(ch, queue.WithPrefetch(50))
	router.Register(queue.SubmittedQueue, queue.JSONHandler[usecase.OrderSubmittedMsg]{HandleFunc: n.HandleSubmitted})
	router.Register(queue.StatusQueue, queue.JSONHandler[usecase.OrderStatusChangedMsg]{HandleFunc: n.HandleStatusChanged})

	if err := router.Start(); err != nil {
		panic(err)
	}
}

func setupKafkaListener(cfg configs.Config, statusUC *usecase.UpdateOrderStatus) {
	if len(cfg.Kafka.Brokers) == 0 {
		return
	}
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		panic(err)
	}

	h := kafka.NewPaymentReviewedHandler(statusUC)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.Topic}, h.Handle)
	consumer.Logger = logging.New("kafka")

	go func() {
		if err := consumer.Start(context.Background()); err != nil {
			logging.Base().Error("payment review consumer stopped", "err", err)
		}
	}()
}
