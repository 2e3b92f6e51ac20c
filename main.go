package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"travelapp/internal/alert"
	intconfig "travelapp/internal/config"
	"travelapp/internal/domain/models"
	"travelapp/internal/gateway"
	router "travelapp/internal/http"
	h "travelapp/internal/http/handlers"
	"travelapp/internal/metrics"
	"travelapp/internal/repositories"
	"travelapp/internal/services"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	if env.MidtransServerKey == "" {
		log.Println("warning: MIDTRANS_SERVER_KEY kosong, pembuatan token dan verifikasi notifikasi akan gagal")
	}
	if env.SkipSignature {
		log.Println("warning: MIDTRANS_SKIP_SIGNATURE aktif, signature notifikasi tidak diperiksa")
	}

	db := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repositories.EnsureSchema(schemaCtx, db); err != nil {
		log.Fatalf("Gagal menyiapkan skema: %v", err)
	}
	cancelSchema()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	alerts, closeAlerts := buildAlerter(env, m)
	defer closeAlerts()

	app := buildApp(env, db, m, alerts)

	// Router (Gin engine)
	r := router.NewRouter(env, app, m)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server berjalan di http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Gagal menjalankan server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Mematikan server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown server gagal: %v", err)
	}

	log.Println("Server berhenti dengan aman.")
}

// buildAlerter always logs alerts and adds Kafka and Telegram when configured.
func buildAlerter(env intconfig.Env, m *metrics.Metrics) (alert.Alerter, func()) {
	fan := alert.Fanout{Channels: []alert.Alerter{alert.Log{}}, OnRaise: m.ObserveAlert}
	closers := []func() error{}

	if brokers := alert.ParseBrokers(env.KafkaBrokers); len(brokers) > 0 {
		w := alert.NewKafkaWriter(brokers, env.KafkaAlertTopic)
		fan.Channels = append(fan.Channels, alert.Kafka{Writer: w})
		closers = append(closers, w.Close)
		log.Printf("Alert kafka aktif: topic=%s brokers=%v", env.KafkaAlertTopic, brokers)
	}

	if env.TelegramToken != "" && env.TelegramChatID != 0 {
		tg, err := alert.NewTelegram(env.TelegramToken, env.TelegramChatID)
		if err != nil {
			log.Printf("warning: telegram alert tidak aktif: %v", err)
		} else {
			fan.Channels = append(fan.Channels, tg)
			log.Println("Alert telegram aktif")
		}
	}

	return fan, func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.Printf("warning: gagal menutup alert channel: %v", err)
			}
		}
	}
}

func buildApp(env intconfig.Env, db *sql.DB, m *metrics.Metrics, alerts alert.Alerter) *h.App {
	snap := gateway.NewSnapClient(env.MidtransBaseURL, env.MidtransServerKey, env.GatewayTimeout)
	snap.Observe = m.ObserveGateway

	catalog := repositories.CatalogRepository{DB: db}
	orderRepo := repositories.OrderRepository{DB: db}
	pricing := services.PricingService{Catalog: catalog}
	orders := services.OrderService{Orders: orderRepo}

	return &h.App{
		JWTSecret:     []byte(env.JWTSecret),
		ServerKey:     env.MidtransServerKey,
		SkipSignature: env.SkipSignature,

		Users:   repositories.UserRepository{DB: db},
		Catalog: catalog,
		Pricing: pricing,
		Checkout: services.CheckoutService{
			Gateway:     snap,
			Pricing:     pricing,
			MinLeadDays: env.MinLeadDays,
		},
		Payments: services.NewPaymentAdapter(env.MidtransSnapScriptURL, env.MidtransClientKey),
		Reconcile: services.ReconcileService{
			Orders:        orderRepo,
			Notifications: repositories.NotificationRepository{DB: db},
			Alerts:        alerts,
			Observe:       func(s models.ReconcileState) { m.ObserveReconcile(string(s)) },
		},
		Orders:    orders,
		Summary:   services.SummaryService{Catalog: catalog},
		Docs:      services.DocsService{Orders: orders, Catalog: catalog},
		Dashboard: services.DashboardService{Reader: repositories.StatsRepository{DB: db}},
		Export:    services.ExportService{Orders: orderRepo},
	}
}
