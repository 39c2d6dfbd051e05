package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roastery-be/internal/address"
	"roastery-be/internal/auth"
	"roastery-be/internal/config"
	"roastery-be/internal/db"
	"roastery-be/internal/logger"
	"roastery-be/internal/middleware"
	"roastery-be/internal/order"
	"roastery-be/internal/payment"
	"roastery-be/internal/product"
	"roastery-be/internal/productorder"
	"roastery-be/internal/upload"
	"roastery-be/internal/user"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	codec := auth.NewCodec(cfg.JWTSecret, auth.DefaultTTL)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, codec)

	addressRepo := address.NewRepository(database)
	addressSvc := address.NewService(addressRepo)

	uploader := upload.NewImageKit(cfg.ImageKitKey, cfg.ImageKitUploadURL)
	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, uploader)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	productOrderRepo := productorder.NewRepository(database)
	productOrderSvc := productorder.NewService(productOrderRepo, productRepo, userRepo)

	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	paymentRepo := payment.NewRepository(database)
	paymentSvc := payment.NewService(paymentRepo, gateway, cfg.RazorpayKeySecret)

	gate := middleware.NewGate(codec, userSvc)

	userH := user.NewHandler(userSvc, orderSvc)
	addressH := address.NewHandler(addressSvc)
	productH := product.NewHandler(productSvc)
	orderH := order.NewHandler(orderSvc)
	productOrderH := productorder.NewHandler(productOrderSvc)
	paymentH := payment.NewHandler(paymentSvc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.RateLimit)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Server is running..."))
	})

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(a chi.Router) {
			userH.RegisterPublic(a)

			a.Group(func(g chi.Router) {
				g.Use(gate.RequireUser)
				userH.RegisterUser(g)
				g.Route("/addresses", addressH.Register)
			})

			a.Group(func(g chi.Router) {
				g.Use(gate.RequireAdmin)
				userH.RegisterAdmin(g)
			})
		})

		api.Route("/products", func(p chi.Router) {
			productH.Register(p)

			p.Group(func(g chi.Router) {
				g.Use(gate.RequireAdmin)
				productH.RegisterAdmin(g)
			})
		})

		api.Route("/orders", func(o chi.Router) {
			o.Use(gate.RequireUser)
			orderH.Register(o)
		})

		api.Route("/productorder", func(po chi.Router) {
			po.Group(func(g chi.Router) {
				g.Use(gate.RequireUser)
				productOrderH.Register(g)
			})

			po.Group(func(g chi.Router) {
				g.Use(gate.RequireAdmin)
				productOrderH.RegisterAdminList(g)
			})
		})

		api.Route("/admin", func(a chi.Router) {
			a.Use(gate.RequireAdmin)
			orderH.RegisterAdmin(a)
			productOrderH.RegisterAdmin(a)
		})

		paymentH.Register(api)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.L().Info("HTTP server listening", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L().Fatal("listen failed", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.L().Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
