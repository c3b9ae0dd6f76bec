package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	authservice "github.com/ArtemkaGoldMan/estate-hub-sub001/internal/auth/service"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/config"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/db"
	healthhandler "github.com/ArtemkaGoldMan/estate-hub-sub001/internal/health/handler"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/httpapi"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/mail"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/security"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/server"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/server/interceptors"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/store"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/telemetry/otel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	ctx := context.Background()

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "estatehub-auth", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("otel: %v", err)
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	codec := security.NewTokenCodec([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL())
	hasher := security.NewHasher(cfg.BcryptCost)

	var mailer mail.Sender
	if cfg.SMTPHost != "" {
		smtp, err := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.AppURL)
		if err != nil {
			log.Fatalf("mail: %v", err)
		}
		mailer = smtp
	} else {
		log.Println("SMTP_HOST is empty; outbound mail is logged instead of sent")
		mailer = mail.NewLogSender()
	}

	authSvc := authservice.NewAuthService(store.New(conn), codec, hasher, mailer, cfg.RequireEmailConfirmation)

	// HTTP
	restHandler := httpapi.NewHandler(authSvc, codec, cfg.Env == "production")
	mux := httpapi.NewMux(restHandler, healthhandler.New(conn))
	httpSrv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.WithCORS(mux, cfg.CORSOrigins()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http serve: %v", err)
		}
	}()

	// gRPC
	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	defer lis.Close()

	grpcSrv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			interceptors.AuthUnary(codec, server.PublicMethods()),
		),
	)
	server.RegisterServices(grpcSrv, server.Deps{Auth: authSvc})

	go func() {
		log.Printf("gRPC server listening on %s", cfg.GRPCAddr)
		if err := grpcSrv.Serve(lis); err != nil {
			log.Fatalf("grpc serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	grpcSrv.GracefulStop()
	log.Println("servers stopped")
}
