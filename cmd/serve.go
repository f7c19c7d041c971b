package cmd

import (
	"context"
	"net"
	"time"

	"github.com/vibast-solutions/ms-go-records/app/controller"
	recordsgrpc "github.com/vibast-solutions/ms-go-records/app/grpc"
	"github.com/vibast-solutions/ms-go-records/app/metrics"
	"github.com/vibast-solutions/ms-go-records/app/middleware"
	"github.com/vibast-solutions/ms-go-records/config"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers",
	Long:  `Start both HTTP (Echo) and gRPC servers for the records service.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	s, err := newServices(ctx, cfg)
	cancel()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer s.Close()

	go startGRPCServer(cfg, s)

	startHTTPServer(cfg, s)
}

func startHTTPServer(cfg *config.Config, s *services) {
	e := echo.New()
	defer e.Close()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RecordMetrics)

	keyController := controller.NewKeyController(s.keys)
	userController := controller.NewUserController(s.users)
	balanceController := controller.NewBalanceController(s.balances)
	apiKeyMiddleware := middleware.NewAPIKeyMiddleware(s.keys)

	e.GET("/health", controller.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	e.POST("/key", keyController.IssueKey, issueRateLimiter(cfg.Keys.IssueRatePerMinute)...)
	e.GET("/key", keyController.ValidateKey)

	users := e.Group("/users", apiKeyMiddleware.RequireAPIKey)
	users.POST("", userController.CreateUser)
	users.GET("", userController.ListUsers)
	users.GET("/:id", userController.GetUser)
	users.PATCH("/:id", userController.UpdateUser)
	users.DELETE("/:id", userController.DeleteUser)

	balances := e.Group("/balances", apiKeyMiddleware.RequireAPIKey)
	balances.POST("", balanceController.CreateBalance)
	balances.GET("", balanceController.ListBalances)
	balances.GET("/:id", balanceController.GetBalance)
	balances.PATCH("/:id", balanceController.UpdateBalance)
	balances.DELETE("/:id", balanceController.DeleteBalance)

	httpAddr := net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort)
	logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
	if err := e.Start(httpAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}

// issueRateLimiter limits key issuance per client IP. A non-positive rate
// disables the limit.
func issueRateLimiter(perMinute int) []echo.MiddlewareFunc {
	if perMinute <= 0 {
		return nil
	}

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / 60),
		Burst:     perMinute,
		ExpiresIn: 3 * time.Minute,
	})

	return []echo.MiddlewareFunc{echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
	})}
}

func startGRPCServer(cfg *config.Config, s *services) {
	grpcAddr := net.JoinHostPort(cfg.GRPCHost, cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to listen on gRPC port")
	}

	grpcServer := grpc.NewServer(
		grpc.ForceServerCodec(recordsgrpc.Codec()),
		grpc.UnaryInterceptor(recordsgrpc.APIKeyUnaryInterceptor(s.keys)),
	)
	defer grpcServer.GracefulStop()
	recordsServer := recordsgrpc.NewRecordsServer(s.keys, s.users, s.balances)
	recordsgrpc.RegisterRecordsServiceServer(grpcServer, recordsServer)

	logrus.WithField("addr", grpcAddr).Info("Starting gRPC server")
	if err := grpcServer.Serve(lis); err != nil {
		logrus.WithError(err).Fatal("Failed to start gRPC server")
	}
}
