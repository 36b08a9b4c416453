package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/winco-group/attendance-backend-go/internal/config"
	appHTTP "github.com/winco-group/attendance-backend-go/internal/handler/http"
	"github.com/winco-group/attendance-backend-go/internal/pkg/cron"
	"github.com/winco-group/attendance-backend-go/internal/pkg/database"
	"github.com/winco-group/attendance-backend-go/internal/pkg/device"
	"github.com/winco-group/attendance-backend-go/internal/pkg/email"
	"github.com/winco-group/attendance-backend-go/internal/pkg/jwt"
	"github.com/winco-group/attendance-backend-go/internal/pkg/oauth"
	"github.com/winco-group/attendance-backend-go/internal/pkg/sse"
	"github.com/winco-group/attendance-backend-go/internal/repository/postgresql"
	anomalyService "github.com/winco-group/attendance-backend-go/internal/service/anomaly"
	serviceAuth "github.com/winco-group/attendance-backend-go/internal/service/auth"
	checkinService "github.com/winco-group/attendance-backend-go/internal/service/checkin"
	devicesyncService "github.com/winco-group/attendance-backend-go/internal/service/devicesync"
	notificationService "github.com/winco-group/attendance-backend-go/internal/service/notification"
	overtimeService "github.com/winco-group/attendance-backend-go/internal/service/overtime"
	"github.com/winco-group/attendance-backend-go/internal/service/reconcile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	workSiteRepo := postgresql.NewWorkSiteRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	runLogRepo := postgresql.NewRunLogRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}
	hub := sse.NewHub()

	notifier := notificationService.NewNotificationService(emailService, hub, employeeRepo, cfg.App.HREmails)
	runner := reconcile.NewRunner(db, punchRepo, shiftRepo, attendanceRepo, runLogRepo, notifier, hub, reconcile.Config{
		DedupWindow: time.Duration(cfg.Reconcile.DedupWindowSeconds) * time.Second,
		Workers:     cfg.Reconcile.Workers,
		WindowDays:  cfg.Reconcile.WindowDays,
		Policy:      reconcile.Policy(cfg.Reconcile.ClassifyPolicy),
	})

	connectors := make([]device.Connector, 0, len(cfg.Devices.Gateways))
	for _, gateway := range cfg.Devices.Gateways {
		connectors = append(connectors, device.NewZKTecoGateway(gateway, cfg.Devices.APIKey))
	}
	syncService := devicesyncService.NewSyncService(connectors, punchRepo, employeeRepo)

	authSvc := serviceAuth.NewAuthService(employeeRepo, JWTService, GoogleService)
	checkinSvc := checkinService.NewCheckinService(punchRepo, employeeRepo, workSiteRepo)
	overtimeSvc := overtimeService.NewOvertimeService(attendanceRepo, punchRepo, shiftRepo)
	anomalySvc := anomalyService.NewAnomalyService(attendanceRepo, notifier)

	scheduler := cron.NewScheduler()
	cron.RegisterJobs(scheduler, syncService, runner, overtimeSvc, anomalySvc)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(authSvc, JWTService)
	checkinHandler := appHTTP.NewCheckinHandler(checkinSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceRepo, overtimeSvc)
	reconciliationHandler := appHTTP.NewReconciliationHandler(runner, runLogRepo)
	sseHandler := appHTTP.NewSSEHandler(hub, JWTService)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		authHandler,
		checkinHandler,
		attendanceHandler,
		reconciliationHandler,
		sseHandler,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
}
