package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookVisitHandler "github.com/visitas-angelim/booking-service/internal/api/handlers/book_visit"
	cancelVisitHandler "github.com/visitas-angelim/booking-service/internal/api/handlers/cancel_visit"
	createLeadHandler "github.com/visitas-angelim/booking-service/internal/api/handlers/create_lead"
	createSlotHandler "github.com/visitas-angelim/booking-service/internal/api/handlers/create_slot"
	deleteSlotHandler "github.com/visitas-angelim/booking-service/internal/api/handlers/delete_slot"
	getAvailableSlotsHandler "github.com/visitas-angelim/booking-service/internal/api/handlers/get_available_slots"
	getLeadHandler "github.com/visitas-angelim/booking-service/internal/api/handlers/get_lead"
	getVisitHandler "github.com/visitas-angelim/booking-service/internal/api/handlers/get_visit"
	listLeadsHandler "github.com/visitas-angelim/booking-service/internal/api/handlers/list_leads"
	listSlotsHandler "github.com/visitas-angelim/booking-service/internal/api/handlers/list_slots"
	listUnitsHandler "github.com/visitas-angelim/booking-service/internal/api/handlers/list_units"
	listVisitsHandler "github.com/visitas-angelim/booking-service/internal/api/handlers/list_visits"
	updateLeadHandler "github.com/visitas-angelim/booking-service/internal/api/handlers/update_lead"
	updateSlotHandler "github.com/visitas-angelim/booking-service/internal/api/handlers/update_slot"
	updateVisitStatusHandler "github.com/visitas-angelim/booking-service/internal/api/handlers/update_visit_status"
	"github.com/visitas-angelim/booking-service/internal/api/middleware"
	"github.com/visitas-angelim/booking-service/internal/config"
	leadRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/lead"
	outboxRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/outbox"
	slotRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/slot"
	unitRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/unit"
	visitRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/visit"
	eventsRepo "github.com/visitas-angelim/booking-service/internal/infra/storage/visitevents"
	"github.com/visitas-angelim/booking-service/internal/integrations/mailer"
	leadsService "github.com/visitas-angelim/booking-service/internal/service/leads"
	slotsService "github.com/visitas-angelim/booking-service/internal/service/slots"
	unitsService "github.com/visitas-angelim/booking-service/internal/service/units"
	visitsService "github.com/visitas-angelim/booking-service/internal/service/visits"
	bookVisitUC "github.com/visitas-angelim/booking-service/internal/usecase/book_visit"
	sendRemindersUC "github.com/visitas-angelim/booking-service/internal/usecase/send_reminders"
	syncLeadUC "github.com/visitas-angelim/booking-service/internal/usecase/sync_lead"
	outboxWorker "github.com/visitas-angelim/booking-service/internal/worker/outbox"
	remindersWorker "github.com/visitas-angelim/booking-service/internal/worker/reminders"
	eventsWorker "github.com/visitas-angelim/booking-service/internal/worker/visitevents"
	"github.com/visitas-angelim/booking-service/pkg/logger"
	"github.com/visitas-angelim/booking-service/pkg/metrics"
	"github.com/visitas-angelim/booking-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting visit booking service...")

	// Таймзона для границ суток напоминаний
	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Scheduler.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории и менеджер транзакций
	visitRepository := visitRepo.NewRepository(db)
	slotRepository := slotRepo.NewRepository(db)
	leadRepository := leadRepo.NewRepository(db)
	unitRepository := unitRepo.NewRepository(db)
	outboxRepository := outboxRepo.NewRepository(db)
	eventsRepository := eventsRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Почтовый шлюз: SMTP в проде, лог в локальной разработке
	var gateway interface {
		SendConfirmation(ctx context.Context, email mailer.VisitEmail) error
		SendReminder(ctx context.Context, email mailer.VisitEmail) error
	}
	if cfg.SMTP.Enabled {
		gateway = mailer.NewSMTPGateway(
			cfg.SMTP.Host, cfg.SMTP.Port,
			cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From,
			log,
		)
		log.Info("SMTP mail gateway initialized (host=%s, port=%d)", cfg.SMTP.Host, cfg.SMTP.Port)
	} else {
		gateway = mailer.NewLogGateway(log)
		log.Info("Log mail gateway initialized (SMTP disabled)")
	}

	clock := &sendRemindersUC.RealTimeProvider{}

	// Инициализируем use cases
	bookVisitUseCase := bookVisitUC.NewUseCase(
		slotRepository,
		visitRepository,
		leadRepository,
		unitRepository,
		outboxRepository,
		txMgr,
		log,
	)
	syncLeadUseCase := syncLeadUC.NewUseCase(leadRepository, log)
	sendRemindersUseCase := sendRemindersUC.NewUseCase(
		visitRepository,
		slotRepository,
		unitRepository,
		gateway,
		clock,
		location,
		log,
	)

	// Инициализируем сервисы
	visitsSvc := visitsService.NewService(visitRepository, eventsRepository, txMgr, log)
	leadsSvc := leadsService.NewService(leadRepository, log)
	slotsSvc := slotsService.NewService(slotRepository, visitRepository, unitRepository, txMgr, clock, log)
	unitsSvc := unitsService.NewService(unitRepository, log)

	// Инициализируем handlers
	bookVisit := bookVisitHandler.NewHandler(bookVisitUseCase, metricsCollector, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(slotsSvc, log)
	listUnits := listUnitsHandler.NewHandler(unitsSvc, log)
	getVisit := getVisitHandler.NewHandler(visitsSvc, log)
	listVisits := listVisitsHandler.NewHandler(visitsSvc, log)
	updateVisitStatus := updateVisitStatusHandler.NewHandler(visitsSvc, log)
	cancelVisit := cancelVisitHandler.NewHandler(visitsSvc, log)
	createSlot := createSlotHandler.NewHandler(slotsSvc, log)
	updateSlot := updateSlotHandler.NewHandler(slotsSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotsSvc, log)
	listSlots := listSlotsHandler.NewHandler(slotsSvc, log)
	createLead := createLeadHandler.NewHandler(leadsSvc, log)
	getLead := getLeadHandler.NewHandler(leadsSvc, log)
	updateLead := updateLeadHandler.NewHandler(leadsSvc, log)
	listLeads := listLeadsHandler.NewHandler(leadsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (форма записи на сайте)
	// ============================================================

	api.HandleFunc("/visits/book", bookVisit.Handle).Methods(http.MethodPost)
	api.HandleFunc("/units", listUnits.Handle).Methods(http.MethodGet)
	api.HandleFunc("/units/{unitId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// OPERATOR ROUTES (требуют X-Operator-ID header)
	// ============================================================

	operator := api.PathPrefix("").Subrouter()
	operator.Use(middleware.OperatorAuth(log))

	// --- Визиты ---
	operator.HandleFunc("/visits", listVisits.Handle).Methods(http.MethodGet)
	operator.HandleFunc("/visits/{visitId}", getVisit.Handle).Methods(http.MethodGet)
	operator.HandleFunc("/visits/{visitId}/status", updateVisitStatus.Handle).Methods(http.MethodPatch)
	operator.HandleFunc("/visits/{visitId}/cancel", cancelVisit.Handle).Methods(http.MethodPost)

	// --- Слоты доступности ---
	operator.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)
	operator.HandleFunc("/slots", listSlots.Handle).Methods(http.MethodGet)
	operator.HandleFunc("/slots/{slotId}", updateSlot.Handle).Methods(http.MethodPatch)
	operator.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

	// --- Лиды ---
	operator.HandleFunc("/leads", createLead.Handle).Methods(http.MethodPost)
	operator.HandleFunc("/leads", listLeads.Handle).Methods(http.MethodGet)
	operator.HandleFunc("/leads/{leadId}", getLead.Handle).Methods(http.MethodGet)
	operator.HandleFunc("/leads/{leadId}", updateLead.Handle).Methods(http.MethodPatch)

	// Запускаем фоновые воркеры
	workerCtx, stopWorkers := context.WithCancel(context.Background())

	outboxW := outboxWorker.NewWorker(
		outboxRepository,
		gateway,
		metricsCollector,
		log,
		time.Duration(cfg.Scheduler.OutboxInterval)*time.Second,
		cfg.Scheduler.BatchSize,
		cfg.Scheduler.MaxSendAttempts,
	)
	eventsW := eventsWorker.NewWorker(
		eventsRepository,
		syncLeadUseCase,
		metricsCollector,
		log,
		time.Duration(cfg.Scheduler.EventsInterval)*time.Second,
		cfg.Scheduler.BatchSize,
	)
	remindersW := remindersWorker.NewWorker(
		sendRemindersUseCase,
		metricsCollector,
		log,
		location,
		cfg.Scheduler.ReminderHour,
	)

	go outboxW.Run(workerCtx)
	go eventsW.Run(workerCtx)
	go remindersW.Run(workerCtx)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopWorkers()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
