package main

import (
    "context"
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/campuskit/hall-booking/internal/config"
    "github.com/campuskit/hall-booking/internal/database"
    "github.com/campuskit/hall-booking/internal/database/migrations"
    "github.com/campuskit/hall-booking/internal/handler"
    "github.com/campuskit/hall-booking/internal/middleware"
    "github.com/campuskit/hall-booking/internal/notifier"
    "github.com/campuskit/hall-booking/internal/queue"
    "github.com/campuskit/hall-booking/internal/repository"
    "github.com/campuskit/hall-booking/internal/router"
    "github.com/campuskit/hall-booking/internal/service"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer func() { _ = db.Close() }()

    if err := migrations.Apply(context.Background(), db); err != nil {
        log.Fatalf("migrations: %v", err)
    }

    // Redis is optional: a nil client disables rate limiting and caching.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable; rate limiting and response cache disabled")
    }

    // Repositories and the transaction runner.
    txRunner := repository.NewTxRunner(db)
    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    halls := repository.NewHallRepo(db)
    events := repository.NewEventRepo(db)
    regs := repository.NewRegistrationRepo(db)
    requests := repository.NewExchangeRepo(db)

    // Services.
    booking := service.NewBookingService(txRunner, events, halls, requests)
    registrations := service.NewRegistrationService(txRunner, events, regs)
    exchange := service.NewExchangeService(txRunner, events, requests, users, queue.NewPublisher())

    // Notification consumer: audit log always, email when configured.
    var mailer queue.Mailer
    if m := notifier.New(cfg.MailAPIKey, cfg.MailFromName, cfg.MailFromEmail); m != nil {
        mailer = m
    }
    go func() {
        if err := queue.StartNotificationConsumer(mailer); err != nil {
            log.Printf("notification consumer stopped: %v", err)
        }
    }()

    e := echo.New()
    e.HideBanner = true
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    authH := handler.NewAuthHandler(cfg, users, tokens)
    publicH := &handler.PublicHandler{Halls: halls, Events: events, Regs: regs, Booking: booking}
    organizerH := handler.NewOrganizerHandler(booking, exchange, events, regs, requests, users)
    studentH := handler.NewStudentHandler(registrations, events, regs, users)
    principalH := handler.NewPrincipalHandler(booking, events)
    supportH := handler.NewSupportHandler(booking, events)

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterPublic(e, publicH, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
    router.RegisterOrganizer(e, organizerH, cfg.JWTSecret)
    router.RegisterStudent(e, studentH, cfg.JWTSecret)
    router.RegisterPrincipal(e, principalH, cfg.JWTSecret)
    router.RegisterSupport(e, supportH, cfg.JWTSecret)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
