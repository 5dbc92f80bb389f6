package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "lendcircle-backend/internal/adapter/http"
	appmw "lendcircle-backend/internal/adapter/middleware"
	"lendcircle-backend/internal/adapter/notifier"
	"lendcircle-backend/internal/adapter/repository/mysql"
	"lendcircle-backend/internal/config"
	friendshipDomain "lendcircle-backend/internal/domain/friendship"
	loanDomain "lendcircle-backend/internal/domain/loan"
	userDomain "lendcircle-backend/internal/domain/user"
	"lendcircle-backend/internal/event"
	"lendcircle-backend/internal/infrastructure/cache"
	"lendcircle-backend/internal/infrastructure/db"
	friendshipUC "lendcircle-backend/internal/usecase/friendship"
	"lendcircle-backend/internal/usecase/ledger"
	loanUC "lendcircle-backend/internal/usecase/loan"
	"lendcircle-backend/internal/usecase/profile"
	"lendcircle-backend/internal/usecase/trust"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(&userDomain.Profile{}, &loanDomain.Loan{}, &friendshipDomain.Friendship{}); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = rdb.Close() }()

	guow := mysql.NewGormUoW(gdb)
	dispatcher := event.NewDispatcher()
	detach := notifier.NewRedis(rdb, cfg.NotifyChannel).Attach(dispatcher)
	defer detach()

	trustEngine := trust.NewEngine(guow)
	ledgerUC := ledger.NewUsecase(guow)
	profileUC := profile.NewUsecase(guow)
	loansUC := loanUC.NewUsecase(guow, trustEngine, dispatcher)
	friendsUC := friendshipUC.NewUsecase(guow, dispatcher)

	h := httpadp.NewHandler()
	ph := httpadp.NewProfileHandler(profileUC)
	lh := httpadp.NewLoanHandler(loansUC)
	fh := httpadp.NewFriendshipHandler(friendsUC)
	th := httpadp.NewLedgerHandler(ledgerUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idem := appmw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)

	e.POST("/users", ph.SignIn)
	e.GET("/users/me", ph.Me)
	e.GET("/users/:username", ph.Resolve)

	loans := e.Group("/loans", idem)
	loans.POST("", lh.CreateLoan)
	loans.POST("/split", lh.SplitBill)
	loans.GET("", lh.ListLoans)
	loans.GET("/:loan_id", lh.GetLoan)
	loans.GET("/link/:token", lh.GetByShareToken)
	loans.POST("/:loan_id/accept", lh.AcceptLoan)
	loans.POST("/:loan_id/respond", lh.RespondLoan)
	loans.POST("/:loan_id/settle", lh.SettleLoan)

	e.POST("/transfers", th.Transfer, idem)

	friends := e.Group("/friendships", idem)
	friends.POST("", fh.RequestFriend)
	friends.GET("", fh.ListFriends)
	friends.POST("/:friendship_id/respond", fh.RespondFriend)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
