package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/campushq/backend/api/echo"
	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/feedback"
	"github.com/campushq/backend/core/news"
	"github.com/campushq/backend/core/roster"
	"github.com/campushq/backend/core/user"
	emailsvc "github.com/campushq/backend/services/email"
	logsvc "github.com/campushq/backend/services/logger"
	uploadsvc "github.com/campushq/backend/services/upload"
	"github.com/campushq/backend/storage/database"
	"github.com/campushq/backend/storage/database/postgres"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("failed to close database", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(logger, conf)
	}

	files, err := uploadsvc.NewLocalStorage(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up upload storage: %v", err), err)
	}

	transactor := postgres.NewTransactor(db)
	usrRepo := postgres.NewUserRepository(db)
	rosterRepo := postgres.NewRosterRepository(db)

	usrSvc := user.NewService(usrRepo, mailSvc, conf)
	rosterSvc := roster.NewService(transactor, rosterRepo, usrSvc, mailSvc, files, conf)
	feedbackSvc := feedback.NewService(transactor, postgres.NewFeedbackRepository(db), rosterRepo)
	newsSvc := news.NewService(postgres.NewNewsRepository(db))

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(
		&echoapi.Options{
			Address:     conf.ServerAddress(),
			Conf:        conf,
			Logger:      logger,
			UserSvc:     usrSvc,
			RosterSvc:   rosterSvc,
			FeedbackSvc: feedbackSvc,
			NewsSvc:     newsSvc,
			Files:       files,
		},
	)

	go server.Start()

	// =========================================================================
	// Shutdown

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	sig := <-shutdown
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()

	if err = server.Stop(ctx); err != nil {
		logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		return nil, err
	}
	return db, nil
}
