package main

import (
	"log"
	"os"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/user"
	emailsvc "github.com/campushq/backend/services/email"
	"github.com/campushq/backend/storage/database"
	"github.com/campushq/backend/storage/database/postgres"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	if err := database.CreateIfNotExist(conf); err != nil {
		logger.Fatal(err)
	}
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(err)
	}
	defer db.Close()

	cli := commandLine{
		conf:   conf,
		db:     db,
		usrSvc: user.NewService(postgres.NewUserRepository(db), emailsvc.NewConsoleService(conf), conf),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
