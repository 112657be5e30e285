package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/everFinance/hodlbank"
	"github.com/everFinance/hodlbank/common"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name: "hodlbank",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db_dir", Value: "./data/bolt", Usage: "bolt db dir path", EnvVars: []string{"DB_DIR"}},
			&cli.StringFlag{Name: "mysql", Value: "root@tcp(127.0.0.1:3306)/hodlbank?charset=utf8mb4&parseTime=True&loc=Local", Usage: "mysql dsn", EnvVars: []string{"MYSQL"}},
			&cli.StringFlag{Name: "sqlite_dir", Value: "./data/sqlite", Usage: "sqlite db dir path", EnvVars: []string{"SQLITE_DIR"}},
			&cli.BoolFlag{Name: "use_sqlite", Value: false, Usage: "run with sqlite instead of mysql", EnvVars: []string{"USE_SQLITE"}},

			&cli.StringFlag{Name: "token_service", Value: "http://127.0.0.1:9090", Usage: "external token service url", EnvVars: []string{"TOKEN_SERVICE"}},
			&cli.StringFlag{Name: "contract_acct", Usage: "account holding the tokens at the token service", EnvVars: []string{"CONTRACT_ACCT"}, Required: true},
			&cli.StringFlag{Name: "admin", Usage: "administrative identity allowed to register symbols", EnvVars: []string{"ADMIN"}, Required: true},
			&cli.StringFlag{Name: "kafka", Value: "", Usage: "kafka uri for the ledger event journal, empty disables", EnvVars: []string{"KAFKA"}},

			&cli.StringFlag{Name: "port", Value: ":8080", EnvVars: []string{"PORT"}},
		},
		Action: run,
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	s := hodlbank.New(
		c.String("db_dir"), c.String("mysql"), c.String("sqlite_dir"), c.Bool("use_sqlite"),
		c.String("token_service"), c.String("contract_acct"), c.String("admin"),
		c.String("kafka"),
	)
	s.Run(c.String("port"))
	common.NewMetricServer()

	<-signals
	s.Close()

	return nil
}
