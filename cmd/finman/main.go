package main

import (
	"context"
	"os"

	"finman/internal/auth"
	"finman/internal/backup"
	"finman/internal/cli"
	"finman/internal/log"
	"finman/internal/services"
)

func main() {
	cli.LoadEnvFile()

	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)

	store := cli.InitStore(logger.WithComponent(log.ComponentStorage), cfg.DBPath)
	defer store.Close()

	authSvc := auth.NewService(store)
	txSvc := services.NewTransactionService(store)
	budgetSvc := services.NewBudgetService(store)
	reportSvc := services.NewReportService(store, txSvc)
	backups := backup.NewManager(store.Path(), cfg.BackupDir)

	logger.Info("Store ready", log.FieldPath, cfg.DBPath)

	menu := cli.NewMenu(os.Stdin, os.Stdout, authSvc, txSvc, budgetSvc, reportSvc, backups)
	menu.Run(context.Background())

	logger.Info("Goodbye")
}
