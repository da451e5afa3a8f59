package main

import (
	"Gin_boardgame_lending_tool/app"
	"Gin_boardgame_lending_tool/config"
	"Gin_boardgame_lending_tool/db"
	"Gin_boardgame_lending_tool/routes"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func serve() {
	application := app.MustNew()
	defer application.Close()

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	routes.RegisterRoutes(r, application)

	// warm the loan snapshot before the cron takes over
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		_ = application.Loans.Refresh(ctx)
	}()
	application.Cron.Start()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	log.Printf("listening on :%s", port)
	_ = r.Run(":" + port)
}

func main() {
	root := &cobra.Command{
		Use:   "lending-tool",
		Short: "Board-game lending kiosk backend",
		Run:   func(cmd *cobra.Command, args []string) { serve() },
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Run:   func(cmd *cobra.Command, args []string) { serve() },
	})

	root.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Reset the catalog to the bundled default games",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn := db.ConnectDB()
			repo := db.NewRepo(conn)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := repo.ResetGames(ctx); err != nil {
				return err
			}
			fmt.Println("catalog reset to defaults")
			return nil
		},
	})

	config.LoadEnv()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
