package main

import (
	"context"
	"flag"
	"log"

	"permsync/config"
	"permsync/database"
	"permsync/reconcile"
	"permsync/snapshot"
	"permsync/web"
)

func main() {
	addr := flag.String("addr", "", "Listen address (overrides LISTEN_ADDR)")
	flag.Parse()

	cfg := config.LoadEnvConfig("settings.env")
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	service := reconcile.NewService(db, snapshot.NewCache(db))
	server := web.NewServer(service, cfg.ListenAddr)

	log.Printf("Starting web interface at http://localhost%s", cfg.ListenAddr)
	if err := server.Start(); err != nil {
		log.Fatalf("Web server error: %v", err)
	}
}
