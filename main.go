package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"permsync/config"
	"permsync/database"
	"permsync/reconcile"
	"permsync/snapshot"
)

// One-shot comparison from the command line. The web interface lives in
// cmd/web.
func main() {
	left := flag.String("left", "", "Comma-separated source domain ids")
	right := flag.String("right", "", "Target domain id")
	filter := flag.String("filter", "", "Case-insensitive substring filter on NAME")
	resetDB := flag.Bool("resetdb", false, "Drop and recreate the development database, then exit")
	flag.Parse()

	cfg := config.LoadEnvConfig("settings.env")
	ctx := context.Background()

	if *resetDB {
		if err := database.ResetDatabase(ctx, cfg.ManagementDSN(), cfg.DSN(), cfg.DBName); err != nil {
			log.Fatalf("reset database: %v", err)
		}
		log.Printf("Database %q reset.", cfg.DBName)
		return
	}

	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	service := reconcile.NewService(db, snapshot.NewCache(db))

	if *left == "" || *right == "" {
		domains, err := service.ListDomainOptions(ctx)
		if err != nil {
			log.Fatalf("list domains: %v", err)
		}
		fmt.Println("Usage: permsync -left DOM1,DOM2 -right DOM3 [-filter NAME]")
		fmt.Printf("Available domains: %s\n", strings.Join(domains, ", "))
		return
	}

	rows, err := service.RequestComparison(ctx, strings.Split(*left, ","), *right, *filter)
	if err != nil {
		log.Fatalf("comparison failed: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tNAME\tACTION\tTARGET\tACTION\tSTATUS")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			orDash(row.SourceDomain), row.Name, row.SourceAction,
			orDash(row.TargetDomain), row.TargetAction, row.Status)
	}
	w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
