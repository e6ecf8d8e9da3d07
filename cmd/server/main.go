package main

import (
	"context"
	"crypto/rand"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	emailPkg "eventhub/internal/adapters/email"
	web "eventhub/internal/adapters/http"
	"eventhub/internal/adapters/storage"
	accountStore "eventhub/internal/adapters/storage/account"
	eventStore "eventhub/internal/adapters/storage/event"
	registrationStore "eventhub/internal/adapters/storage/registration"
	"eventhub/internal/application/orchestrators"
	"eventhub/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := storage.MigrateDB(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	schemaVersion, err := storage.SchemaVersion(db)
	if err != nil {
		log.Fatalf("failed to read schema version: %v", err)
	}
	log.Printf("Database initialized (schema version %d)", schemaVersion)

	acctStore := accountStore.NewSQLiteStore(db)
	evtStore := eventStore.NewSQLiteStore(db)
	stores := &web.Stores{
		AccountStore:      acctStore,
		EventStore:        evtStore,
		RegistrationStore: registrationStore.NewSQLiteStore(db),
	}

	// Seed dev logins and a sample event outside production
	if !cfg.IsProduction() {
		seedDeps := orchestrators.SeedDevDataDeps{
			AccountStore: acctStore,
			EventStore:   evtStore,
			GenerateID:   func() string { return uuid.New().String() },
			Now:          time.Now,
		}
		if err := orchestrators.ExecuteSeedDevData(context.Background(), seedDeps); err != nil {
			log.Fatalf("failed to seed dev data: %v", err)
		}
	}

	// Configure email sender
	if cfg.ResendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(cfg.ResendKey, cfg.MailFrom), cfg.MailFrom, cfg.MailReplyTo)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), cfg.MailFrom, cfg.MailReplyTo)
		if cfg.IsProduction() {
			log.Println("WARNING: EVENTHUB_RESEND_KEY is not set; message delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop; set EVENTHUB_RESEND_KEY for real delivery)")
		}
	}

	csrfKey := cfg.CSRFKey
	if csrfKey == nil {
		// Development fallback: sessions won't survive a restart.
		csrfKey = make([]byte, 32)
		if _, err := rand.Read(csrfKey); err != nil {
			log.Fatalf("failed to generate CSRF key: %v", err)
		}
		log.Println("WARNING: using random CSRF key. Set EVENTHUB_CSRF_KEY for production.")
	}

	handler := web.NewMux(stores, csrfKey, cfg.IsProduction())

	log.Printf("eventhub %s listening on %s (env=%s)", version, cfg.Addr, cfg.Env)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
