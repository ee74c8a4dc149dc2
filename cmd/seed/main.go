// Command seed loads the DevConnect demo content and optional fake members.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"devconnect/internal/bootstrap"
	"devconnect/internal/config"
	"devconnect/internal/middleware"
	"devconnect/internal/database"
	"devconnect/internal/seed"
)

func main() {
	fake := flag.Int("fake", 0, "Number of generated members to add (each gets posts and projects)")
	fakeSeed := flag.Int64("seed", 0, "Random seed for generated members (0 = random)")
	dump := flag.String("dump", "", "Write the demo content manifest as YAML to this path ('-' for stdout)")
	skipDemo := flag.Bool("skip-demo", false, "Do not load the demo content")
	flag.Parse()

	log.Println("🌱 DevConnect Seeder")

	if *dump != "" {
		if err := writeManifest(*dump); err != nil {
			log.Fatalf("❌ Manifest dump failed: %v", err)
		}
		log.Printf("Manifest written to %s", *dump)
		if *fake == 0 && *skipDemo {
			return
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	middleware.InitLogger(cfg.Env)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := bootstrap.SeedDemo(cfg, db, bootstrap.Options{SeedDemo: !*skipDemo}); err != nil {
		log.Fatalf("❌ %v", err)
	}

	if *fake > 0 {
		members, err := seed.NewFactory(db, *fakeSeed).Members(context.Background(), *fake, cfg.SeedDemoPassword)
		if err != nil {
			log.Fatalf("❌ Fake member seeding failed: %v", err)
		}
		log.Printf("Created %d fake members", len(members))
	}

	password := cfg.SeedDemoPassword
	if password == "" {
		password = seed.DefaultDemoPassword
	}
	log.Println("✨ All done!")
	log.Printf("📧 Seeded users have the password: %s", password)
}

func writeManifest(path string) error {
	if path == "-" {
		return seed.WriteManifest(os.Stdout, seed.Demo)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := seed.WriteManifest(f, seed.Demo); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
