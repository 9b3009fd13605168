// Command seed-admin puts super-admins on the allowlist so the first login
// is possible.
//
// Usage:
//
//	seed-admin <githubId> <githubUsername> [email]
//	seed-admin -file admins.yaml
//	SEED_GITHUB_ID=... SEED_GITHUB_USERNAME=... [SEED_EMAIL=...] seed-admin
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"club-site/database"
	"club-site/internal/domain/admins"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// seed is one allowlist entry as written in the yaml file.
type seed struct {
	GithubID       string `yaml:"github_id"`
	GithubUsername string `yaml:"github_username"`
	Email          string `yaml:"email"`
}

type seedFile struct {
	Admins []seed `yaml:"admins"`
}

func main() {
	file := flag.String("file", "", "yaml file with an admins list")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	seeds, err := loadSeeds(flag.Args(), *file, os.Getenv)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	db := database.MustInit(os.Getenv("DB_URL"))
	added, err := seedAdmins(db, seeds)
	if err != nil {
		log.Fatalf("❌ Failed to seed admins: %v", err)
	}
	log.Printf("✅ %d of %d admins added (existing entries left untouched)", added, len(seeds))
}

func loadSeeds(args []string, file string, getenv func(string) string) ([]seed, error) {
	switch {
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		var f seedFile
		if err := yaml.Unmarshal(b, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		for i, s := range f.Admins {
			if strings.TrimSpace(s.GithubID) == "" || strings.TrimSpace(s.GithubUsername) == "" {
				return nil, fmt.Errorf("%s: entry %d needs github_id and github_username", file, i+1)
			}
		}
		return f.Admins, nil

	case len(args) >= 2:
		s := seed{GithubID: args[0], GithubUsername: args[1]}
		if len(args) > 2 {
			s.Email = args[2]
		}
		return []seed{s}, nil

	case getenv("SEED_GITHUB_ID") != "" && getenv("SEED_GITHUB_USERNAME") != "":
		return []seed{{
			GithubID:       getenv("SEED_GITHUB_ID"),
			GithubUsername: getenv("SEED_GITHUB_USERNAME"),
			Email:          getenv("SEED_EMAIL"),
		}}, nil
	}
	return nil, errors.New("usage: seed-admin <githubId> <githubUsername> [email] | -file admins.yaml")
}

// seedAdmins inserts every seed as a super-admin, skipping GitHub ids that are
// already on the list. It returns how many rows were added.
func seedAdmins(db *gorm.DB, seeds []seed) (int64, error) {
	system := "system"
	rows := make([]admins.AllowedAdmin, 0, len(seeds))
	for _, s := range seeds {
		a := admins.AllowedAdmin{
			GithubID:       strings.TrimSpace(s.GithubID),
			GithubUsername: strings.TrimSpace(s.GithubUsername),
			IsSuperAdmin:   true,
			AddedBy:        &system,
		}
		if e := strings.TrimSpace(s.Email); e != "" {
			a.Email = &e
		}
		rows = append(rows, a)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "github_id"}},
		DoNothing: true,
	}).Create(&rows)
	return res.RowsAffected, res.Error
}
