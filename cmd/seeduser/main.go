// cmd/seeduser/main.go — cria/atualiza o usuário admin de demonstração.
// Uso: go run cmd/seeduser/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	path := filepath.Join(dataDir, "app.db")

	email := "admin@crmestofados.com.br"
	password := "1234"
	name := "Admin Demo"
	role := "admin"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatalf("bcrypt error: %v", err)
	}

	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}

	result := db.WithContext(context.Background()).Exec(`
		INSERT INTO users (id, email, name, password_hash, role, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (email) DO UPDATE
		SET password_hash = excluded.password_hash,
		    name = excluded.name,
		    role = excluded.role,
		    active = 1,
		    updated_at = CURRENT_TIMESTAMP
	`, uuid.NewString(), email, name, string(hash), role)

	if result.Error != nil {
		log.Fatalf("insert error: %v", result.Error)
	}
	fmt.Printf("✅ Usuário '%s' criado/atualizado com senha '%s'\n", email, password)
}
