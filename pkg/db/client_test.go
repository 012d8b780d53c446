package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/prasetyoadi/umkm-storefront/pkg/config"
	"gorm.io/gorm"
)

func TestNewRequiresPath(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{}, nil); err == nil {
		t.Fatal("expected error for missing db path")
	}
}

func TestNewOpensAndPings(t *testing.T) {
	cfg := config.DBConfig{
		Path:         filepath.Join(t.TempDir(), "catalog.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}

	client, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error opening sqlite: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	if client.DB() == nil {
		t.Fatal("expected gorm connection")
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	cfg := config.DBConfig{Path: filepath.Join(t.TempDir(), "catalog.db")}
	client, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error opening sqlite: %v", err)
	}
	defer client.Close()

	if err := client.DB().Exec("CREATE TABLE t (id INTEGER PRIMARY KEY)").Error; err != nil {
		t.Fatalf("create table: %v", err)
	}

	wantErr := context.Canceled
	err = client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("expected fn error back, got %v", err)
	}
}
