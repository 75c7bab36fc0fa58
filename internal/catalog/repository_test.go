package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
)

func TestPostgresRepository_List(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer mock.Close()

	created := time.Unix(1700000000, 0).UTC()
	mock.ExpectQuery("SELECT id, name, price, image").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "price", "image", "category", "description", "specs", "featured", "created_at",
		}).
			AddRow("p1", "Oak Bowl", 120.0, "", "bowls", "", []byte(`{"wood":"oak"}`), true, created).
			AddRow("p2", "Spoon", 35.0, "", "utensils", "", []byte(`{}`), false, created))

	repo := NewPostgresRepository(mock)
	products, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Specs["wood"] != "oak" {
		t.Fatalf("specs not decoded: %+v", products[0].Specs)
	}
	if !products[0].Featured || products[1].Featured {
		t.Fatalf("featured flags wrong: %+v", products)
	}
}

func TestPostgresRepository_GetByID_Missing(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT id, name, price, image").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "price", "image", "category", "description", "specs", "featured", "created_at",
		}))

	repo := NewPostgresRepository(mock)
	_, err = repo.GetByID(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresRepository_Create(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec("INSERT INTO products").
		WithArgs(pgxmock.AnyArg(), "Oak Bowl", 120.0, "", "bowls", "", []byte(`{"wood":"oak"}`), true, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewPostgresRepository(mock)
	p := &Product{Name: "Oak Bowl", Price: 120, Category: "bowls", Featured: true, Specs: map[string]string{"wood": "oak"}}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected generated product id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec("UPDATE products").
		WithArgs("missing", "Oak Bowl", 120.0, "", "", "", []byte(`{}`), false).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewPostgresRepository(mock)
	err = repo.Update(ctx, &Product{ID: "missing", Name: "Oak Bowl", Price: 120})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresRepository_Delete(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec("DELETE FROM products").
		WithArgs("p1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	repo := NewPostgresRepository(mock)
	if err := repo.Delete(ctx, "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
