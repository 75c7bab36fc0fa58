package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
)

func TestPostgresRepository_Create(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer mock.Close()

	o := &Order{
		Items: []LineItem{
			{ProductID: "1", Name: "Oak Bowl", Price: 120, Quantity: 1},
			{ProductID: "2", Name: "Spoon", Price: 35, Quantity: 2},
		},
		Customer:  CustomerInfo{Name: "Jane", Email: "jane@example.com", Phone: "555", Address: "1 Main St"},
		Total:     190,
		Status:    StatusPending,
		CreatedAt: time.Unix(1700000000, 0).UTC(),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(pgxmock.AnyArg(), "Jane", "jane@example.com", "555", "1 Main St", "", 190.0, StatusPending, o.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "1", "Oak Bowl", 120.0, 1, "", 0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "2", "Spoon", 35.0, 2, "", 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	repo := NewPostgresRepository(mock)
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.ID == "" {
		t.Fatalf("expected generated order id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_Create_ItemInsertFails(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(pgxmock.AnyArg(), "", "", "", "", "", 10.0, StatusPending, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "1", "", 10.0, 1, "", 0).
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	repo := NewPostgresRepository(mock)
	o := &Order{Items: []LineItem{{ProductID: "1", Price: 10, Quantity: 1}}, Total: 10}
	if err := repo.Create(ctx, o); err == nil {
		t.Fatalf("expected error when item insert fails")
	}
}

func TestPostgresRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("forward transition", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatalf("new pool: %v", err)
		}
		defer mock.Close()

		mock.ExpectQuery("SELECT status FROM orders").
			WithArgs("o1").
			WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(StatusPending))
		mock.ExpectExec("UPDATE orders SET status").
			WithArgs("o1", StatusProcessing, StatusPending).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewPostgresRepository(mock)
		if err := repo.UpdateStatus(ctx, "o1", StatusProcessing); err != nil {
			t.Fatalf("update status: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})

	t.Run("backward transition rejected", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatalf("new pool: %v", err)
		}
		defer mock.Close()

		mock.ExpectQuery("SELECT status FROM orders").
			WithArgs("o1").
			WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(StatusFulfilled))

		repo := NewPostgresRepository(mock)
		err = repo.UpdateStatus(ctx, "o1", StatusProcessing)
		if !errors.Is(err, ErrBadTransition) {
			t.Fatalf("expected ErrBadTransition, got %v", err)
		}
	})

	t.Run("unknown status rejected without query", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatalf("new pool: %v", err)
		}
		defer mock.Close()

		repo := NewPostgresRepository(mock)
		err = repo.UpdateStatus(ctx, "o1", Status("cancelled"))
		if !errors.Is(err, ErrBadTransition) {
			t.Fatalf("expected ErrBadTransition, got %v", err)
		}
	})

	t.Run("missing order", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatalf("new pool: %v", err)
		}
		defer mock.Close()

		mock.ExpectQuery("SELECT status FROM orders").
			WithArgs("missing").
			WillReturnRows(pgxmock.NewRows([]string{"status"}))

		repo := NewPostgresRepository(mock)
		err = repo.UpdateStatus(ctx, "missing", StatusProcessing)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestPostgresRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	defer mock.Close()

	created := time.Unix(1700000000, 0).UTC()
	mock.ExpectQuery("SELECT id, customer_name").
		WithArgs("o1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "customer_name", "customer_email", "customer_phone",
			"customer_address", "customer_notes", "total", "status", "created_at",
		}).AddRow("o1", "Jane", "jane@example.com", "555", "1 Main St", "", 150.0, StatusPending, created))
	mock.ExpectQuery("SELECT product_id, name, price, quantity, image").
		WithArgs("o1").
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "name", "price", "quantity", "image"}).
			AddRow("1", "Oak Bowl", 120.0, 1, "").
			AddRow("2", "Spoon", 15.0, 2, ""))

	repo := NewPostgresRepository(mock)
	o, err := repo.GetByID(ctx, "o1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if o.Total != 150.0 || len(o.Items) != 2 || o.Items[0].Name != "Oak Bowl" {
		t.Fatalf("unexpected order: %+v", o)
	}
}
