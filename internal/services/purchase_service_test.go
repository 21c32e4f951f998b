package services

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"gaming_club_backend/internal/models"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func activeMember(id int64, balance float64) *models.Member {
	return &models.Member{
		ID:          id,
		Name:        "Ayan",
		PhoneNumber: "7011234567",
		Role:        models.RoleUser,
		Balance:     balance,
		IsActive:    true,
	}
}

func TestPurchaseGameDebitsBalanceAndRecordsTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	memberRepo := newFakeMemberRepo(activeMember(1, 100))
	gameRepo := newFakeGameRepo(&models.Game{ID: 5, Name: "Gran Turismo", Status: models.GameStatusActive, Price: 60})
	txnRepo := newFakeTransactionRepo()
	svc := NewPurchaseService(memberRepo, gameRepo, newFakeProductRepo(), txnRepo, db)

	txn, err := svc.PurchaseGame(GamePurchaseRequest{MemberID: 1, GameID: 5})
	if err != nil {
		t.Fatalf("purchase game: %v", err)
	}

	if txn.Kind != models.TxKindGamePurchase {
		t.Errorf("kind = %q, want %q", txn.Kind, models.TxKindGamePurchase)
	}
	if txn.GameID == nil || *txn.GameID != 5 {
		t.Errorf("gameID = %v, want 5", txn.GameID)
	}
	if txn.Amount != 60 {
		t.Errorf("amount = %v, want 60", txn.Amount)
	}
	if txn.Status != models.TxStatusCompleted {
		t.Errorf("status = %q, want %q", txn.Status, models.TxStatusCompleted)
	}

	member, _ := memberRepo.GetMemberByID(1)
	if member.Balance != 40 {
		t.Errorf("balance after purchase = %v, want 40", member.Balance)
	}
	if len(txnRepo.transactions) != 1 {
		t.Errorf("transaction count = %d, want 1", len(txnRepo.transactions))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPurchaseGameInsufficientBalance(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	memberRepo := newFakeMemberRepo(activeMember(1, 10))
	gameRepo := newFakeGameRepo(&models.Game{ID: 5, Status: models.GameStatusActive, Price: 60})
	txnRepo := newFakeTransactionRepo()
	svc := NewPurchaseService(memberRepo, gameRepo, newFakeProductRepo(), txnRepo, db)

	_, err := svc.PurchaseGame(GamePurchaseRequest{MemberID: 1, GameID: 5})
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}

	member, _ := memberRepo.GetMemberByID(1)
	if member.Balance != 10 {
		t.Errorf("balance changed to %v on a failed purchase", member.Balance)
	}
	if len(txnRepo.transactions) != 0 {
		t.Errorf("transaction recorded for a failed purchase")
	}
}

func TestPurchaseGameRejectsInactiveGame(t *testing.T) {
	db, _ := newMockDB(t)

	memberRepo := newFakeMemberRepo(activeMember(1, 100))
	gameRepo := newFakeGameRepo(&models.Game{ID: 5, Status: models.GameStatusComingSoon, Price: 60})
	svc := NewPurchaseService(memberRepo, gameRepo, newFakeProductRepo(), newFakeTransactionRepo(), db)

	_, err := svc.PurchaseGame(GamePurchaseRequest{MemberID: 1, GameID: 5})
	if !errors.Is(err, ErrGameNotPurchasable) {
		t.Fatalf("err = %v, want ErrGameNotPurchasable", err)
	}
}

func TestPurchaseGameRejectsInactiveMember(t *testing.T) {
	db, _ := newMockDB(t)

	member := activeMember(1, 100)
	member.IsActive = false
	gameRepo := newFakeGameRepo(&models.Game{ID: 5, Status: models.GameStatusActive, Price: 60})
	svc := NewPurchaseService(newFakeMemberRepo(member), gameRepo, newFakeProductRepo(), newFakeTransactionRepo(), db)

	_, err := svc.PurchaseGame(GamePurchaseRequest{MemberID: 1, GameID: 5})
	if !errors.Is(err, ErrMemberInactive) {
		t.Fatalf("err = %v, want ErrMemberInactive", err)
	}
}

func TestPurchaseGameUnknownMember(t *testing.T) {
	db, _ := newMockDB(t)

	gameRepo := newFakeGameRepo(&models.Game{ID: 5, Status: models.GameStatusActive, Price: 60})
	svc := NewPurchaseService(newFakeMemberRepo(), gameRepo, newFakeProductRepo(), newFakeTransactionRepo(), db)

	_, err := svc.PurchaseGame(GamePurchaseRequest{MemberID: 99, GameID: 5})
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("err = %v, want ErrMemberNotFound", err)
	}
}

func TestPurchaseProductChargesPriceTimesQuantity(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	memberRepo := newFakeMemberRepo(activeMember(1, 100))
	productRepo := newFakeProductRepo(&models.Product{ID: 3, Name: "Headset", Price: 25, Stock: 4})
	txnRepo := newFakeTransactionRepo()
	svc := NewPurchaseService(memberRepo, newFakeGameRepo(), productRepo, txnRepo, db)

	txn, err := svc.PurchaseProduct(ProductPurchaseRequest{MemberID: 1, ProductID: 3, Quantity: 2})
	if err != nil {
		t.Fatalf("purchase product: %v", err)
	}

	if txn.Kind != models.TxKindProductPurchase {
		t.Errorf("kind = %q, want %q", txn.Kind, models.TxKindProductPurchase)
	}
	if txn.Amount != 50 {
		t.Errorf("amount = %v, want 50", txn.Amount)
	}
	if txn.Quantity != 2 {
		t.Errorf("quantity = %v, want 2", txn.Quantity)
	}

	member, _ := memberRepo.GetMemberByID(1)
	if member.Balance != 50 {
		t.Errorf("balance after purchase = %v, want 50", member.Balance)
	}
	product, _ := productRepo.GetProductByID(3)
	if product.Stock != 2 {
		t.Errorf("stock after purchase = %v, want 2", product.Stock)
	}
}

func TestPurchaseProductOutOfStock(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	memberRepo := newFakeMemberRepo(activeMember(1, 1000))
	productRepo := newFakeProductRepo(&models.Product{ID: 3, Price: 25, Stock: 1})
	txnRepo := newFakeTransactionRepo()
	svc := NewPurchaseService(memberRepo, newFakeGameRepo(), productRepo, txnRepo, db)

	_, err := svc.PurchaseProduct(ProductPurchaseRequest{MemberID: 1, ProductID: 3, Quantity: 2})
	if !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("err = %v, want ErrOutOfStock", err)
	}

	member, _ := memberRepo.GetMemberByID(1)
	if member.Balance != 1000 {
		t.Errorf("balance changed to %v on a failed purchase", member.Balance)
	}
	if len(txnRepo.transactions) != 0 {
		t.Errorf("transaction recorded for a failed purchase")
	}
}

func TestPurchaseProductRejectsZeroQuantity(t *testing.T) {
	db, _ := newMockDB(t)

	svc := NewPurchaseService(newFakeMemberRepo(), newFakeGameRepo(), newFakeProductRepo(), newFakeTransactionRepo(), db)

	_, err := svc.PurchaseProduct(ProductPurchaseRequest{MemberID: 1, ProductID: 3, Quantity: 0})
	if !errors.Is(err, ErrPurchaseValidation) {
		t.Fatalf("err = %v, want ErrPurchaseValidation", err)
	}
}
