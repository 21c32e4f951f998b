package services

import (
	"sort"
	"time"

	"gaming_club_backend/internal/models"
	"gaming_club_backend/internal/repositories"
)

// In-memory repository fakes. The SQLExecutor argument is accepted and
// ignored; transactionality is the service's concern, not the fakes'.

type fakeMemberRepo struct {
	members map[int64]*models.Member
	nextID  int64
}

func newFakeMemberRepo(members ...*models.Member) *fakeMemberRepo {
	repo := &fakeMemberRepo{members: make(map[int64]*models.Member), nextID: 1}
	for _, m := range members {
		if m.ID == 0 {
			m.ID = repo.nextID
		}
		if m.ID >= repo.nextID {
			repo.nextID = m.ID + 1
		}
		repo.members[m.ID] = m
	}
	return repo
}

func (r *fakeMemberRepo) CreateMember(_ repositories.SQLExecutor, member *models.Member) (int64, error) {
	for _, existing := range r.members {
		if existing.PhoneNumber == member.PhoneNumber {
			return 0, repositories.ErrDuplicateKey
		}
	}
	member.ID = r.nextID
	r.nextID++
	member.CreatedAt = time.Now()
	member.UpdatedAt = member.CreatedAt
	if member.JoiningDate.IsZero() {
		member.JoiningDate = member.CreatedAt
	}
	r.members[member.ID] = member
	return member.ID, nil
}

func (r *fakeMemberRepo) GetMemberByID(id int64) (*models.Member, error) {
	member, ok := r.members[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *member
	return &copied, nil
}

func (r *fakeMemberRepo) GetMemberByPhoneNumber(phoneNumber string) (*models.Member, error) {
	for _, member := range r.members {
		if member.PhoneNumber == phoneNumber {
			copied := *member
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeMemberRepo) GetMembers(page, pageSize int, searchTerm *string) ([]models.Member, int, error) {
	ids := make([]int64, 0, len(r.members))
	for id := range r.members {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	members := make([]models.Member, 0, len(ids))
	for _, id := range ids {
		members = append(members, *r.members[id])
	}
	return members, len(members), nil
}

func (r *fakeMemberRepo) UpdateMember(_ repositories.SQLExecutor, member *models.Member) error {
	if _, ok := r.members[member.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.members[member.ID] = member
	return nil
}

func (r *fakeMemberRepo) DeleteMember(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.members[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.members, id)
	return nil
}

func (r *fakeMemberRepo) LockBalance(_ repositories.SQLExecutor, id int64) (float64, error) {
	member, ok := r.members[id]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	return member.Balance, nil
}

func (r *fakeMemberRepo) DebitBalance(_ repositories.SQLExecutor, id int64, amount float64) error {
	member, ok := r.members[id]
	if !ok || member.Balance < amount {
		return repositories.ErrInsufficientBalance
	}
	member.Balance -= amount
	return nil
}

func (r *fakeMemberRepo) CreditBalance(_ repositories.SQLExecutor, id int64, amount float64) error {
	member, ok := r.members[id]
	if !ok {
		return repositories.ErrNotFound
	}
	member.Balance += amount
	return nil
}

type fakeGameRepo struct {
	games map[int64]*models.Game
}

func newFakeGameRepo(games ...*models.Game) *fakeGameRepo {
	repo := &fakeGameRepo{games: make(map[int64]*models.Game)}
	for _, g := range games {
		repo.games[g.ID] = g
	}
	return repo
}

func (r *fakeGameRepo) CreateGame(_ repositories.SQLExecutor, game *models.Game) (int64, error) {
	game.ID = int64(len(r.games) + 1)
	r.games[game.ID] = game
	return game.ID, nil
}

func (r *fakeGameRepo) GetGameByID(id int64) (*models.Game, error) {
	game, ok := r.games[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *game
	return &copied, nil
}

func (r *fakeGameRepo) GetGames(page, pageSize int, genre, status *string) ([]models.Game, int, error) {
	games := make([]models.Game, 0, len(r.games))
	for _, game := range r.games {
		games = append(games, *game)
	}
	return games, len(games), nil
}

func (r *fakeGameRepo) UpdateGame(_ repositories.SQLExecutor, game *models.Game) error {
	if _, ok := r.games[game.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.games[game.ID] = game
	return nil
}

func (r *fakeGameRepo) DeleteGame(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.games[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.games, id)
	return nil
}

func (r *fakeGameRepo) GetGamesPurchasedByMember(memberID int64) ([]models.GameSummary, error) {
	return []models.GameSummary{}, nil
}

type fakeProductRepo struct {
	products map[int64]*models.Product
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[int64]*models.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) CreateProduct(_ repositories.SQLExecutor, product *models.Product) (int64, error) {
	product.ID = int64(len(r.products) + 1)
	r.products[product.ID] = product
	return product.ID, nil
}

func (r *fakeProductRepo) GetProductByID(id int64) (*models.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (r *fakeProductRepo) GetProducts(page, pageSize int, category, searchTerm *string) ([]models.Product, int, error) {
	products := make([]models.Product, 0, len(r.products))
	for _, product := range r.products {
		products = append(products, *product)
	}
	return products, len(products), nil
}

func (r *fakeProductRepo) UpdateProduct(_ repositories.SQLExecutor, product *models.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) DeleteProduct(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) DecrementStock(_ repositories.SQLExecutor, id int64, quantity int) error {
	product, ok := r.products[id]
	if !ok || product.Stock < quantity {
		return repositories.ErrInsufficientStock
	}
	product.Stock -= quantity
	return nil
}

type fakeTransactionRepo struct {
	transactions []*models.Transaction
	nextID       int64
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{nextID: 1}
}

func (r *fakeTransactionRepo) CreateTransaction(_ repositories.SQLExecutor, txn *models.Transaction) (int64, error) {
	txn.ID = r.nextID
	r.nextID++
	if txn.Date.IsZero() {
		txn.Date = time.Now()
	}
	r.transactions = append(r.transactions, txn)
	return txn.ID, nil
}

func (r *fakeTransactionRepo) GetTransactionByID(id int64) (*models.Transaction, error) {
	for _, txn := range r.transactions {
		if txn.ID == id {
			copied := *txn
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeTransactionRepo) GetTransactions(page, pageSize int) ([]models.Transaction, int, error) {
	transactions := make([]models.Transaction, 0, len(r.transactions))
	for _, txn := range r.transactions {
		transactions = append(transactions, *txn)
	}
	return transactions, len(transactions), nil
}

func (r *fakeTransactionRepo) GetTransactionsByMember(memberID int64) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	for _, txn := range r.transactions {
		if txn.MemberID == memberID {
			transactions = append(transactions, *txn)
		}
	}
	return transactions, nil
}

func (r *fakeTransactionRepo) GetPlayedHistoryByMember(memberID int64) ([]models.PlayedItem, error) {
	return []models.PlayedItem{}, nil
}

type fakeRechargeRepo struct {
	recharges []*models.Recharge
	nextID    int64
}

func newFakeRechargeRepo() *fakeRechargeRepo {
	return &fakeRechargeRepo{nextID: 1}
}

func (r *fakeRechargeRepo) CreateRecharge(_ repositories.SQLExecutor, recharge *models.Recharge) (int64, error) {
	recharge.ID = r.nextID
	r.nextID++
	if recharge.Date.IsZero() {
		recharge.Date = time.Now()
	}
	r.recharges = append(r.recharges, recharge)
	return recharge.ID, nil
}

func (r *fakeRechargeRepo) GetRechargeByID(id int64) (*models.Recharge, error) {
	for _, recharge := range r.recharges {
		if recharge.ID == id {
			copied := *recharge
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeRechargeRepo) GetRecharges(page, pageSize int) ([]models.Recharge, int, error) {
	recharges := make([]models.Recharge, 0, len(r.recharges))
	for _, recharge := range r.recharges {
		recharges = append(recharges, *recharge)
	}
	return recharges, len(recharges), nil
}

func (r *fakeRechargeRepo) GetRechargesByMember(memberID int64) ([]models.Recharge, error) {
	recharges := []models.Recharge{}
	for _, recharge := range r.recharges {
		if recharge.MemberID == memberID {
			recharges = append(recharges, *recharge)
		}
	}
	return recharges, nil
}
