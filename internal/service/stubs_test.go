package service_test

import (
	"context"
	"time"

	"sareepos/internal/dto"
	"sareepos/internal/model"
	"sareepos/internal/repository"
	"sareepos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repository implementations. Transactions are a no-op (tx is nil in
// unit tests), so stubs mutate state directly; copies are returned from finders
// to mimic the row-snapshot behavior of a real database.

type stubProductRepo struct {
	byID  map[uuid.UUID]model.Product
	bySKU map[string]uuid.UUID
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		byID:  make(map[uuid.UUID]model.Product),
		bySKU: make(map[string]uuid.UUID),
	}
}

func (r *stubProductRepo) put(p *model.Product) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.byID[p.ID] = *p
	r.bySKU[p.SKU] = p.ID
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.put(p)
	return nil
}

func (r *stubProductRepo) CreateTx(_ *gorm.DB, p *model.Product) error {
	r.put(p)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	id, ok := r.bySKU[sku]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p := r.byID[id]
	return &p, nil
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.byID[p.ID] = *p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.byID[id]; ok {
		delete(r.bySKU, p.SKU)
		delete(r.byID, id)
	}
	return nil
}

func (r *stubProductRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) (int64, error) {
	p, ok := r.byID[id]
	if !ok || p.Quantity < qty {
		return 0, nil
	}
	p.Quantity -= qty
	if p.Quantity <= 0 {
		p.Status = model.ProductSold
	}
	r.byID[id] = p
	return 1, nil
}

func (r *stubProductRepo) RestoreStockTx(_ *gorm.DB, id uuid.UUID, qty int) error {
	p, ok := r.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Quantity += qty
	p.Status = model.ProductAvailable
	r.byID[id] = p
	return nil
}

func (r *stubProductRepo) AdjustStock(_ context.Context, id uuid.UUID, delta int) error {
	p, ok := r.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Quantity += delta
	if p.Quantity <= 0 {
		p.Status = model.ProductSold
	} else {
		p.Status = model.ProductAvailable
	}
	r.byID[id] = p
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubBillRepo keeps bills in memory with an in-process sequence.
type stubBillRepo struct {
	bills   map[uuid.UUID]model.Bill
	seq     int
	failSeq bool // force NextBillNumber to fail
}

func newStubBillRepo() *stubBillRepo {
	return &stubBillRepo{bills: make(map[uuid.UUID]model.Bill)}
}

func (r *stubBillRepo) Create(_ context.Context, _ *gorm.DB, b *model.Bill) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	for i := range b.Items {
		if b.Items[i].ID == uuid.Nil {
			b.Items[i].ID = uuid.New()
		}
		b.Items[i].BillID = b.ID
	}
	b.CreatedAt = time.Now()
	r.bills[b.ID] = *b
	return nil
}

func (r *stubBillRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Bill, error) {
	b, ok := r.bills[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (r *stubBillRepo) NextBillNumber(_ context.Context, _ *gorm.DB) (int, error) {
	if r.failSeq {
		return 0, gorm.ErrInvalidDB
	}
	r.seq++
	return r.seq, nil
}

func (r *stubBillRepo) List(_ context.Context, _ dto.BillFilter) ([]model.Bill, int64, error) {
	out := make([]model.Bill, 0, len(r.bills))
	for _, b := range r.bills {
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (r *stubBillRepo) Update(_ context.Context, b *model.Bill) error {
	r.bills[b.ID] = *b
	return nil
}

func (r *stubBillRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.bills, id)
	return nil
}

func (r *stubBillRepo) ListMissingStockDebits(_ context.Context, _ time.Time, _ int) ([]model.Bill, error) {
	return nil, nil
}

func (r *stubBillRepo) DB() *gorm.DB { return nil }

var _ repository.BillRepository = (*stubBillRepo)(nil)

// stubMovementRepo captures stock movements for assertion.
type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, _ repository.StockMovementFilter) ([]model.StockMovement, int64, error) {
	return r.movements, int64(len(r.movements)), nil
}

func (r *stubMovementRepo) ofType(t string) []model.StockMovement {
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// memCartStore replaces Redis in unit tests.
type memCartStore struct {
	carts map[uuid.UUID][]service.CartLine
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: make(map[uuid.UUID][]service.CartLine)}
}

func (s *memCartStore) Load(_ context.Context, userID uuid.UUID) ([]service.CartLine, error) {
	return s.carts[userID], nil
}

func (s *memCartStore) Save(_ context.Context, userID uuid.UUID, lines []service.CartLine) error {
	s.carts[userID] = lines
	return nil
}

func (s *memCartStore) Clear(_ context.Context, userID uuid.UUID) error {
	delete(s.carts, userID)
	return nil
}

var _ service.CartStore = (*memCartStore)(nil)

// stubVendorBillRepo for vendor bill service tests.
type stubVendorBillRepo struct {
	bills map[uuid.UUID]model.VendorBill
}

func newStubVendorBillRepo() *stubVendorBillRepo {
	return &stubVendorBillRepo{bills: make(map[uuid.UUID]model.VendorBill)}
}

func (r *stubVendorBillRepo) CreateTx(_ *gorm.DB, vb *model.VendorBill) error {
	if vb.ID == uuid.Nil {
		vb.ID = uuid.New()
	}
	r.bills[vb.ID] = *vb
	return nil
}

func (r *stubVendorBillRepo) FindByID(_ context.Context, id uuid.UUID) (*model.VendorBill, error) {
	vb, ok := r.bills[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &vb, nil
}

func (r *stubVendorBillRepo) List(_ context.Context, _ dto.VendorBillFilter) ([]model.VendorBill, int64, error) {
	out := make([]model.VendorBill, 0, len(r.bills))
	for _, vb := range r.bills {
		out = append(out, vb)
	}
	return out, int64(len(out)), nil
}

func (r *stubVendorBillRepo) DB() *gorm.DB { return nil }

var _ repository.VendorBillRepository = (*stubVendorBillRepo)(nil)

// stubReportRepo returns canned aggregates.
type stubReportRepo struct {
	sales    repository.SalesTotals
	daily    []repository.DailySalesRow
	inputGST decimal.Decimal
	expenses []repository.ExpenseTotal
}

func (r *stubReportRepo) SalesTotals(_ context.Context, _, _ time.Time) (*repository.SalesTotals, error) {
	s := r.sales
	return &s, nil
}

func (r *stubReportRepo) DailySales(_ context.Context, _ int) ([]repository.DailySalesRow, error) {
	return r.daily, nil
}

func (r *stubReportRepo) InputGST(_ context.Context, _, _ time.Time) (decimal.Decimal, error) {
	return r.inputGST, nil
}

func (r *stubReportRepo) ExpenseTotals(_ context.Context, _, _ time.Time) ([]repository.ExpenseTotal, error) {
	return r.expenses, nil
}

var _ repository.ReportRepository = (*stubReportRepo)(nil)

// stubProfileRepo for auth tests.
type stubProfileRepo struct {
	byID    map[uuid.UUID]model.Profile
	byEmail map[string]uuid.UUID
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{
		byID:    make(map[uuid.UUID]model.Profile),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *stubProfileRepo) Create(_ context.Context, p *model.Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.byID[p.ID] = *p
	r.byEmail[p.Email] = p.ID
	return nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *stubProfileRepo) FindByEmail(_ context.Context, email string) (*model.Profile, error) {
	id, ok := r.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p := r.byID[id]
	if !p.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *stubProfileRepo) List(_ context.Context, includeInactive bool) ([]model.Profile, error) {
	out := make([]model.Profile, 0, len(r.byID))
	for _, p := range r.byID {
		if !p.Active && !includeInactive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *stubProfileRepo) Update(_ context.Context, p *model.Profile) error {
	r.byID[p.ID] = *p
	return nil
}

func (r *stubProfileRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	p, ok := r.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Active = false
	r.byID[id] = p
	return nil
}

func (r *stubProfileRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	p, ok := r.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Active = true
	r.byID[id] = p
	return nil
}

var _ repository.ProfileRepository = (*stubProfileRepo)(nil)
