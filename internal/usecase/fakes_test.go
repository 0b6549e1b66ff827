package usecase

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/hayamij/PY-CameraShop-sub000/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func cloneProduct(p *domain.Product) *domain.Product {
	c := *p
	return &c
}

func cloneOrder(o *domain.Order) *domain.Order {
	return domain.ReconstructOrder(o.ID, o.CustomerID, o.Items(), o.PaymentMethod,
		o.ShippingAddress, o.PhoneNumber, o.Notes, o.Status(), o.TotalAmount(),
		o.CreatedAt, o.UpdatedAt)
}

func cloneCart(c *domain.Cart) *domain.Cart {
	return domain.ReconstructCart(c.ID, c.CustomerID, c.Items(), c.CreatedAt, c.UpdatedAt)
}

// snapshotter lets fakeTxManager roll fakes back when the unit of work fails.
type snapshotter interface {
	snapshot()
	restore()
}

// fakeTxManager mimics transactional semantics over the in-memory fakes:
// state is captured before fn runs and restored when fn returns an error.
type fakeTxManager struct {
	stores []snapshotter
	calls  int
}

func newFakeTxManager(stores ...snapshotter) *fakeTxManager {
	return &fakeTxManager{stores: stores}
}

func (m *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	for _, s := range m.stores {
		s.snapshot()
	}
	if err := fn(ctx); err != nil {
		for _, s := range m.stores {
			s.restore()
		}
		return err
	}
	return nil
}

type fakeProductRepo struct {
	products  map[int]*domain.Product
	backup    map[int]*domain.Product
	saveErr   error
	lockedIDs []int
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[int]*domain.Product)}
	for _, p := range products {
		r.products[p.ID] = cloneProduct(p)
	}
	return r
}

func (r *fakeProductRepo) FindByID(_ context.Context, id int) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (r *fakeProductRepo) FindByIDForUpdate(ctx context.Context, id int) (*domain.Product, error) {
	r.lockedIDs = append(r.lockedIDs, id)
	return r.FindByID(ctx, id)
}

func (r *fakeProductRepo) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	if _, ok := r.products[product.ID]; !ok {
		return nil, &domain.ProductNotFoundError{ProductID: product.ID}
	}
	r.products[product.ID] = cloneProduct(product)
	return product, nil
}

func (r *fakeProductRepo) stock(id int) int {
	return r.products[id].StockQuantity
}

func (r *fakeProductRepo) snapshot() {
	r.backup = make(map[int]*domain.Product, len(r.products))
	for id, p := range r.products {
		r.backup[id] = cloneProduct(p)
	}
}

func (r *fakeProductRepo) restore() {
	r.products = r.backup
}

type fakeOrderRepo struct {
	orders    map[int]*domain.Order
	ids       []int
	backup    map[int]*domain.Order
	backupIDs []int
	nextID    int
	saveErr   error
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[int]*domain.Order), nextID: 1}
	for _, o := range orders {
		r.orders[o.ID] = cloneOrder(o)
		r.ids = append(r.ids, o.ID)
		if o.ID >= r.nextID {
			r.nextID = o.ID + 1
		}
	}
	return r
}

func (r *fakeOrderRepo) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	if order.ID == 0 {
		order.ID = r.nextID
		r.nextID++
		r.ids = append(r.ids, order.ID)
	} else if _, ok := r.orders[order.ID]; !ok {
		return nil, &domain.OrderNotFoundError{OrderID: order.ID}
	}
	r.orders[order.ID] = cloneOrder(order)
	return order, nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id int) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r *fakeOrderRepo) FindByCustomerID(_ context.Context, customerID int) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, id := range r.ids {
		if o, ok := r.orders[id]; ok && o.CustomerID == customerID {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.orders[id]; !ok {
		return &domain.OrderNotFoundError{OrderID: id}
	}
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) snapshot() {
	r.backup = make(map[int]*domain.Order, len(r.orders))
	for id, o := range r.orders {
		r.backup[id] = cloneOrder(o)
	}
	r.backupIDs = append([]int(nil), r.ids...)
}

func (r *fakeOrderRepo) restore() {
	r.orders = r.backup
	r.ids = r.backupIDs
}

type fakeCartRepo struct {
	carts   map[int]*domain.Cart
	backup  map[int]*domain.Cart
	nextID  int
	saveErr error
}

func newFakeCartRepo(carts ...*domain.Cart) *fakeCartRepo {
	r := &fakeCartRepo{carts: make(map[int]*domain.Cart), nextID: 1}
	for _, c := range carts {
		r.carts[c.CustomerID] = cloneCart(c)
		if c.ID >= r.nextID {
			r.nextID = c.ID + 1
		}
	}
	return r
}

func (r *fakeCartRepo) FindByCustomerID(_ context.Context, customerID int) (*domain.Cart, error) {
	c, ok := r.carts[customerID]
	if !ok {
		return nil, nil
	}
	return cloneCart(c), nil
}

func (r *fakeCartRepo) Save(_ context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	if cart.ID == 0 {
		cart.ID = r.nextID
		r.nextID++
	}
	r.carts[cart.CustomerID] = cloneCart(cart)
	return cart, nil
}

func (r *fakeCartRepo) ClearCart(_ context.Context, customerID int) error {
	if c, ok := r.carts[customerID]; ok {
		c.Clear()
	}
	return nil
}

func (r *fakeCartRepo) snapshot() {
	r.backup = make(map[int]*domain.Cart, len(r.carts))
	for id, c := range r.carts {
		r.backup[id] = cloneCart(c)
	}
}

func (r *fakeCartRepo) restore() {
	r.carts = r.backup
}
