package http

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/artisanwoodcraft/storefront-go/internal/cart"
	"github.com/artisanwoodcraft/storefront-go/internal/catalog"
	"github.com/artisanwoodcraft/storefront-go/internal/order"
)

type fakeProductStore struct {
	products  []catalog.Product
	added     []*catalog.Product
	updated   []*catalog.Product
	deleted   []string
	images    []*catalog.ImageFile
	failWith  error
	missingID string
}

func (f *fakeProductStore) Products() []catalog.Product { return f.products }

func (f *fakeProductStore) GetByID(ctx context.Context, productID string) (*catalog.Product, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for i := range f.products {
		if f.products[i].ID == productID {
			return &f.products[i], nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeProductStore) AddProduct(ctx context.Context, p *catalog.Product, image *catalog.ImageFile) error {
	if f.failWith != nil {
		return f.failWith
	}
	p.ID = "created"
	f.added = append(f.added, p)
	f.images = append(f.images, image)
	return nil
}

func (f *fakeProductStore) UpdateProduct(ctx context.Context, p *catalog.Product, image *catalog.ImageFile) error {
	if f.failWith != nil {
		return f.failWith
	}
	if p.ID == f.missingID {
		return catalog.ErrNotFound
	}
	f.updated = append(f.updated, p)
	f.images = append(f.images, image)
	return nil
}

func (f *fakeProductStore) DeleteProduct(ctx context.Context, productID string) error {
	if f.failWith != nil {
		return f.failWith
	}
	if productID == f.missingID {
		return catalog.ErrNotFound
	}
	f.deleted = append(f.deleted, productID)
	return nil
}

type fakeOrderStore struct {
	orders    []order.Order
	updates   map[string]order.Status
	updateErr error
}

func (f *fakeOrderStore) Orders() []order.Order { return f.orders }

func (f *fakeOrderStore) UpdateStatus(ctx context.Context, orderID string, to order.Status) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.updates == nil {
		f.updates = map[string]order.Status{}
	}
	f.updates[orderID] = to
	return nil
}

type fakeProcessor struct {
	payload   []byte
	signature string
	err       error
}

func (f *fakeProcessor) HandleEvent(ctx context.Context, payload []byte, signature string) error {
	f.payload = payload
	f.signature = signature
	return f.err
}

type fakeContactNotifier struct {
	name, email, message string
	err                  error
}

func (f *fakeContactNotifier) ContactMessage(ctx context.Context, name, email, message string) error {
	f.name, f.email, f.message = name, email, message
	return f.err
}

type fakeStarter struct {
	items    []order.LineItem
	customer order.CustomerInfo
	url      string
	err      error
}

func (f *fakeStarter) Start(ctx context.Context, items []order.LineItem, customer order.CustomerInfo) (string, error) {
	f.items = items
	f.customer = customer
	return f.url, f.err
}

type routerFixture struct {
	products *fakeProductStore
	orders   *fakeOrderStore
	carts    *cart.Store
	starter  *fakeStarter
	events   *fakeProcessor
	contact  *fakeContactNotifier
	handler  http.Handler
}

func newRouterFixture(adminToken string) *routerFixture {
	f := &routerFixture{
		products: &fakeProductStore{},
		orders:   &fakeOrderStore{},
		carts:    cart.NewStore(),
		starter:  &fakeStarter{url: "https://pay.example/session/abc"},
		events:   &fakeProcessor{},
		contact:  &fakeContactNotifier{},
	}
	f.handler = NewRouter(Handlers{
		Catalog:  NewCatalogHandler(f.products),
		Cart:     NewCartHandler(f.carts, f.products),
		Checkout: NewCheckoutHandler(f.starter, f.carts),
		Webhook:  NewWebhookHandler(f.events),
		Contact:  NewContactHandler(f.contact),
		Orders:   NewOrderHandler(f.orders),
	}, adminToken, nil)
	return f
}

func (f *routerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}
