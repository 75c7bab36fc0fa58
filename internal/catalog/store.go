package catalog

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// ImageUploader pushes image bytes to the content store and returns the
// public URL to record on the product.
type ImageUploader interface {
	Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

// ImageFile carries an uploaded image alongside a product write.
type ImageFile struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Store is the source of truth for the product list. Reads are served from an
// in-memory snapshot; every successful mutation reloads the snapshot from the
// database so served state never diverges from persisted state.
type Store struct {
	repo   Repository
	images ImageUploader

	mu       sync.RWMutex
	products []Product
}

func NewStore(repo Repository, images ImageUploader) *Store {
	return &Store{repo: repo, images: images}
}

// Load populates the snapshot. Called once at startup and again after every
// successful mutation.
func (s *Store) Load(ctx context.Context) error {
	products, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	return nil
}

func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) GetByID(ctx context.Context, productID string) (*Product, error) {
	s.mu.RLock()
	for i := range s.products {
		if s.products[i].ID == productID {
			p := s.products[i]
			s.mu.RUnlock()
			return &p, nil
		}
	}
	s.mu.RUnlock()
	return s.repo.GetByID(ctx, productID)
}

// AddProduct persists a new product. If image is non-nil the file is uploaded
// first and the returned URL substituted; upload failure aborts the write.
func (s *Store) AddProduct(ctx context.Context, p *Product, image *ImageFile) error {
	if err := s.attachImage(ctx, p, image); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	return s.Load(ctx)
}

func (s *Store) UpdateProduct(ctx context.Context, p *Product, image *ImageFile) error {
	if err := s.attachImage(ctx, p, image); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	return s.Load(ctx)
}

func (s *Store) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.repo.Delete(ctx, productID); err != nil {
		return err
	}
	return s.Load(ctx)
}

func (s *Store) attachImage(ctx context.Context, p *Product, image *ImageFile) error {
	if image == nil {
		return nil
	}
	if s.images == nil {
		return fmt.Errorf("upload image: no content store configured")
	}
	url, err := s.images.Upload(ctx, image.Name, image.ContentType, image.Body)
	if err != nil {
		return fmt.Errorf("upload image: %w", err)
	}
	p.Image = url
	return nil
}
