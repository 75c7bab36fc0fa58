package http

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/artisanwoodcraft/storefront-go/internal/catalog"
)

// ProductStore is the slice of catalog.Store the HTTP layer needs.
type ProductStore interface {
	Products() []catalog.Product
	GetByID(ctx context.Context, productID string) (*catalog.Product, error)
	AddProduct(ctx context.Context, p *catalog.Product, image *catalog.ImageFile) error
	UpdateProduct(ctx context.Context, p *catalog.Product, image *catalog.ImageFile) error
	DeleteProduct(ctx context.Context, productID string) error
}

type CatalogHandler struct {
	store ProductStore
}

func NewCatalogHandler(store ProductStore) *CatalogHandler {
	return &CatalogHandler{store: store}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.store.Products()
	if products == nil {
		products = []catalog.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.store.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	p, image, err := decodeProductRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := h.store.AddProduct(ctx, p, image); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create product")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	p, image, err := decodeProductRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p.ID = productID

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := h.store.UpdateProduct(ctx, p, image); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update product")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.DeleteProduct(ctx, productID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeProductRequest accepts either a JSON body or a multipart form with an
// optional image file attached.
func decodeProductRequest(r *http.Request) (*catalog.Product, *catalog.ImageFile, error) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		var p catalog.Product
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			return nil, nil, errors.New("invalid json")
		}
		return &p, nil, nil
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return nil, nil, errors.New("invalid multipart form")
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 {
		return nil, nil, errors.New("invalid price")
	}

	p := &catalog.Product{
		Name:        r.FormValue("name"),
		Price:       price,
		Image:       r.FormValue("image"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		Featured:    r.FormValue("featured") == "true",
		Specs:       map[string]string{},
	}
	if raw := r.FormValue("specs"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &p.Specs); err != nil {
			return nil, nil, errors.New("invalid specs")
		}
	}

	file, header, err := r.FormFile("image_file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return p, nil, nil
		}
		return nil, nil, errors.New("invalid image file")
	}
	return p, imageFromUpload(file, header), nil
}

func imageFromUpload(file multipart.File, header *multipart.FileHeader) *catalog.ImageFile {
	return &catalog.ImageFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}
}
