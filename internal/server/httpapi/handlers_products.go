package httpapi

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/wstore/webshop/internal/common"
	"github.com/wstore/webshop/internal/server/models"
)

// Multipart uploads are capped at 5 MiB, matching the storefront's limit.
const maxImageBytes = 5 << 20

type productResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	StockCount  int     `json:"stockCount"`
	ProductCode string  `json:"productCode"`
	Description string  `json:"description"`
}

func toProductResponse(p *models.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		StockCount:  p.StockCount,
		ProductCode: p.ProductCode,
		Description: p.Description,
	}
}

// handleCreateProduct accepts a multipart form: product fields plus an
// optional "image" part (jpeg or png) that ends up resized in object storage.
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+maxBodyBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		s.writeServiceError(r.Context(), w, common.ErrorValidation)
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		s.writeValidation(w, "you must supply a valid price")
		return
	}
	stockCount, _ := strconv.Atoi(r.FormValue("stockCount"))

	product := &models.Product{
		Name:        r.FormValue("name"),
		Price:       price,
		StockCount:  stockCount,
		ProductCode: r.FormValue("productCode"),
		Description: r.FormValue("description"),
	}
	if strings.TrimSpace(product.Name) == "" {
		s.writeValidation(w, "you must supply a product name")
		return
	}

	var image io.Reader
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		switch header.Header.Get("Content-Type") {
		case "image/jpeg", "image/png":
			image = file
		default:
			// Unsupported upload types are dropped, not rejected; the
			// product is simply created without a picture.
		}
	}

	created, err := s.products.Create(r.Context(), product, image)
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(created))
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.GetAll(r.Context())
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

type productQueryRequest struct {
	Query string `json:"query"`
	Page  int    `json:"page"`
}

type productQueryResponse struct {
	Products   []productResponse `json:"products"`
	Count      int64             `json:"count"`
	TotalCount int64             `json:"totalCount"`
}

func (s *Server) handleQueryProducts(w http.ResponseWriter, r *http.Request) {
	var req productQueryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(r.Context(), w, common.ErrorValidation)
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}

	search := strings.ToLower(strings.TrimSpace(req.Query))
	result, err := s.products.Query(r.Context(), search, req.Page)
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}

	resp := productQueryResponse{
		Products:   make([]productResponse, 0, len(result.Products)),
		Count:      result.Count,
		TotalCount: result.TotalCount,
	}
	for _, p := range result.Products {
		resp.Products = append(resp.Products, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := s.products.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

type updateProductRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeServiceError(r.Context(), w, common.ErrorValidation)
		return
	}
	product, err := s.products.Update(r.Context(), r.PathValue("id"), req.Name, req.Price)
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.products.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Successfully deleted product."})
}
