package handler

import (
	"net/http"

	"bookstore-jsonb/internal/domains/book/model"
	service "bookstore-jsonb/internal/domains/book/service"
	"bookstore-jsonb/internal/shared/middleware"
	"bookstore-jsonb/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Handler - HTTP Handler cho book domain
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes gắn book routes vào router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	books := rg.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/publishers", h.GetPublishers)
		books.GET("/:id", h.GetBook)
		books.GET("/:id/audits", h.GetAudits)

		writes := books.Group("", middleware.RequireActor())
		writes.POST("", h.CreateBook)
		writes.PUT("/:id", h.UpdateBook)
		writes.DELETE("/:id", h.DeleteBook)
		writes.DELETE("", h.DeleteAllBooks)
	}
}

// CreateBook - POST /v1/books
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_PAYLOAD", err.Error())
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), req, c.GetString(middleware.ActorKey))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Book created successfully", book)
}

// GetBook - GET /v1/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get book successfully", book)
}

// ListBooks - GET /v1/books?query=
// Không có query: trả toàn bộ. Có query: search ở database, mỗi book kèm match.
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.service.ListBooks(c.Request.Context(), c.Query("query"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get books successfully", books)
}

// UpdateBook - PUT /v1/books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "INVALID_PAYLOAD", err.Error())
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), id, req, c.GetString(middleware.ActorKey))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Book updated successfully", book)
}

// DeleteBook - DELETE /v1/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), id, c.GetString(middleware.ActorKey)); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Book deleted successfully", nil)
}

// DeleteAllBooks - DELETE /v1/books
func (h *Handler) DeleteAllBooks(c *gin.Context) {
	count, err := h.service.DeleteAllBooks(c.Request.Context(), c.GetString(middleware.ActorKey))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Books deleted successfully", model.DeleteAllResponse{Deleted: count})
}

// GetPublishers - GET /v1/books/publishers?publisher=
func (h *Handler) GetPublishers(c *gin.Context) {
	publishers, err := h.service.PublishersMatching(c.Request.Context(), c.Query("publisher"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get publishers successfully", publishers)
}

// GetAudits - GET /v1/books/:id/audits
func (h *Handler) GetAudits(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	audits, err := h.service.GetAudits(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get audits successfully", audits)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "INVALID_BOOK_ID", "Invalid book id: "+c.Param("id"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	statusCode, message, code := model.MapErrorToHTTP(err)
	if statusCode >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Msg("[Handler] Book request failed")
	}
	response.Error(c, statusCode, message, code)
}
