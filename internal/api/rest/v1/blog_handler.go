package v1

import (
	"crypto/subtle"
	"net/http"

	"github.com/genno-io/genno/internal/domain/blogs"
	"github.com/genno-io/genno/internal/pkg/logger"
	"github.com/genno-io/genno/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// IngestSecretHeader carries the shared secret of the AI callback
const IngestSecretHeader = "X-Webhook-Secret"

// BlogHandler defines the interface for handling blog-related operations
type BlogHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	Get(ctx *gin.Context)
	Update(ctx *gin.Context)
	TogglePublish(ctx *gin.Context)
	Delete(ctx *gin.Context)
	GetPublished(ctx *gin.Context)
	Ingest(ctx *gin.Context)
}

type blogHandler struct {
	blogService  blogs.BlogService
	ingestSecret string
	logger       logger.Logger
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogService blogs.BlogService, ingestSecret string, logger logger.Logger) BlogHandler {
	return &blogHandler{
		blogService:  blogService,
		ingestSecret: ingestSecret,
		logger:       logger,
	}
}

// Create stores a blog written by the caller
func (handler *blogHandler) Create(ctx *gin.Context) {
	userID, _ := UserID(ctx)

	var req BlogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	blog, err := handler.blogService.Create(ctx, userID, req.toInput())
	if err != nil {
		abortWithError(ctx, err, "Failed to create blog")
		return
	}

	ctx.JSON(http.StatusCreated, newBlogResponse(blog))
}

// List fetches the caller's blogs, optionally filtered by ?published=all|published|draft
func (handler *blogHandler) List(ctx *gin.Context) {
	userID, _ := UserID(ctx)

	query := blogs.NewQuery(userID)
	if filter := ctx.Query("published"); len(filter) > 0 {
		query.Filter = filter
	}
	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}
	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = strutil.ConvertToInt(offset)
	}
	if err := query.Validate(); err != nil {
		badRequest(ctx, "Invalid query parameters", err)
		return
	}

	list, err := handler.blogService.List(ctx, query)
	if err != nil {
		abortWithError(ctx, err, "Failed to fetch blogs")
		return
	}

	resp := make([]BlogResponse, 0, len(list))
	for _, b := range list {
		resp = append(resp, newBlogResponse(b))
	}
	ctx.JSON(http.StatusOK, resp)
}

// Get fetches one of the caller's blogs by id or slug
func (handler *blogHandler) Get(ctx *gin.Context) {
	userID, _ := UserID(ctx)

	blog, err := handler.blogService.GetForOwner(ctx, userID, ctx.Param("ref"))
	if err != nil {
		abortWithError(ctx, err, "Blog not found")
		return
	}

	ctx.JSON(http.StatusOK, newBlogResponse(blog))
}

// Update replaces the editable fields of a blog
func (handler *blogHandler) Update(ctx *gin.Context) {
	userID, _ := UserID(ctx)

	var req BlogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	blog, err := handler.blogService.Update(ctx, userID, ctx.Param("ref"), req.toInput())
	if err != nil {
		abortWithError(ctx, err, "Failed to update blog")
		return
	}

	ctx.JSON(http.StatusOK, newBlogResponse(blog))
}

// TogglePublish flips the published flag
func (handler *blogHandler) TogglePublish(ctx *gin.Context) {
	userID, _ := UserID(ctx)

	blog, err := handler.blogService.TogglePublish(ctx, userID, ctx.Param("ref"))
	if err != nil {
		abortWithError(ctx, err, "Failed to update blog")
		return
	}

	ctx.JSON(http.StatusOK, newBlogResponse(blog))
}

// Delete removes a blog
func (handler *blogHandler) Delete(ctx *gin.Context) {
	userID, _ := UserID(ctx)

	if err := handler.blogService.Delete(ctx, userID, ctx.Param("ref")); err != nil {
		abortWithError(ctx, err, "Failed to delete blog")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetPublished serves a published blog to anonymous readers
func (handler *blogHandler) GetPublished(ctx *gin.Context) {
	public, err := handler.blogService.GetPublished(ctx, ctx.Param("slug"))
	if err != nil {
		abortWithError(ctx, err, "Blog not found")
		return
	}

	ctx.JSON(http.StatusOK, newPublicBlogResponse(public))
}

// Ingest stores a blog delivered by the AI service
func (handler *blogHandler) Ingest(ctx *gin.Context) {
	secret := ctx.GetHeader(IngestSecretHeader)
	if handler.ingestSecret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(handler.ingestSecret)) != 1 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req IngestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	blog, err := handler.blogService.Ingest(ctx, req.toInput())
	if err != nil {
		handler.logger.Error("blog ingest failed", "user_id", req.ClerkUserID, "error", err)
		abortWithError(ctx, err, "Failed to create blog")
		return
	}

	ctx.JSON(http.StatusOK, IngestResponse{
		Success: true,
		Message: "Blog created successfully",
		Blog:    newBlogResponse(blog),
	})
}
