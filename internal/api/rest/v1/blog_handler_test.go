//go:build unit
// +build unit

package v1

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/genno-io/genno/internal/app"
	"github.com/genno-io/genno/internal/domain/blogs"
	"github.com/genno-io/genno/internal/domain/profiles"
	"github.com/genno-io/genno/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testIngestSecret = "ingest-secret-0123456789"

func newTestBlog(published bool) *blogs.Blog {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &blogs.Blog{
		ID:          "0b8f6a3e-4f16-4c3a-9d55-2f1f0c2b7a10",
		ClerkUserID: "user_1",
		Title:       "Hello World",
		Slug:        "hello-world-abcd1234",
		Content:     "# Hello",
		IsPublished: published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func newTestBlogHandler(t *testing.T) (BlogHandler, *MockBlogService) {
	mockService := new(MockBlogService)
	return NewBlogHandler(mockService, testIngestSecret, testutil.SetupTestLogger(t)), mockService
}

func TestBlogHandler_Create_Success(t *testing.T) {
	handler, mockService := newTestBlogHandler(t)

	mockService.On("Create", mock.Anything, "user_1", mock.MatchedBy(func(in *blogs.Input) bool {
		return in.Title == "Hello World" && len(in.Tags) == 1
	})).Return(newTestBlog(false), nil)

	c, w := testutil.NewJSONContext(t, http.MethodPost, "/blogs", BlogRequest{
		Title:   "Hello World",
		Content: "# Hello",
		Tags:    []string{"go"},
	})
	SetUserID(c, "user_1")

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := testutil.DecodeJSON(t, w)
	assert.Equal(t, "hello-world-abcd1234", body["slug"])
	assert.Equal(t, []any{}, body["tags"])
	mockService.AssertExpectations(t)
}

func TestBlogHandler_Create_MissingTitle(t *testing.T) {
	handler, mockService := newTestBlogHandler(t)

	c, w := testutil.NewJSONContext(t, http.MethodPost, "/blogs", `{"content": "body"}`)
	SetUserID(c, "user_1")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestBlogHandler_Create_SlugTaken(t *testing.T) {
	handler, mockService := newTestBlogHandler(t)

	mockService.On("Create", mock.Anything, "user_1", mock.Anything).Return(nil, blogs.ErrSlugTaken)

	c, w := testutil.NewJSONContext(t, http.MethodPost, "/blogs", BlogRequest{Title: "T", Content: "C", Slug: "taken"})
	SetUserID(c, "user_1")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, testutil.DecodeJSON(t, w), "details")
}

func TestBlogHandler_Create_InvalidFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed youtube url", `{"title":"T","content":"C","youtube_url":"not a url"}`},
		{"malformed thumbnail url", `{"title":"T","content":"C","thumbnail_url":"thumb"}`},
		{"tag too long", `{"title":"T","content":"C","tags":["` + strings.Repeat("x", 65) + `"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockService := newTestBlogHandler(t)

			c, w := testutil.NewJSONContext(t, http.MethodPost, "/blogs", tt.body)
			SetUserID(c, "user_1")

			handler.Create(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestBlogHandler_Create_InvalidBlogFromService(t *testing.T) {
	handler, mockService := newTestBlogHandler(t)

	mockService.On("Create", mock.Anything, "user_1", mock.Anything).Return(nil, fmt.Errorf("%w: Slug too long", blogs.ErrInvalid))

	c, w := testutil.NewJSONContext(t, http.MethodPost, "/blogs", BlogRequest{Title: "T", Content: "C"})
	SetUserID(c, "user_1")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, testutil.DecodeJSON(t, w)["details"], "invalid blog")
}

func TestBlogHandler_List_InvalidFilter(t *testing.T) {
	handler, mockService := newTestBlogHandler(t)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/blogs?published=sometimes", nil)
	SetUserID(c, "user_1")

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestBlogHandler_List_Published(t *testing.T) {
	handler, mockService := newTestBlogHandler(t)

	mockService.On("List", mock.Anything, mock.MatchedBy(func(q *blogs.Query) bool {
		return q.ClerkUserID == "user_1" && q.Filter == blogs.FilterPublished && q.Limit == 5
	})).Return([]*blogs.Blog{newTestBlog(true)}, nil)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/blogs?published=published&limit=5", nil)
	SetUserID(c, "user_1")

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hello-world-abcd1234")
	mockService.AssertExpectations(t)
}

func TestBlogHandler_Get_NotFound(t *testing.T) {
	handler, mockService := newTestBlogHandler(t)

	mockService.On("GetForOwner", mock.Anything, "user_1", "missing").Return(nil, blogs.ErrNotFound)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/blogs/missing", nil)
	c.Params = gin.Params{{Key: "ref", Value: "missing"}}
	SetUserID(c, "user_1")

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Blog not found", testutil.DecodeJSON(t, w)["error"])
}

func TestBlogHandler_TogglePublish(t *testing.T) {
	handler, mockService := newTestBlogHandler(t)
	blog := newTestBlog(true)

	mockService.On("TogglePublish", mock.Anything, "user_1", blog.ID).Return(blog, nil)

	c, w := testutil.NewJSONContext(t, http.MethodPost, "/blogs/"+blog.ID+"/publish", nil)
	c.Params = gin.Params{{Key: "ref", Value: blog.ID}}
	SetUserID(c, "user_1")

	handler.TogglePublish(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, testutil.DecodeJSON(t, w)["is_published"])
}

func TestBlogHandler_Delete(t *testing.T) {
	handler, mockService := newTestBlogHandler(t)

	mockService.On("Delete", mock.Anything, "user_1", "hello-world-abcd1234").Return(nil)

	c, w := testutil.NewJSONContext(t, http.MethodDelete, "/blogs/hello-world-abcd1234", nil)
	c.Params = gin.Params{{Key: "ref", Value: "hello-world-abcd1234"}}
	SetUserID(c, "user_1")

	handler.Delete(c)

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Empty(t, w.Body.String())
	mockService.AssertExpectations(t)
}

func TestBlogHandler_GetPublished_WithAuthor(t *testing.T) {
	handler, mockService := newTestBlogHandler(t)
	first := "Ada"

	mockService.On("GetPublished", mock.Anything, "hello-world-abcd1234").Return(&blogs.PublicBlog{
		Blog:   newTestBlog(true),
		Author: &profiles.Profile{ClerkUserID: "user_1", FirstName: &first},
	}, nil)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/public/blogs/hello-world-abcd1234", nil)
	c.Params = gin.Params{{Key: "slug", Value: "hello-world-abcd1234"}}

	handler.GetPublished(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := testutil.DecodeJSON(t, w)
	author, ok := body["author"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "Ada", author["display_name"])
}

func TestBlogHandler_Ingest(t *testing.T) {
	tests := []struct {
		name           string
		secret         string
		body           any
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "wrong secret",
			secret:         "nope",
			body:           IngestRequest{ClerkUserID: "user_1"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing secret",
			body:           IngestRequest{ClerkUserID: "user_1"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing fields",
			secret:         testIngestSecret,
			body:           IngestRequest{ClerkUserID: "user_1"},
			serviceErr:     app.ErrMissingField,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "oversized field",
			secret: testIngestSecret,
			body: IngestRequest{
				BlogRequest: BlogRequest{Title: strings.Repeat("t", 501), Content: "# Hello"},
				ClerkUserID: "user_1",
			},
			serviceErr:     blogs.ErrInvalid,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "created",
			secret: testIngestSecret,
			body: IngestRequest{
				BlogRequest:  BlogRequest{Title: "Hello World", Content: "# Hello"},
				ClerkUserID:  "user_1",
				ConversionID: "conv-1",
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockService := newTestBlogHandler(t)
			if tt.serviceErr != nil {
				mockService.On("Ingest", mock.Anything, mock.Anything).Return(nil, tt.serviceErr)
			} else {
				mockService.On("Ingest", mock.Anything, mock.MatchedBy(func(in *blogs.IngestInput) bool {
					return in.ClerkUserID == "user_1" && in.ConversionID == "conv-1"
				})).Return(newTestBlog(false), nil)
			}

			c, w := testutil.NewJSONContext(t, http.MethodPost, "/blogs/ingest", tt.body)
			if tt.secret != "" {
				c.Request.Header.Set(IngestSecretHeader, tt.secret)
			}

			handler.Ingest(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusUnauthorized {
				mockService.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything)
			}
			if tt.expectedStatus == http.StatusOK {
				body := testutil.DecodeJSON(t, w)
				assert.Equal(t, true, body["success"])
				assert.Equal(t, "Blog created successfully", body["message"])
			}
		})
	}
}
