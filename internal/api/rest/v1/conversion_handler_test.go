//go:build unit
// +build unit

package v1

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/genno-io/genno/internal/domain/conversions"
	"github.com/genno-io/genno/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testVideoURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func TestConversionHandler_Submit(t *testing.T) {
	tests := []struct {
		name            string
		serviceErr      error
		expectedStatus  int
		expectedMessage string
	}{
		{name: "submitted", expectedStatus: http.StatusCreated},
		{name: "invalid url", serviceErr: conversions.ErrInvalidURL, expectedStatus: http.StatusBadRequest, expectedMessage: "Invalid YouTube URL"},
		{name: "webhook down", serviceErr: fmt.Errorf("%w: 503", conversions.ErrWebhookFailed), expectedStatus: http.StatusBadGateway, expectedMessage: "Conversion service unavailable, your credit was refunded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockConversionService)
			handler := NewConversionHandler(mockService, testutil.SetupTestLogger(t))

			if tt.serviceErr != nil {
				mockService.On("Submit", mock.Anything, "user_1", testVideoURL).Return(nil, tt.serviceErr)
			} else {
				conversion := conversions.New("user_1", testVideoURL, time.Now().UTC())
				conversion.Status = conversions.StatusSubmitted
				mockService.On("Submit", mock.Anything, "user_1", testVideoURL).Return(conversion, nil)
			}

			c, w := testutil.NewJSONContext(t, http.MethodPost, "/conversions", ConversionRequest{YoutubeURL: testVideoURL})
			SetUserID(c, "user_1")

			handler.Submit(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := testutil.DecodeJSON(t, w)
			if tt.expectedMessage != "" {
				assert.Equal(t, tt.expectedMessage, body["error"])
			} else {
				assert.Equal(t, conversions.StatusSubmitted, body["status"])
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestConversionHandler_Submit_MissingURL(t *testing.T) {
	mockService := new(MockConversionService)
	handler := NewConversionHandler(mockService, testutil.SetupTestLogger(t))

	c, w := testutil.NewJSONContext(t, http.MethodPost, "/conversions", `{}`)
	SetUserID(c, "user_1")

	handler.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestConversionHandler_List_Empty(t *testing.T) {
	mockService := new(MockConversionService)
	handler := NewConversionHandler(mockService, testutil.SetupTestLogger(t))

	mockService.On("List", mock.Anything, "user_1").Return([]*conversions.Conversion{}, nil)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/conversions", nil)
	SetUserID(c, "user_1")

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestConversionHandler_Get_OtherUser(t *testing.T) {
	mockService := new(MockConversionService)
	handler := NewConversionHandler(mockService, testutil.SetupTestLogger(t))

	mockService.On("Get", mock.Anything, "user_2", "conv-1").Return(nil, conversions.ErrNotFound)

	c, w := testutil.NewJSONContext(t, http.MethodGet, "/conversions/conv-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "conv-1"}}
	SetUserID(c, "user_2")

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
