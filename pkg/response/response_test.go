package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/fatflowers/texttopay/pkg/apperr"
)

func TestError_MapsStatusAndBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		code int
		body string
	}{
		{apperr.Validation("Name and phone are required"), http.StatusBadRequest, `{"error":"Name and phone are required"}`},
		{apperr.Configuration("Worldpay credentials not configured"), http.StatusInternalServerError, `{"error":"Worldpay credentials not configured"}`},
		{errors.New("boom"), http.StatusInternalServerError, `{"error":"boom"}`},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		Error(c, tc.err)
		require.Equal(t, tc.code, w.Code)
		require.JSONEq(t, tc.body, w.Body.String())
	}
}

func TestRaw(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Raw(c, http.StatusOK, []byte(`{"id":"cus_1"}`))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"id":"cus_1"}`, w.Body.String())
	require.Contains(t, w.Header().Get("Content-Type"), "application/json")
}
