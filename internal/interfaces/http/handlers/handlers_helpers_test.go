package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"payday.backend/internal/interfaces/http/middleware"
)

const handlerTestWallet = "0x1111111111111111111111111111111111111111"

// newHandlerRouter returns a router that injects the test wallet the way the
// auth middleware would.
func newHandlerRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.WalletAddressKey, handlerTestWallet)
	})
	return r
}

// newAnonymousRouter returns a router with no authenticated wallet.
func newAnonymousRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func performJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
