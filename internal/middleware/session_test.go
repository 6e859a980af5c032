package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		headerSent string
		cookieSent string
		want       string
	}{
		{name: "client-provided session id is kept", headerSent: "sess-existing", want: "sess-existing"},
		{name: "cookie fallback when header absent", cookieSent: "sess-cookie", want: "sess-cookie"},
		{name: "header wins over cookie", headerSent: "sess-header", cookieSent: "sess-cookie", want: "sess-header"},
		{name: "missing session id is generated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(SessionID())

			var seen string
			router.GET("/cart", func(c *gin.Context) {
				seen = GetSessionID(c)
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})

			req := httptest.NewRequest(http.MethodGet, "/cart", nil)
			if tt.headerSent != "" {
				req.Header.Set(SessionIDHeader, tt.headerSent)
			}
			if tt.cookieSent != "" {
				req.AddCookie(&http.Cookie{Name: SessionIDCookie, Value: tt.cookieSent})
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			echoed := w.Header().Get(SessionIDHeader)
			assert.NotEmpty(t, echoed)
			assert.Equal(t, echoed, seen)

			if tt.want != "" {
				assert.Equal(t, tt.want, echoed)
			} else {
				_, err := uuid.Parse(echoed)
				assert.NoError(t, err, "generated session id is a UUID")
			}
		})
	}
}

func TestGetSessionID_NoMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetSessionID(c))
}
