package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/ingest", IngestAuth(secret), func(c *gin.Context) {
		clientID := c.GetString("clientID")
		c.JSON(http.StatusOK, gin.H{"client_id": clientID})
	})
	return r
}

func doIngest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/ingest", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIngestAuth_DisabledWithoutSecret(t *testing.T) {
	r := newProtectedRouter("")

	w := doIngest(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIngestAuth_ValidToken(t *testing.T) {
	const secret = "test-secret"

	token, err := GenerateClientToken(secret, "scraper-eu-1", time.Hour)
	require.NoError(t, err)

	r := newProtectedRouter(secret)
	w := doIngest(r, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "scraper-eu-1")
}

func TestIngestAuth_MissingHeader(t *testing.T) {
	r := newProtectedRouter("test-secret")

	w := doIngest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIngestAuth_MalformedHeader(t *testing.T) {
	r := newProtectedRouter("test-secret")

	w := doIngest(r, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIngestAuth_WrongSecret(t *testing.T) {
	token, err := GenerateClientToken("other-secret", "scraper-eu-1", time.Hour)
	require.NoError(t, err)

	r := newProtectedRouter("test-secret")
	w := doIngest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIngestAuth_ExpiredToken(t *testing.T) {
	const secret = "test-secret"

	token, err := GenerateClientToken(secret, "scraper-eu-1", -time.Minute)
	require.NoError(t, err)

	r := newProtectedRouter(secret)
	w := doIngest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerateClientToken_RequiresClientID(t *testing.T) {
	_, err := GenerateClientToken("secret", "", time.Hour)
	assert.Error(t, err)
}
