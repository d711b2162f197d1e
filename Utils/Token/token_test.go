package Token

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithHeader(header string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}
	return c
}

func TestGenerateAndExtract(t *testing.T) {
	os.Setenv("API_SECRET", "test-secret")
	os.Setenv("TOKEN_HOUR_LIFESPAN", "1")

	token, err := GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	c := contextWithHeader("Bearer " + token)
	require.NoError(t, TokenValid(c))

	uid, err := ExtractTokenID(c)
	require.NoError(t, err)
	assert.EqualValues(t, 42, uid)
}

func TestTamperedTokenRejected(t *testing.T) {
	os.Setenv("API_SECRET", "test-secret")

	token, err := GenerateToken(7)
	require.NoError(t, err)

	c := contextWithHeader("Bearer " + token + "x")
	assert.Error(t, TokenValid(c))

	_, err = ExtractTokenID(c)
	assert.Error(t, err)
}

func TestTokenFromQueryParam(t *testing.T) {
	os.Setenv("API_SECRET", "test-secret")

	token, err := GenerateToken(9)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?token="+token, nil)

	uid, err := ExtractTokenID(c)
	require.NoError(t, err)
	assert.EqualValues(t, 9, uid)
}

func TestMissingTokenRejected(t *testing.T) {
	c := contextWithHeader("")
	assert.Error(t, TokenValid(c))
}
