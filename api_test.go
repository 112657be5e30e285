package hodlbank

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testGetContext(w *httptest.ResponseRecorder, params gin.Params) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)
	c.Params = params
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c
}

func TestGetTokenErrors(t *testing.T) {
	b, _ := newVestedBank(t, "alice")

	// a missing token is the client's problem
	w := httptest.NewRecorder()
	c := testGetContext(w, gin.Params{{Key: "symbol", Value: "NOPE,4"}})
	b.getToken(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrTokenNotExist.Error())

	// a broken db is not
	b.wdb.Close()
	w = httptest.NewRecorder()
	c = testGetContext(w, gin.Params{{Key: "symbol", Value: testSymbol}})
	b.getToken(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetAccountErrors(t *testing.T) {
	b, _ := newVestedBank(t, "alice")

	w := httptest.NewRecorder()
	c := testGetContext(w, gin.Params{
		{Key: "owner", Value: "nobody"},
		{Key: "symbol", Value: testSymbol},
	})
	b.getAccount(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrAccountNotExist.Error())

	b.wdb.Close()
	w = httptest.NewRecorder()
	c = testGetContext(w, gin.Params{
		{Key: "owner", Value: "alice"},
		{Key: "symbol", Value: testSymbol},
	})
	b.getAccount(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
