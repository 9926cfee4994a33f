package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Janussr/jsr-casino-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func TestServiceErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("game %w", services.ErrNotFound), http.StatusNotFound},
		{"invalid state", fmt.Errorf("%w: game already finished", services.ErrInvalidState), http.StatusBadRequest},
		{"forbidden", fmt.Errorf("%w: game is not finished yet", services.ErrForbidden), http.StatusForbidden},
		{"unauthorized", services.ErrUnauthorized, http.StatusUnauthorized},
		{"generic", fmt.Errorf("username already exists"), http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			serviceError(c, tc.err)

			if w.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestPathIDRejectsGarbage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	if _, ok := pathID(c, "id"); ok {
		t.Fatal("expected failure for non-numeric id")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
