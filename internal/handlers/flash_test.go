package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopFlash(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		want   *Flash
	}{
		{name: "no cookie", cookie: "", want: nil},
		{name: "success", cookie: url.QueryEscape("success|Saved"), want: &Flash{Kind: "success", Message: "Saved"}},
		{name: "error", cookie: url.QueryEscape("error|Failed to delete."), want: &Flash{Kind: "error", Message: "Failed to delete."}},
		{name: "unknown kind", cookie: url.QueryEscape("weird|Hello"), want: &Flash{Kind: "error", Message: "Hello"}},
		{name: "no separator", cookie: "garbage", want: nil},
		{name: "bad escape", cookie: "%zz", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *Flash

			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				got = popFlash(c)
				return nil
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: flashCookie, Value: tt.cookie})
			}

			_, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
