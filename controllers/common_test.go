package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func formContext(t *testing.T, values url.Values) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req
	return c
}

func TestFormBool(t *testing.T) {
	t.Run("submitted true", func(t *testing.T) {
		c := formContext(t, url.Values{"isFeatured": {"true"}})
		got := formBool(c, "isFeatured")
		if got == nil || !*got {
			t.Fatalf("got %v, want true", got)
		}
	})

	t.Run("submitted false", func(t *testing.T) {
		c := formContext(t, url.Values{"isFeatured": {"false"}})
		got := formBool(c, "isFeatured")
		if got == nil || *got {
			t.Fatalf("got %v, want false", got)
		}
	})

	t.Run("omitted field stays nil so the stored flag survives", func(t *testing.T) {
		// A stock-only edit must not reset feature flags.
		c := formContext(t, url.Values{"stock": {"5"}})
		if got := formBool(c, "isFeatured"); got != nil {
			t.Fatalf("got %v, want nil", *got)
		}
		if got := formBool(c, "isWeeklySpecial"); got != nil {
			t.Fatalf("got %v, want nil", *got)
		}
	})
}

func TestFormInt(t *testing.T) {
	t.Run("submitted value", func(t *testing.T) {
		c := formContext(t, url.Values{"priority": {"7"}})
		got := formInt(c, "priority")
		if got == nil || *got != 7 {
			t.Fatalf("got %v, want 7", got)
		}
	})

	t.Run("zero is a real value", func(t *testing.T) {
		c := formContext(t, url.Values{"priority": {"0"}})
		got := formInt(c, "priority")
		if got == nil || *got != 0 {
			t.Fatalf("got %v, want 0", got)
		}
	})

	t.Run("omitted, empty and unparseable count as omitted", func(t *testing.T) {
		for name, values := range map[string]url.Values{
			"omitted":     {"name": {"Produce"}},
			"empty":       {"priority": {""}},
			"unparseable": {"priority": {"high"}},
		} {
			c := formContext(t, values)
			if got := formInt(c, "priority"); got != nil {
				t.Errorf("%s: got %v, want nil", name, *got)
			}
		}
	})
}
