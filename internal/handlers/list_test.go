package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/selatcheck/dashboard/internal/dto"
)

type userPage struct {
	Data []struct {
		Username string `json:"username"`
	} `json:"data"`
	Meta dto.ListMeta `json:"meta"`
}

func getUserPage(t *testing.T, app *fiber.App, token, query string) userPage {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users"+query, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var page userPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	return page
}

func TestListPagesSecondPage(t *testing.T) {
	app, _ := newTestApp(t)
	out := login(t, app)

	page := getUserPage(t, app, out.Token, "?page=2")
	if page.Meta.Page != 2 || page.Meta.Total != 15 || page.Meta.PageCount != 2 {
		t.Fatalf("meta: %+v", page.Meta)
	}
	if len(page.Data) != 5 || page.Data[0].Username != "clerk-11" {
		t.Errorf("second page window: %+v", page.Data)
	}
}

// A page param navigates within an active search, and the meta the
// endpoint reports must describe pages it will actually serve.
func TestListPagesWithinSearch(t *testing.T) {
	app, _ := newTestApp(t)
	out := login(t, app)

	page := getUserPage(t, app, out.Token, "?search=clerk&page=2")
	if page.Meta.Page != 2 {
		t.Fatalf("meta.page = %d, want 2", page.Meta.Page)
	}
	if page.Meta.Total != 15 || page.Meta.PageCount != 2 {
		t.Errorf("meta: %+v", page.Meta)
	}
	if page.Meta.HasNext || !page.Meta.HasPrevious {
		t.Errorf("nav flags on the last page: %+v", page.Meta)
	}
	if len(page.Data) != 5 || page.Data[0].Username != "clerk-11" {
		t.Errorf("filtered second page window: %+v", page.Data)
	}
}

func TestListSearchStartsAtPageOne(t *testing.T) {
	app, _ := newTestApp(t)
	out := login(t, app)

	page := getUserPage(t, app, out.Token, "?search=clerk-1")
	// Zero-padded names, so clerk-1 matches clerk-10..clerk-15 only.
	if page.Meta.Page != 1 || page.Meta.Total != 6 || page.Meta.PageCount != 1 {
		t.Fatalf("meta: %+v", page.Meta)
	}
	if page.Meta.HasNext || page.Meta.HasPrevious {
		t.Errorf("nav flags on a single page: %+v", page.Meta)
	}
}

func TestListOutOfRangePageIgnored(t *testing.T) {
	app, _ := newTestApp(t)
	out := login(t, app)

	page := getUserPage(t, app, out.Token, "?search=clerk&page=9")
	if page.Meta.Page != 1 {
		t.Errorf("out-of-range page moved the window: %+v", page.Meta)
	}
	if len(page.Data) != 10 {
		t.Errorf("window size = %d, want 10", len(page.Data))
	}
}
