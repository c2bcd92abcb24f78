package postindex

import (
	"crypto/subtle"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminEntry(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	entry, err := a.Store.GetEntryAny(slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, a.Views.AdminFormPartial(entry, CsrfToken(c)))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	title := strings.TrimSpace(c.FormValue("title"))
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+is+required.+Add+a+title+or+slug.")
	}
	date := strings.TrimSpace(c.FormValue("date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+date+format.+Use+YYYY-MM-DD.")
	}
	links := LinksFromForm(map[string]string{
		"EN": c.FormValue("url_en"),
		"RU": c.FormValue("url_ru"),
	})
	// The form only carries EN/RU fields; links in other languages
	// (imported documents may have any tag) must survive an edit.
	existing, err := a.Store.GetEntryAny(slug)
	switch {
	case err == nil:
		links = MergeFormLinks(existing.Links, links, "EN", "RU")
	case err != sql.ErrNoRows:
		return err
	}
	published := c.FormValue("published") != ""
	if err := a.Store.SaveEntry(Entry{
		Slug:      slug,
		Title:     title,
		Date:      date,
		Links:     links,
		Published: published,
	}); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	if err := a.Store.DeleteEntry(slug); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	entries, err := a.Store.ListAllEntries()
	if err != nil {
		return err
	}
	totals := map[string]int{}
	if a.clicksStore != nil {
		totals, err = a.clicksStore.TotalsBySlug()
		if err != nil {
			c.Logger().Errorf("click totals: %v", err)
			totals = map[string]int{}
		}
	}
	return Render(c, a.Views.AdminDashboard(entries, totals, msg, CsrfToken(c)))
}
