/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/Seednode/memorytour/tour"
)

const homePage = "home"

// reservedSlugs collide with fixed routes and cannot name a year page.
var reservedSlugs = map[string]bool{
	"api": true, "assets": true, "favicons": true, "healthz": true, "media": true,
	"metrics": true, "pprof": true, "qr": true, "robots.txt": true, "version": true, "ws": true,
}

// doorRoutes keeps the default door routes whose page exists in the catalog.
func doorRoutes(cat *tour.Catalog) []tour.Route {
	routes := make([]tour.Route, 0, len(tour.DefaultRoutes))
	for _, r := range tour.DefaultRoutes {
		if _, ok := cat.Page(r.Path[1:]); ok {
			routes = append(routes, r)
		}
	}

	return routes
}

func newHome(cfg *Config, cat *tour.Catalog) func() (tour.Screen, error) {
	routes := doorRoutes(cat)

	return func() (tour.Screen, error) {
		m := tour.NewMenu(tour.DoorLabels, routes, cfg.navDelay)

		m.OnClick(func(label, route string) {
			if route == "" {
				route = "none"
			}
			doorClicksTotal.WithLabelValues(route).Inc()
			logf(cfg, "TOUR: %s clicked, routing to %s", label, route)
		})

		return m, nil
	}
}

func newYear(cfg *Config, page tour.Page) func() (tour.Screen, error) {
	scenes := make([]tour.Scene, len(page.Scenes))
	for i, s := range page.Scenes {
		scenes[i] = tour.Scene{Name: s.Name, Background: mediaURL(cfg, s.Background)}
	}

	return func() (tour.Screen, error) {
		g, err := tour.NewGallery(scenes, page.Answers)
		if err != nil {
			return nil, err
		}

		g.OnGuess(func(scene int, result tour.GuessResult, unlocked bool) {
			guessesTotal.WithLabelValues(page.Slug, result.String()).Inc()
			if unlocked {
				scenesSolvedTotal.WithLabelValues(page.Slug).Inc()
				logf(cfg, "TOUR: Unlocked %q on %s", scenes[scene].Name, page.Slug)
			}
		})

		return g, nil
	}
}

// registerTour sets up routes so that:
//   - /            → door menu
//   - /ws          → websocket for the door menu
//   - /:slug       → year page, one per catalog page
//   - /:slug/ws    → websocket for that year page
func registerTour(cfg *Config, cat *tour.Catalog, sm *SessionManager, mux *httprouter.Router) error {
	base := pageData{
		Prefix:    cfg.prefix,
		Favicon:   template.HTML(getFavicon(cfg)),
		Music:     mediaURL(cfg, cat.Music),
		DoorSound: mediaURL(cfg, cat.DoorSound),
	}

	home := base
	home.Title = "Memory Tour"
	mux.GET(cfg.prefix+"/", servePage(cfg, "home.html", home))
	mux.GET(cfg.prefix+"/ws", serveWS(cfg, sm, homePage, newHome(cfg, cat)))

	for _, p := range cat.Pages {
		if strings.ContainsAny(p.Slug, "/:*?# ") {
			return fmt.Errorf("catalog page %q is not a valid path segment", p.Slug)
		}
		if reservedSlugs[p.Slug] || p.Slug == homePage {
			return fmt.Errorf("catalog page %q collides with a built-in route", p.Slug)
		}

		year := base
		year.Title = p.Title
		if year.Title == "" {
			year.Title = p.Slug
		}
		year.Slug = p.Slug

		mux.GET(cfg.prefix+"/"+p.Slug, servePage(cfg, "page.html", year))
		mux.GET(cfg.prefix+"/"+p.Slug+"/ws", serveWS(cfg, sm, p.Slug, newYear(cfg, p)))
	}

	return nil
}
