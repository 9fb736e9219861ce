/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seednode/memorytour/tour"
)

func TestDoorRoutes(t *testing.T) {
	cat, err := tour.DefaultCatalog()
	require.NoError(t, err)
	assert.Equal(t, tour.DefaultRoutes, doorRoutes(cat))

	cat, err = tour.ParseCatalog([]byte(`
pages:
  - slug: junior
    scenes:
      - name: Chicago
`))
	require.NoError(t, err)
	assert.Equal(t, []tour.Route{{Keyword: "junior", Path: "/junior"}}, doorRoutes(cat))
}

func TestRegisterTourRejectsBadSlugs(t *testing.T) {
	for _, slug := range []string{"api", "healthz", "home", "ws"} {
		t.Run(slug, func(t *testing.T) {
			cat, err := tour.ParseCatalog([]byte("pages:\n  - slug: " + slug + "\n    scenes:\n      - name: Rome\n"))
			require.NoError(t, err)

			err = registerTour(testConfig(), cat, newSessionManager(0), httprouter.New())
			assert.ErrorContains(t, err, "collides")
		})
	}
}

func TestNewYearMapsBackgrounds(t *testing.T) {
	cfg := testConfig()
	cfg.prefix = "/tour"

	cat, err := tour.DefaultCatalog()
	require.NoError(t, err)

	page, ok := cat.Page("freshman")
	require.True(t, ok)

	screen, err := newYear(cfg, page)()
	require.NoError(t, err)

	g, ok := screen.(*tour.Gallery)
	require.True(t, ok)
	assert.Equal(t, "/tour/media/nyc.jpg", g.Scene().Background)
	assert.Equal(t, "nyc.jpg", page.Scenes[0].Background)
}

func TestNewHomeUsesCatalogRoutes(t *testing.T) {
	cat, err := tour.DefaultCatalog()
	require.NoError(t, err)

	screen, err := newHome(testConfig(), cat)()
	require.NoError(t, err)

	m, ok := screen.(*tour.Menu)
	require.True(t, ok)
	assert.Len(t, m.Doors(), len(tour.DoorLabels))
}
