package screens

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/loader"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/router"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/theme"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/ui"
	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

func find[T view.Node](root view.Node) []T {
	var out []T
	view.Walk(root, func(n view.Node) bool {
		if v, ok := n.(T); ok {
			out = append(out, v)
		}
		return true
	})
	return out
}

func texts(root view.Node) []string {
	var out []string
	for _, t := range find[view.Text](root) {
		out = append(out, t.Text)
	}
	return out
}

func imageFetcher(fail bool) loader.Fetcher {
	return loader.FetcherFunc(func(ctx context.Context, url string) (*loader.Image, error) {
		if fail {
			return nil, loader.NewResourceLoadError(url, "status", errors.New("unexpected status 404 Not Found"))
		}
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		return &loader.Image{URL: url, Width: 4, Height: 4, Decoded: img}, nil
	})
}

type fixture struct {
	loop   *ui.Loop
	loader *loader.Loader
	nav    *router.Navigator
	tree   *view.Tree
}

func newFixture(t *testing.T, fail bool) *fixture {
	t.Helper()
	return newAuthFixture(t, fail, nil)
}

func newAuthFixture(t *testing.T, fail bool, auth Authenticator) *fixture {
	t.Helper()

	loop := ui.NewLoop()
	l := loader.New(loader.Options{Fetcher: imageFetcher(fail), Poster: loop})
	t.Cleanup(l.Close)

	nav, err := router.NewNavigator(Graph(Deps{
		Loader:  l,
		Theme:   theme.Dark(""),
		Catalog: DemoCatalog(),
		Auth:    auth,
	}))
	require.NoError(t, err)

	rev := view.NewCell(0)
	nav.Subscribe(func(router.Route) { rev.Update(func(v int) int { return v + 1 }) })

	tree := view.Mount(view.Component{Render: func(s *view.Scope) view.Node {
		view.Watch(s, rev)
		return nav.Render()
	}}, loop)
	t.Cleanup(tree.Unmount)

	return &fixture{loop: loop, loader: l, nav: nav, tree: tree}
}

// settle drains the loop until every image on screen left the loading state.
func (f *fixture) settle(t *testing.T) view.Node {
	t.Helper()
	require.Eventually(t, func() bool {
		f.loop.Drain()
		return f.loader.Stats().Fetches > 0 && len(find[view.Image](f.tree.Resolve()))+len(retryButtons(f.tree.Resolve())) == 7
	}, time.Second, 2*time.Millisecond)
	return f.tree.Resolve()
}

func retryButtons(root view.Node) []view.Button {
	var out []view.Button
	for _, b := range find[view.Button](root) {
		if _, ok := b.Action.(RetryImage); ok {
			out = append(out, b)
		}
	}
	return out
}

func TestGraphRegistersEveryRoute(t *testing.T) {
	l := loader.New(loader.Options{Fetcher: imageFetcher(false)})
	defer l.Close()

	table := Graph(Deps{Loader: l})
	require.NoError(t, table.Freeze())

	assert.Equal(t, Home, table.Start())
	assert.Equal(t, []router.Route{Login, Register, Home, Search, Library}, table.Routes())
	assert.Panics(t, func() { Graph(Deps{}) })
}

func TestHomeRendersCatalog(t *testing.T) {
	f := newFixture(t, false)
	root := f.settle(t)

	all := texts(root)
	catalog := DemoCatalog()
	assert.Contains(t, all, catalog.Hero.Title)
	assert.Contains(t, all, catalog.Hero.Subtitle)
	assert.Contains(t, all, catalog.Hero.Meta)
	for i, track := range catalog.Tracks {
		assert.Contains(t, all, track.Title)
		assert.Contains(t, all, track.Artists)
		assert.Contains(t, all, track.Duration)
		assert.Contains(t, all, string(rune('1'+i)))
	}
	assert.Contains(t, all, "CB")

	// hero, five covers and the now-playing cover
	images := find[view.Image](root)
	assert.Len(t, images, 7)
	for _, img := range images {
		assert.NotNil(t, img.Source)
	}
	assert.Equal(t, int64(6), f.loader.Stats().Fetches, "the now-playing cover shares the last track's fetch")

	lists := find[view.List](root)
	require.Len(t, lists, 1)
	assert.Equal(t, HomeListKey, lists[0].Key)
}

func TestHomeShowsErrorPlaceholders(t *testing.T) {
	f := newFixture(t, true)
	root := f.settle(t)

	retries := retryButtons(root)
	require.Len(t, retries, 7)
	assert.Empty(t, find[view.Image](root))
	assert.Contains(t, texts(root), "Could not load the image", "the hero shows the error message")
	assert.Equal(t, RetryImage{URL: DemoCatalog().Hero.ImageURL}, retries[0].Action)
}

func TestImagesAreReleasedWhenLeavingHome(t *testing.T) {
	f := newFixture(t, false)
	f.settle(t)
	require.Equal(t, 0, f.loader.Stats().Idle)

	require.NoError(t, f.nav.Navigate(Search))
	f.loop.Drain()

	assert.Equal(t, 6, f.loader.Stats().Idle)
	assert.Contains(t, texts(f.tree.Resolve()), "Search screen")
}

func TestBottomBarSelectionMatchesRoute(t *testing.T) {
	f := newFixture(t, false)

	for _, route := range []router.Route{Home, Search, Library, Search, Home} {
		require.NoError(t, f.nav.Navigate(route))
		f.loop.Drain()

		var selected []view.Button
		buttons := find[view.Button](f.tree.Resolve())
		for _, b := range buttons {
			if b.Selected {
				selected = append(selected, b)
			}
		}
		require.Len(t, selected, 1, route)
		assert.Nil(t, selected[0].Action, "the current tab dispatches nothing")

		var targets []router.Route
		for _, b := range buttons {
			if nav, ok := b.Action.(router.Navigate); ok && IsTopLevel(nav.To) {
				targets = append(targets, nav.To)
			}
		}
		assert.Len(t, targets, len(TopLevel)-1)
		assert.NotContains(t, targets, route)
	}
}

func submitButton(t *testing.T, root view.Node) view.Button {
	t.Helper()
	for _, b := range find[view.Button](root) {
		if _, ok := b.Action.(LoginSubmitted); ok {
			return b
		}
	}
	t.Fatal("no submit button")
	return view.Button{}
}

func TestLoginButtonFollowsGate(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.nav.Navigate(Login))
	f.loop.Drain()

	submit := func() view.Button { return submitButton(t, f.tree.Resolve()) }

	fields := find[view.TextField](f.tree.Resolve())
	require.Len(t, fields, 2)
	assert.False(t, fields[0].Masked)
	assert.True(t, fields[1].Masked)
	assert.True(t, submit().Disabled)

	fields[0].Value.Set("ana@example.com")
	f.loop.Drain()
	assert.True(t, submit().Disabled)

	fields[1].Value.Set("   ")
	f.loop.Drain()
	assert.True(t, submit().Disabled)

	fields[1].Value.Set("secret")
	f.loop.Drain()
	b := submit()
	assert.False(t, b.Disabled)
	assert.Equal(t, LoginSubmitted{Email: "ana@example.com", Password: "secret"}, b.Action)
}

func TestLoginButtonUsesConfiguredAuthenticator(t *testing.T) {
	var calls []string
	f := newAuthFixture(t, false, AuthenticatorFunc(func(email, password string) error {
		calls = append(calls, email)
		if email != "admin" {
			return &ValidationError{Field: "email"}
		}
		return nil
	}))
	require.NoError(t, f.nav.Navigate(Login))
	f.loop.Drain()

	fields := find[view.TextField](f.tree.Resolve())
	require.Len(t, fields, 2)
	fields[0].Value.Set("ana@example.com")
	fields[1].Value.Set("secret")
	f.loop.Drain()

	assert.True(t, submitButton(t, f.tree.Resolve()).Disabled)
	assert.Contains(t, calls, "ana@example.com")

	fields[0].Value.Set("admin")
	f.loop.Drain()
	assert.False(t, submitButton(t, f.tree.Resolve()).Disabled)
}

func TestRegisterLinksBackToLogin(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.nav.Navigate(Register))
	f.loop.Drain()

	var actions []view.Action
	for _, b := range find[view.Button](f.tree.Resolve()) {
		actions = append(actions, b.Action)
	}
	assert.Equal(t, []view.Action{router.Back{}}, actions)

	nav, err := router.NewNavigator(Graph(Deps{Loader: f.loader}), router.WithStart(Register))
	require.NoError(t, err)
	buttons := find[view.Button](nav.Render())
	require.Len(t, buttons, 1)
	assert.Equal(t, router.Replace{To: Login}, buttons[0].Action)
}
