package router

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/spotifyapp/pkg/spotifyapp/view"
)

func text(s string) Producer {
	return func(*Context) view.Node { return view.Text{Text: s} }
}

func testTable() *Table {
	return NewTable("home").
		Register("login", text("login")).
		Register("home", text("home")).
		Register("search", text("search")).
		Register("library", text("library"))
}

func newTestNavigator(t *testing.T, opts ...Option) *Navigator {
	t.Helper()
	nav, err := NewNavigator(testTable(), opts...)
	require.NoError(t, err)
	return nav
}

func TestNavigatorStartsAtStartRoute(t *testing.T) {
	nav := newTestNavigator(t)

	assert.Equal(t, Route("home"), nav.Current())
	assert.Equal(t, []Route{"home"}, nav.BackStack())
	assert.False(t, nav.CanGoBack())
}

func TestNavigateBackScenario(t *testing.T) {
	nav := newTestNavigator(t)

	require.NoError(t, nav.Navigate("search"))
	assert.Equal(t, []Route{"home", "search"}, nav.BackStack())

	assert.True(t, nav.Back())
	assert.Equal(t, []Route{"home"}, nav.BackStack())

	assert.False(t, nav.Back())
	assert.Equal(t, []Route{"home"}, nav.BackStack())
}

func TestNavigateToCurrentIsNoop(t *testing.T) {
	var published []Route
	nav := newTestNavigator(t)
	nav.Subscribe(func(r Route) { published = append(published, r) })

	require.NoError(t, nav.Navigate("home"))
	require.NoError(t, nav.Navigate("library"))
	require.NoError(t, nav.Navigate("library"))

	assert.Equal(t, []Route{"home", "library"}, nav.BackStack())
	assert.Equal(t, []Route{"library"}, published)
}

func TestNavigateUnknownRoute(t *testing.T) {
	var rejected []Route
	nav := newTestNavigator(t, WithHooks(Hooks{
		OnRejected: func(r Route, err error) { rejected = append(rejected, r) },
	}))

	err := nav.Navigate("settings")
	require.Error(t, err)
	assert.True(t, IsRouteNotFound(err))

	var notFound *RouteNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, Route("settings"), notFound.Route)

	assert.Equal(t, []Route{"home"}, nav.BackStack())
	assert.Equal(t, []Route{"settings"}, rejected)

	err = nav.Replace("settings")
	assert.True(t, IsRouteNotFound(err))
	assert.Equal(t, []Route{"home"}, nav.BackStack())
}

func TestReplace(t *testing.T) {
	var transitions []Transition
	nav := newTestNavigator(t, WithHooks(Hooks{
		OnTransition: func(tr Transition) { transitions = append(transitions, tr) },
	}))

	require.NoError(t, nav.Navigate("login"))
	require.NoError(t, nav.Replace("home"))

	assert.Equal(t, []Route{"home", "home"}, nav.BackStack())
	require.Len(t, transitions, 2)
	assert.Equal(t, Transition{Kind: TransitionReplace, From: "login", To: "home", Depth: 2}, transitions[1])

	assert.True(t, nav.Back())
	assert.Equal(t, Route("home"), nav.Current())
}

func TestSubscribersSeeEveryTransitionInOrder(t *testing.T) {
	nav := newTestNavigator(t)

	var order []string
	nav.Subscribe(func(r Route) { order = append(order, "a:"+string(r)) })
	unsubscribe := nav.Subscribe(func(r Route) { order = append(order, "b:"+string(r)) })

	require.NoError(t, nav.Navigate("search"))
	unsubscribe()
	nav.Back()

	assert.Equal(t, []string{"a:search", "b:search", "a:home"}, order)
}

func TestResumeSurvivesBackNavigation(t *testing.T) {
	nav := newTestNavigator(t)

	nav.SetResume(12)
	require.NoError(t, nav.Navigate("library"))
	assert.Nil(t, nav.Resume())

	nav.Back()
	assert.Equal(t, 12, nav.Resume())

	var seen any
	table := NewTable("home").Register("home", func(ctx *Context) view.Node {
		seen = ctx.Resume()
		return nil
	})
	other, err := NewNavigator(table)
	require.NoError(t, err)
	other.SetResume("scroll")
	other.Render()
	assert.Equal(t, "scroll", seen)
}

func TestContextExpiresAfterRender(t *testing.T) {
	var kept *Context
	table := NewTable("home").
		Register("home", func(ctx *Context) view.Node {
			kept = ctx
			return nil
		}).
		Register("search", text("search"))

	nav, err := NewNavigator(table)
	require.NoError(t, err)
	nav.Render()

	require.NotNil(t, kept)
	assert.True(t, kept.Expired())
	assert.ErrorIs(t, kept.Navigate("search"), ErrContextExpired)
	assert.ErrorIs(t, kept.Back(), ErrContextExpired)
	assert.ErrorIs(t, kept.Replace("search"), ErrContextExpired)
	assert.Equal(t, []Route{"home"}, nav.BackStack())
}

func TestContextNavigatesDuringRender(t *testing.T) {
	table := NewTable("home").
		Register("home", func(ctx *Context) view.Node {
			_ = ctx.Navigate("search")
			return nil
		}).
		Register("search", text("search"))

	nav, err := NewNavigator(table)
	require.NoError(t, err)
	nav.Render()

	assert.Equal(t, Route("search"), nav.Current())
}

func TestWithStart(t *testing.T) {
	nav := newTestNavigator(t, WithStart("library"))
	assert.Equal(t, []Route{"library"}, nav.BackStack())

	nav = newTestNavigator(t, WithStart("nowhere"))
	assert.Equal(t, []Route{"home"}, nav.BackStack())
}

func TestWithStartWarnsRegardlessOfOptionOrder(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	nav := newTestNavigator(t, WithStart("nowhere"), WithLogger(logger))
	assert.Equal(t, Route("home"), nav.Current())
	assert.Contains(t, buf.String(), "deep link to unknown route")
	assert.Contains(t, buf.String(), "route=nowhere")
}

func TestApplyUnknownEvent(t *testing.T) {
	nav := newTestNavigator(t)

	err := nav.Apply(nil)
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestStackNeverEmpties(t *testing.T) {
	nav := newTestNavigator(t)
	events := []Event{
		Back{}, Navigate{To: "search"}, Back{}, Back{}, Replace{To: "library"},
		Navigate{To: "nowhere"}, Back{}, Navigate{To: "home"}, Back{}, Back{},
	}

	for _, ev := range events {
		_ = nav.Apply(ev)
		assert.GreaterOrEqual(t, nav.Depth(), 1)
		assert.True(t, nav.Table().Has(nav.Current()))
	}
}
