package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tevify/tevify/catalog"
	"github.com/tevify/tevify/engine"
)

type fakeEngine struct {
	opened engine.Source
	closed bool
}

func (f *fakeEngine) Open(_ context.Context, src engine.Source) error {
	f.opened = src
	return nil
}
func (f *fakeEngine) Prefetch(context.Context, string) error        { return engine.ErrPrefetchDisabled }
func (f *fakeEngine) Play(context.Context) error                    { return nil }
func (f *fakeEngine) Pause(context.Context) error                   { return nil }
func (f *fakeEngine) SetMuted(context.Context, bool) error          { return nil }
func (f *fakeEngine) Status(context.Context) (engine.Status, error) { return engine.Status{}, nil }
func (f *fakeEngine) SeekTo(context.Context, int) error             { return nil }
func (f *fakeEngine) Events() <-chan engine.Event                   { return nil }
func (f *fakeEngine) Close() error {
	f.closed = true
	return nil
}

func TestFeed(t *testing.T) {
	Convey("Given the feed with the built-in catalog", t, func() {
		var engines []*fakeEngine
		b := newBubble(&Options{NewEngine: func() engine.Engine {
			e := &fakeEngine{}
			engines = append(engines, e)
			return e
		}})
		b.setState(loadingState)
		b.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
		b.Update(catalogLoadedMsg{catalog: catalog.Default()})

		Convey("Then the videos are listed", func() {
			So(b.state, ShouldEqual, feedState)
			So(b.feedC.Items(), ShouldHaveLength, len(catalog.Default().Videos))
			So(b.View(), ShouldContainSubstring, "Big Buck Bunny")
		})

		Convey("When a video is selected", func() {
			_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEnter})

			Convey("Then a card is mounted for it", func() {
				So(cmd, ShouldNotBeNil)
				So(b.state, ShouldEqual, cardState)
				So(b.card, ShouldNotBeNil)
				So(b.card.Props().Title, ShouldEqual, "Big Buck Bunny")
				So(b.View(), ShouldContainSubstring, "Big Buck Bunny")
			})

			Convey("And esc is pressed", func() {
				_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEsc})
				runAll(cmd)

				Convey("Then the card is unmounted and its engine released", func() {
					So(b.state, ShouldEqual, feedState)
					So(b.card, ShouldBeNil)
					So(engines, ShouldHaveLength, 1)
					So(engines[0].closed, ShouldBeTrue)
				})
			})

			Convey("And another video is watched afterwards", func() {
				b.Update(tea.KeyMsg{Type: tea.KeyEsc})
				b.Update(tea.KeyMsg{Type: tea.KeyDown})
				b.Update(tea.KeyMsg{Type: tea.KeyEnter})

				Convey("Then it gets its own engine", func() {
					So(engines, ShouldHaveLength, 2)
					So(b.card.Props().Title, ShouldEqual, "Elephants Dream")
				})
			})
		})
	})

	Convey("Given a catalog that fails to load", t, func() {
		b := newBubble(&Options{Catalog: "/does/not/exist.json"})
		b.setState(loadingState)
		b.Update(tea.WindowSizeMsg{Width: 200, Height: 40})
		b.Update(b.loadCatalog()())

		Convey("Then the error is shown", func() {
			So(b.state, ShouldEqual, errorState)
			So(b.View(), ShouldContainSubstring, "load catalog")
		})
	})
}

// runAll executes cmd and nested batches, skipping anything that would wait on a timer.
func runAll(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			runAll(c)
		}
	}
}

func TestFuzzyFilter(t *testing.T) {
	Convey("Given feed titles", t, func() {
		targets := []string{"Big Buck Bunny", "Sintel", "Elephants Dream"}

		Convey("When filtering", func() {
			ranks := fuzzyFilter("bunny", targets)

			Convey("Then the match is ranked with its highlighted runes", func() {
				So(ranks, ShouldHaveLength, 1)
				So(ranks[0].Index, ShouldEqual, 0)
				So(ranks[0].MatchedIndexes, ShouldResemble, []int{0, 5, 11, 12, 13})
			})
		})
	})
}

func TestGreeting(t *testing.T) {
	Convey("Greetings follow the time of day", t, func() {
		So(greeting(7), ShouldEqual, "Good morning")
		So(greeting(12), ShouldEqual, "Good afternoon")
		So(greeting(16), ShouldEqual, "Good afternoon")
		So(greeting(17), ShouldEqual, "Good evening")
		So(greeting(0), ShouldEqual, "Good morning")
	})
}
