package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
	"github.com/tevify/tevify/card"
	"github.com/tevify/tevify/catalog"
	"github.com/tevify/tevify/internal/ui"
	"github.com/tevify/tevify/key"
	"github.com/tevify/tevify/log"
	"github.com/tevify/tevify/playback"
)

type catalogLoadedMsg struct {
	catalog *catalog.Catalog
}

func (b *statefulBubble) loadCatalog() tea.Cmd {
	location := b.options.Catalog
	return func() tea.Msg {
		c, err := catalog.Load(context.Background(), location)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		return catalogLoadedMsg{catalog: c}
	}
}

func (b *statefulBubble) onCatalogLoaded(c *catalog.Catalog) tea.Cmd {
	b.catalog = c
	b.feedC.Title = feedTitle(c)
	b.setState(feedState)
	return b.feedC.SetItems(newItems(c.Videos))
}

// mount opens a card for the selected video.
func (b *statefulBubble) mount(item *listItem) tea.Cmd {
	video := item.video

	b.card = card.New(b.options.NewEngine(), card.Props{
		SourceURI: video.URI,
		Title:     video.Title,
		Subtitles: video.Subtitles(),
		AutoPlay:  video.AutoPlay.OrElse(viper.GetBool(key.PlaybackAutoplay)),
	}, playback.WithConfig(playback.ConfigFromViper()))
	b.card.SetWidth(b.width)
	b.setState(cardState)

	log.Infof("mounted card for %q", video.Title)
	return b.card.Init()
}

// dismount returns to the feed, releasing the card's engine in the background.
func (b *statefulBubble) dismount() tea.Cmd {
	title := b.card.Props().Title
	cmd := b.unmount()
	b.setState(feedState)

	log.Infof("unmounted card for %q", title)
	return tea.Batch(cmd, ui.Notify(fmt.Sprintf("Stopped %s", title)))
}
