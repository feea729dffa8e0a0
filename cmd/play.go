package cmd

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tevify/tevify/card"
	"github.com/tevify/tevify/engine"
	"github.com/tevify/tevify/key"
	"github.com/tevify/tevify/playback"
	"github.com/tevify/tevify/util"
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("title", "t", "", "Title shown on the card; defaults to the uri")
	playCmd.Flags().StringSliceP("subtitle", "s", []string{}, "Secondary line shown under the title; repeatable")
	playCmd.Flags().BoolP("autoplay", "a", false, "Start playing as soon as the video is loaded")
	lo.Must0(viper.BindPFlag(key.PlaybackAutoplay, playCmd.Flags().Lookup("autoplay")))
}

// playCmd mounts a single video card.
var playCmd = &cobra.Command{
	Use:     "play [uri]",
	Short:   "Play a single video in a card",
	Args:    cobra.ExactArgs(1),
	Example: "  tevify play https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/Sintel.mp4 -t Sintel -a",
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		uri := args[0]
		title := lo.Must(cmd.Flags().GetString("title"))
		if title == "" {
			title = uri
		}

		width, _, err := util.TerminalSize()
		if err != nil {
			width = 0
		}

		props := card.Props{
			SourceURI: uri,
			Title:     title,
			Subtitles: lo.Must(cmd.Flags().GetStringSlice("subtitle")),
			AutoPlay:  viper.GetBool(key.PlaybackAutoplay),
		}

		handleErr(card.Run(engine.FromConfig(), props, width-2, playback.WithConfig(playback.ConfigFromViper())))
	},
}
