package icon

// Icon identifies a registered UI symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Play
	Pause
	Muted
	Unmuted
	SeekBack
	SeekForward
	Loading
	Buffering
)

var icons = map[Icon]glyphs{
	Success: {
		emoji:   "🎉",
		nerd:    "\uf00c",
		plain:   "✓",
		kaomoji: "(ᵔᴥᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "😵",
		nerd:    "\uf00d",
		plain:   "✗",
		kaomoji: "(×_×)",
		squares: "🟥",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "\uf04b",
		plain:   "▶",
		kaomoji: "(•̀ᴗ•́)و ▶",
		squares: "🟢",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "\uf04c",
		plain:   "⏸",
		kaomoji: "(￣o￣) zzZ",
		squares: "🟡",
	},
	Muted: {
		emoji:   "🔇",
		nerd:    "\uf6a9",
		plain:   "mute",
		kaomoji: "(－‸ლ)",
		squares: "⬛",
	},
	Unmuted: {
		emoji:   "🔉",
		nerd:    "\uf028",
		plain:   "vol",
		kaomoji: "♪(´▽｀)",
		squares: "⬜",
	},
	SeekBack: {
		emoji:   "⏪",
		nerd:    "\uf04a",
		plain:   "<<",
		kaomoji: "<<(・_・)",
		squares: "◀",
	},
	SeekForward: {
		emoji:   "⏩",
		nerd:    "\uf04e",
		plain:   ">>",
		kaomoji: "(・_・)>>",
		squares: "▶",
	},
	Loading: {
		emoji:   "⏳",
		nerd:    "\uf252",
		plain:   "...",
		kaomoji: "(・・ )?",
		squares: "🟦",
	},
	Buffering: {
		emoji:   "🌀",
		nerd:    "\uf110",
		plain:   "~",
		kaomoji: "(@_@)",
		squares: "🟪",
	},
}
