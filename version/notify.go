package version

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/tevify/tevify/color"
	"github.com/tevify/tevify/constant"
	"github.com/tevify/tevify/icon"
	"github.com/tevify/tevify/key"
	"github.com/tevify/tevify/style"
	"github.com/tevify/tevify/util"
)

// Notify prints a notice when a newer release is available.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Loading)))
	version, err := Latest(ctx)
	erase()
	if err != nil {
		return
	}

	if newer, err := Newer(version, constant.Version); err != nil || !newer {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/tevify/tevify/releases/tag/v"+version),
	)
}
