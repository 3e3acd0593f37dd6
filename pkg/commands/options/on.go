package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/timeutil"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2026-10-19", --on="10/19", --on=tomorrow, --on=+3d or --on=friday.`)
}

// IsSet reports whether --on was given.
func (o *OnOptions) IsSet() bool {
	return o.OnString != ""
}

// GetOn resolves --on relative to now; unset means today.
func (o *OnOptions) GetOn(now time.Time) (time.Time, error) {
	return timeutil.ParseDay(o.OnString, now)
}
