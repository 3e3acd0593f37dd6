package options

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/agenda/pkg/calendar"
	"tableflip.dev/agenda/pkg/category"
)

var (
	_ pflag.Value = (*calendar.Granularity)(nil)
	_ pflag.Value = (*category.Filter)(nil)
)

// ViewOptions
type ViewOptions struct {
	View   calendar.Granularity
	Filter category.Filter
}

func AddViewArgs(cmd *cobra.Command, o *ViewOptions) {
	cmd.Flags().VarP(&o.View, "view", "v",
		"View granularity: day, week or month.")
}

func AddFilterArgs(cmd *cobra.Command, o *ViewOptions) {
	cmd.Flags().VarP(&o.Filter, "category", "c",
		"Only show items of this category (all, work, personal, health, social, education, other).")
}
