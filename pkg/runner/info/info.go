// Package info prints where the agenda is stored and what it holds.
package info

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/category"
	"tableflip.dev/agenda/pkg/printers"
	"tableflip.dev/agenda/pkg/store"
)

type Info struct {
	Config  *store.FileConfig
	Service *app.Service
	Output  printers.Encoder
}

// Summary is the structured form of Info.
type Summary struct {
	ConfigFile string              `json:"config_file" yaml:"config_file"`
	Path       string              `json:"path" yaml:"path"`
	Owner      string              `json:"owner" yaml:"owner"`
	Locale     string              `json:"locale" yaml:"locale"`
	Items      int                 `json:"items" yaml:"items"`
	Completed  int                 `json:"completed" yaml:"completed"`
	ByCategory map[category.ID]int `json:"by_category" yaml:"by_category"`
	Anchor     string              `json:"anchor" yaml:"anchor"`
	View       string              `json:"view" yaml:"view"`
	DarkMode   bool                `json:"dark_mode" yaml:"dark_mode"`
	Corrupt    bool                `json:"corrupt_backup" yaml:"corrupt_backup"`
}

func (n *Info) Do(ctx context.Context) error {
	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.Service == nil {
		return fmt.Errorf("failed to open the agenda at %s", n.Config.BasePath())
	}

	st := n.Service.State()
	s := Summary{
		ConfigFile: n.Config.Source,
		Path:       n.Config.BasePath(),
		Owner:      n.Config.Owner(),
		Locale:     n.Config.Locale(),
		ByCategory: map[category.ID]int{},
		Anchor:     st.Nav.AnchorDate(),
		View:       string(st.Nav.View),
		DarkMode:   st.DarkMode,
	}
	for _, it := range n.Service.Items(ctx) {
		s.Items++
		if it.Completed {
			s.Completed++
		}
		s.ByCategory[it.Category]++
	}
	if _, err := os.Stat(filepath.Join(n.Config.BasePath(), store.KeyCorrupt)); err == nil {
		s.Corrupt = true
	}

	if printers.Structured(n.Output) {
		return n.Output.Write(s)
	}

	if override := os.Getenv("AGENDA_CONFIG_PATH"); override != "" {
		fmt.Println("AGENDA_CONFIG_PATH found on env, using ", override)
	} else {
		fmt.Println("AGENDA_CONFIG_PATH env var not set")
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	configFile := s.ConfigFile
	if configFile == "" {
		configFile = "(none, using defaults)"
	}
	tbl.AddRow(bold.Sprint("Config file"), configFile)
	tbl.AddRow(bold.Sprint("Path"), s.Path)
	tbl.AddRow(bold.Sprint("Owner"), s.Owner)
	tbl.AddRow(bold.Sprint("Locale"), s.Locale)
	tbl.AddRow(bold.Sprint("Items"), fmt.Sprintf("%d (%d completed)", s.Items, s.Completed))
	tbl.AddRow(bold.Sprint("View"), fmt.Sprintf("%s at %s", s.View, s.Anchor))
	tbl.AddRow(bold.Sprint("Dark mode"), fmt.Sprint(s.DarkMode))
	if s.Corrupt {
		tbl.AddRow(bold.Sprint("Backup"), color.YellowString("%s present", store.KeyCorrupt))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(color.Output, tbl)

	for _, c := range category.All() {
		if n := s.ByCategory[c.ID]; n > 0 {
			_, _ = fmt.Fprintf(color.Output, "  %-10s %d\n", c.LabelFor(s.Locale), n)
		}
	}
	return nil
}
