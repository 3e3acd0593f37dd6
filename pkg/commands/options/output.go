package options

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// OutputOptions
type OutputOptions struct {
	JSON   bool
	Format string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
	cmd.Flags().StringVarP(&po.Format, "output", "o", "",
		"Output format. One of 'json' or 'yaml'; pretty text when unset.")
}

// Structured reports whether output should be machine readable.
func (o *OutputOptions) Structured() bool {
	return o.JSON || o.Format != ""
}

// Write emits v as JSON or YAML. Callers render pretty text themselves when
// Structured is false.
func (o *OutputOptions) Write(v any) error {
	switch strings.ToLower(o.Format) {
	case "yaml", "yml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(color.Output, string(b))
		return nil
	case "", "json":
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (expected json or yaml)", o.Format)
	}
}

func (o *OutputOptions) HandleError(err error) error {
	if o.Structured() && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		if werr := o.Write(out); werr != nil {
			return werr
		}
		return nil
	}
	return err
}
