package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/cardstack/pkg/config"
	"github.com/matzehuels/cardstack/pkg/stack"
)

// layoutFlags are the geometry flags shared by frame, render, page and
// preview. Only flags the user set override the configuration file.
type layoutFlags struct {
	itemWidth   float64
	itemHeight  float64
	spacing     float64
	maxVisible  int
	scaleFactor float64
	policy      string

	width  float64
	height float64
	items  int

	flags *pflag.FlagSet
}

// addLayoutFlags registers the geometry flags on cmd.
func addLayoutFlags(cmd *cobra.Command) *layoutFlags {
	lf := &layoutFlags{flags: cmd.Flags()}
	f := cmd.Flags()
	f.Float64Var(&lf.itemWidth, "item-width", stack.DefaultItemWidth, "card width")
	f.Float64Var(&lf.itemHeight, "item-height", stack.DefaultItemHeight, "card height")
	f.Float64Var(&lf.spacing, "spacing", stack.DefaultSpacing, "horizontal inset between stacked cards")
	f.IntVar(&lf.maxVisible, "max-visible", stack.DefaultMaxVisible, "number of cards shown at once")
	f.Float64Var(&lf.scaleFactor, "scale-factor", stack.DefaultScaleFactor, "per-depth scale multiplier in (0, 1]")
	f.StringVar(&lf.policy, "policy", string(stack.PolicyAnchored), "scale policy: anchored, symmetric")
	f.Float64Var(&lf.width, "width", config.DefaultViewportWidth, "viewport width (one page)")
	f.Float64Var(&lf.height, "height", config.DefaultViewportHeight, "viewport height")
	f.IntVar(&lf.items, "items", config.DefaultItemCount, "number of cards in the collection")
	return lf
}

// apply overlays the flags the user changed on top of cfg.
func (lf *layoutFlags) apply(cfg *config.Config) (stack.Config, config.ViewportConfig, error) {
	layout, vp := cfg.Layout, cfg.Viewport
	if lf.changed("item-width") {
		layout.ItemSize.Width = lf.itemWidth
	}
	if lf.changed("item-height") {
		layout.ItemSize.Height = lf.itemHeight
	}
	if lf.changed("spacing") {
		layout.Spacing = lf.spacing
	}
	if lf.changed("max-visible") {
		layout.MaxVisible = lf.maxVisible
	}
	if lf.changed("scale-factor") {
		layout.ScaleFactor = lf.scaleFactor
	}
	if lf.changed("policy") {
		p, err := stack.ParsePolicy(lf.policy)
		if err != nil {
			return layout, vp, err
		}
		layout.Policy = p
	}
	if lf.changed("width") {
		vp.Width = lf.width
	}
	if lf.changed("height") {
		vp.Height = lf.height
	}
	if lf.changed("items") {
		vp.Items = lf.items
	}
	if err := layout.Validate(); err != nil {
		return layout, vp, err
	}
	return layout, vp, nil
}

func (lf *layoutFlags) changed(name string) bool {
	return lf.flags.Changed(name)
}
