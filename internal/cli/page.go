package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/cardstack/pkg/errors"
	"github.com/matzehuels/cardstack/pkg/stack"
)

// pageCommand groups the paging helpers hosts use to drive the scroll view.
func (c *CLI) pageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Convert between scroll offsets and pages",
	}

	cmd.AddCommand(c.pageOfCommand())
	cmd.AddCommand(c.pageOffsetCommand())
	cmd.AddCommand(c.pageSnapCommand())

	return cmd
}

// pageOfCommand creates "page of OFFSET".
func (c *CLI) pageOfCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "of OFFSET",
		Short: "Print the page at the front of the stack for an offset",
		Args:  cobra.ExactArgs(1),
	}
	lf := addLayoutFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		offset, err := parseOffset(args[0])
		if err != nil {
			return err
		}
		vp, err := c.pageViewport(lf)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), stack.CurrentPage(offset, vp.Width))
		return nil
	}
	return cmd
}

// pageOffsetCommand creates "page offset PAGE".
func (c *CLI) pageOffsetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offset PAGE",
		Short: "Print the scroll offset that brings a page to the front",
		Long: `Print the scroll offset that brings a page to the front.

The page is clamped to the collection, so the result is always a valid
resting offset.`,
		Args: cobra.ExactArgs(1),
	}
	lf := addLayoutFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		page, err := strconv.Atoi(args[0])
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid page: %q", args[0])
		}
		vp, err := c.pageViewport(lf)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatOffset(stack.OffsetForPage(page, vp.Width, vp.ItemCount)))
		return nil
	}
	return cmd
}

// pageSnapCommand creates "page snap OFFSET", the resting page after a drag.
func (c *CLI) pageSnapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snap OFFSET",
		Short: "Print the page a drag ending at OFFSET settles on",
		Args:  cobra.ExactArgs(1),
	}
	lf := addLayoutFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		offset, err := parseOffset(args[0])
		if err != nil {
			return err
		}
		vp, err := c.pageViewport(lf)
		if err != nil {
			return err
		}
		page := stack.NearestPage(offset, vp.Width, vp.ItemCount)
		fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", page, formatOffset(stack.OffsetForPage(page, vp.Width, vp.ItemCount)))
		return nil
	}
	return cmd
}

func (c *CLI) pageViewport(lf *layoutFlags) (stack.Viewport, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return stack.Viewport{}, err
	}
	_, vpc, err := lf.apply(cfg)
	if err != nil {
		return stack.Viewport{}, err
	}
	if err := errs.ValidatePositive(errs.ErrCodeInvalidViewport, "viewport width", vpc.Width); err != nil {
		return stack.Viewport{}, err
	}
	return vpc.Viewport(0)
}

func parseOffset(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid offset: %q", s)
	}
	return v, nil
}

// formatOffset prints offsets without a trailing ".0" for whole numbers.
func formatOffset(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
