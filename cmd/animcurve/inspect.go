package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"honnef.co/go/animcurve"
	"honnef.co/go/animcurve/internal/document"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print the resolved keyframes of every curve",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	s, err := document.Load(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, e := range s.Curves.All() {
		if i > 0 {
			fmt.Fprintln(out)
		}
		visible := ""
		if !e.Curve.Visible {
			visible = " (hidden)"
		}
		fmt.Fprintf(out, "%s%s: %d keyframes, %d segments\n", e.Curve.Name, visible, e.Curve.KeyframeCount(), e.Curve.SegmentCount())
		if err := inspectCurve(out, e.Curve); err != nil {
			return err
		}
	}
	for _, tr := range s.Tracks {
		fmt.Fprintf(out, "\ntrack %s: %s, %s, %d keys\n", tr.Target, tr.Kind(), tr.Lerp, len(tr.Keys()))
	}
	return nil
}

func tangentMode(k animcurve.Keyframe, side animcurve.Side) string {
	t := k.Tangent(side)
	if k.Type == animcurve.Smooth {
		return t.Smooth.String()
	}
	return t.Broken.String()
}

func inspectCurve(w io.Writer, c *animcurve.Curve) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\ttime\tvalue\ttype\tin\tout\tin slope\tout slope\tin weight\tout weight\tin handle\tout handle")
	for i, k := range c.Keyframes() {
		in, out := "-", "-"
		if h, ok := c.InHandle(i); ok {
			in = h.String()
		}
		if h, ok := c.OutHandle(i); ok {
			out = h.String()
		}
		fmt.Fprintf(tw, "%d\t%g\t%g\t%s\t%s\t%s\t%.4g\t%.4g\t%.4g\t%.4g\t%s\t%s\n",
			i, k.Time(), k.Value(), k.Type,
			tangentMode(k, animcurve.In), tangentMode(k, animcurve.Out),
			k.In.Slope(), k.Out.Slope(), k.In.Weight, k.Out.Weight,
			in, out)
	}
	return tw.Flush()
}
