package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"honnef.co/go/animcurve/internal/document"
)

var sampleCmd = &cobra.Command{
	Use:   "sample <file>",
	Short: "Print curve and track values at regular times",
	Long: "sample prints one block per curve and per track, each row holding a time and the value at that time.\n" +
		"By default curves are sampled from their first to their last keyframe, and tracks over the document's frame range.",
	Args: cobra.ExactArgs(1),
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().Float64("from", 0, "first time to sample (default first keyframe)")
	sampleCmd.Flags().Float64("to", 0, "last time to sample (default last keyframe)")
	sampleCmd.Flags().Float64("step", 1, "time between samples")
	_ = viper.BindPFlag("sample.step", sampleCmd.Flags().Lookup("step"))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := document.Load(args[0])
	if err != nil {
		return err
	}
	from, _ := cmd.Flags().GetFloat64("from")
	to, _ := cmd.Flags().GetFloat64("to")
	rangeFor := func(first, last float64) (float64, float64) {
		if !cmd.Flags().Changed("from") {
			from = first
		}
		if !cmd.Flags().Changed("to") {
			to = last
		}
		return from, to
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	for i, e := range s.Curves.All() {
		first, last, _ := s.Curves.FrameRange(i)
		lo, hi := rangeFor(first, last)
		slog.Debug("sampling curve", "curve", e.Curve.Name, "from", lo, "to", hi, "step", cfg.Sample.Step)
		fmt.Fprintf(w, "# %s\n", e.Curve.Name)
		for t, v := range e.Curve.Samples(lo, hi, cfg.Sample.Step) {
			fmt.Fprintf(w, "%s\t%s\n", formatFloat(t), formatFloat(v))
		}
	}
	for _, tr := range s.Tracks {
		lo, hi := rangeFor(0, s.Curves.LastFrame())
		slog.Debug("sampling track", "target", tr.Target, "kind", tr.Kind(), "from", lo, "to", hi)
		fmt.Fprintf(w, "# %s (%s)\n", tr.Target, tr.Kind())
		for i := 0; ; i++ {
			t := lo + float64(i)*cfg.Sample.Step
			if t > hi {
				break
			}
			var cols []string
			for _, c := range tr.Sample(t).Components() {
				cols = append(cols, formatFloat(c))
			}
			fmt.Fprintf(w, "%s\t%s\n", formatFloat(t), strings.Join(cols, "\t"))
		}
	}
	return w.Flush()
}
