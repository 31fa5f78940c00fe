// Command pulsetable prints the event pulse of every scheduled event over one
// clock period, for checking a schedule before running the engine.
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"joltshark-go/internal/config"
	"joltshark-go/internal/util"
)

func main() {
	cfgPath := flag.String("config", "internal/config/config.yaml", "path to config file")
	step := flag.Float64("step", 0.25, "clock step between rows")
	only := flag.String("event", "", "print a single event")
	flag.Parse()

	log := util.NewConsoleLogger(os.Stderr, "info")

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	if !(*step > 0) {
		log.Fatal().Float64("step", *step).Msg("step must be positive")
	}

	clock := cfg.Schedule.Clock()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "event\tclock\tphase\tregion\tx\ty")
	printed := 0
	for _, ev := range cfg.Schedule.Windows() {
		if *only != "" && ev.Name != *only {
			continue
		}
		printed++
		rows := int(cfg.Schedule.Period / *step)
		for i := 0; i <= rows; i++ {
			at := float64(i) * *step
			phase := clock.Phase(at)
			x, y := ev.Window.Pulse(phase)
			fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%s\t%+.4f\t%+.4f\n", ev.Name, at, phase, ev.Window.Region(phase), x, y)
		}
	}
	if err := w.Flush(); err != nil {
		log.Fatal().Err(err).Msg("write table")
	}
	if printed == 0 {
		log.Warn().Str("event", *only).Msg("no events matched")
	}
}
