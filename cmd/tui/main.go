package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"joltshark-go/internal/config"
	"joltshark-go/internal/strategy"
)

const defaultConfigPath = "internal/config/config.yaml"

func main() {
	reader := bufio.NewReader(os.Stdin)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	for {
		fmt.Println("\n=== Joltshark Control ===")
		fmt.Println("1) Show configuration summary")
		fmt.Println("2) Edit strategy knobs")
		fmt.Println("3) Edit event schedule")
		fmt.Println("4) Save config")
		fmt.Println("5) Launch engine")
		fmt.Println("6) Reload config from disk")
		fmt.Println("0) Exit")
		fmt.Print("Select option: ")

		input, _ := reader.ReadString('\n')
		choice := strings.TrimSpace(input)

		switch choice {
		case "1":
			printSummary(cfg)
		case "2":
			editStrategy(reader, cfg)
		case "3":
			editSchedule(reader, cfg)
		case "4":
			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(os.Stderr, "not saved, invalid config:\n%v\n", err)
				continue
			}
			if err := saveConfig(cfg); err != nil {
				fmt.Fprintf(os.Stderr, "save failed: %v\n", err)
			} else {
				fmt.Println("config saved")
			}
		case "5":
			launchEngine(reader)
		case "6":
			reloaded, err := loadConfig()
			if err != nil {
				fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
			} else {
				cfg = reloaded
				fmt.Println("config reloaded")
			}
		case "0":
			return
		default:
			fmt.Println("unknown option")
		}
	}
}

func printSummary(cfg *config.Config) {
	fmt.Println("\n--- Configuration Summary ---")
	fmt.Printf("Feed: %s %s\n", cfg.Feed.Provider, strings.Join(cfg.Feed.Symbols, ", "))
	fmt.Printf("Mode: %s | jolt limit: %.4f | order: %d | window: %ds\n",
		cfg.Strategy.Mode, cfg.Strategy.JoltLimit, cfg.Strategy.Order, cfg.Strategy.WindowSecs)
	g := cfg.Strategy.Grid
	fmt.Printf("Grid: base %.4f range [%.4f, %.4f] spacing %.4f\n", g.BasePrice, g.LowerPrice, g.UpperPrice, g.Spacing)
	tr := cfg.Strategy.TickRange
	fmt.Printf("Tick range: [%d, %d) spacing %d base %.4f (prices %.4f - %.4f)\n",
		tr.TickLower, tr.TickUpper, tr.TickSpacing, tr.BasePrice, tr.PriceAtTick(tr.TickLower), tr.PriceAtTick(tr.TickUpper))
	fmt.Printf("Schedule period: %.2f\n", cfg.Schedule.Period)
	for _, ev := range cfg.Schedule.Events {
		fmt.Printf("  %-16s %6.2f -> %6.2f  outer %.2f inner %.2f\n", ev.Name, ev.Start, ev.End, ev.BlendOuter, ev.BlendInner)
	}
	if cfg.Journal.Path != "" {
		fmt.Println("Journal:", cfg.Journal.Path)
	}
}

func editStrategy(reader *bufio.Reader, cfg *config.Config) {
	fmt.Println("\n--- Edit Strategy ---")
	fmt.Printf("Mode [%s] (%s/%s): ", cfg.Strategy.Mode, strategy.ModeGrid, strategy.ModeTickRange)
	if line, _ := reader.ReadString('\n'); strings.TrimSpace(line) != "" {
		if mode, ok := strategy.NormalizeMode(line); ok {
			cfg.Strategy.Mode = mode
		} else {
			fmt.Println("unknown mode, keeping", cfg.Strategy.Mode)
		}
	}
	cfg.Strategy.JoltLimit = promptFloat(reader, "Jolt limit", cfg.Strategy.JoltLimit)
	cfg.Strategy.Order = int(promptFloat(reader, "Derivative order", float64(cfg.Strategy.Order)))
	cfg.Strategy.WindowSecs = int(promptFloat(reader, "Sample window (s)", float64(cfg.Strategy.WindowSecs)))

	if mode, _ := strategy.NormalizeMode(cfg.Strategy.Mode); mode == strategy.ModeTickRange {
		tr := &cfg.Strategy.TickRange
		tr.TickLower = int32(promptFloat(reader, "Tick lower", float64(tr.TickLower)))
		tr.TickUpper = int32(promptFloat(reader, "Tick upper", float64(tr.TickUpper)))
		tr.TickSpacing = int32(promptFloat(reader, "Tick spacing", float64(tr.TickSpacing)))
		tr.BasePrice = promptFloat(reader, "Base price", tr.BasePrice)
		return
	}
	g := &cfg.Strategy.Grid
	g.BasePrice = promptFloat(reader, "Grid base price", g.BasePrice)
	g.UpperPrice = promptFloat(reader, "Grid upper price", g.UpperPrice)
	g.LowerPrice = promptFloat(reader, "Grid lower price", g.LowerPrice)
	g.Spacing = promptFloat(reader, "Grid spacing", g.Spacing)
}

func editSchedule(reader *bufio.Reader, cfg *config.Config) {
	fmt.Println("\n--- Edit Schedule ---")
	cfg.Schedule.Period = promptFloat(reader, "Period", cfg.Schedule.Period)
	for i := range cfg.Schedule.Events {
		ev := &cfg.Schedule.Events[i]
		fmt.Printf("Event %s\n", ev.Name)
		ev.Start = promptFloat(reader, "  start", ev.Start)
		ev.End = promptFloat(reader, "  end", ev.End)
		ev.BlendOuter = promptFloat(reader, "  blend outer", ev.BlendOuter)
		ev.BlendInner = promptFloat(reader, "  blend inner", ev.BlendInner)
	}
	fmt.Print("Add event name (blank to skip): ")
	if line, _ := reader.ReadString('\n'); strings.TrimSpace(line) != "" {
		ev := config.Event{Name: strings.TrimSpace(line)}
		ev.Start = promptFloat(reader, "  start", 0)
		ev.End = promptFloat(reader, "  end", 0)
		ev.BlendOuter = promptFloat(reader, "  blend outer", 0)
		ev.BlendInner = promptFloat(reader, "  blend inner", 0)
		cfg.Schedule.Events = append(cfg.Schedule.Events, ev)
	}
}

func launchEngine(reader *bufio.Reader) {
	fmt.Println("Launching engine (Ctrl+C to stop)...")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := exec.CommandContext(ctx, "go", "run", "./cmd/joltshark", "-config", locateConfig())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start engine: %v\n", err)
		return
	}

	go func() {
		_ = cmd.Wait()
		cancel()
	}()

	fmt.Print("\nPress ENTER to stop the engine and return to menu...")
	_, _ = reader.ReadString('\n')
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func promptFloat(reader *bufio.Reader, label string, current float64) float64 {
	fmt.Printf("%s [%.4g]: ", label, current)
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	val, err := strconv.ParseFloat(line, 64)
	if err != nil {
		fmt.Printf("invalid number, keeping %.4g\n", current)
		return current
	}
	return val
}

func loadConfig() (*config.Config, error) {
	return config.Load(locateConfig())
}

func saveConfig(cfg *config.Config) error {
	return config.Save(locateConfig(), cfg)
}

func locateConfig() string {
	if filepath.IsAbs(defaultConfigPath) {
		return defaultConfigPath
	}
	return filepath.Clean(defaultConfigPath)
}
