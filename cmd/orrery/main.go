package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/tomz197/orrery/internal/config"
	"github.com/tomz197/orrery/internal/engine"
	"golang.org/x/term"
)

func main() {
	presets, err := config.LoadPresets(config.GetEnv("ORRERY_PRESETS", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "presets: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	// Variant by argument (1-based), environment as fallback
	variant := config.GetEnvInt("ORRERY_VARIANT", 1)
	if len(os.Args) > 1 {
		if n, err := strconv.Atoi(os.Args[1]); err == nil {
			variant = n
		}
	}

	sess := engine.NewSession(bufio.NewReader(os.Stdin), os.Stdout, engine.SessionOptions{
		Presets:       presets,
		FPS:           config.GetEnvInt("ORRERY_FPS", engine.DefaultFPS),
		Variant:       variant - 1,
		ReducedMotion: config.GetEnvBool("REDUCE_MOTION", false),
	})
	if err := sess.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "orrery error: %v\n", err)
		os.Exit(1)
	}
}
