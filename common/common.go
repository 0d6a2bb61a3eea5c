package common

import (
	"os/exec"
	"strings"

	"github.com/joho/godotenv"
)

// Version is set at build time through -ldflags.
var Version = "[unknown]"

func init() {
	// a missing .env is fine, config.toml is the canonical source of configuration
	_ = godotenv.Load()

	InitLog()

	if Version != "[unknown]" {
		return
	}

	git := exec.Command("git", "rev-parse", "--short", "HEAD")
	// ignoring errors *should* be fine? if there's no output we just fall back to "unknown"
	b, _ := git.Output()
	Version = strings.TrimSpace(string(b))
	if Version == "" {
		Version = "[unknown]"
	}
}
