package riot

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Lockfile del Riot Client: name:pid:port:password:protocol
type Lockfile struct {
	Name     string
	PID      int
	Port     int
	Password string
	Protocol string
}

func ParseLockfile(s string) (Lockfile, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 5 {
		return Lockfile{}, fmt.Errorf("lockfile: expected 5 fields, got %d", len(parts))
	}
	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return Lockfile{}, fmt.Errorf("lockfile pid: %w", err)
	}
	port, err := strconv.Atoi(parts[2])
	if err != nil {
		return Lockfile{}, fmt.Errorf("lockfile port: %w", err)
	}
	return Lockfile{Name: parts[0], PID: pid, Port: port, Password: parts[3], Protocol: parts[4]}, nil
}

func ReadLockfile(path string) (Lockfile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Lockfile{}, fmt.Errorf("read lockfile: %w", err)
	}
	return ParseLockfile(string(b))
}

func DefaultLockfilePath() string {
	return filepath.Join(os.Getenv("LOCALAPPDATA"), "Riot Games", "Riot Client", "Config", "lockfile")
}

func DefaultLogPath() string {
	return filepath.Join(os.Getenv("LOCALAPPDATA"), "VALORANT", "Saved", "Logs", "ShooterGame.log")
}

var glzRe = regexp.MustCompile(`https://glz-(.+?)-1\.(.+?)\.a\.pvp\.net`)

// ParseRegion saca region y shard de ShooterGame.log.
func ParseRegion(logText string) (region, shard string, err error) {
	m := glzRe.FindStringSubmatch(logText)
	if m == nil {
		return "", "", fmt.Errorf("region not found in log")
	}
	region, shard = m[1], m[2]
	// pbe comparte la región na pero usa su propio shard
	if region == "pbe" {
		return "na", "pbe", nil
	}
	return region, shard, nil
}

func ReadRegion(path string) (string, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read game log: %w", err)
	}
	return ParseRegion(string(b))
}
