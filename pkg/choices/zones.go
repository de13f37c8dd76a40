package choices

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-termmeta/pkg/field"
)

//go:embed data/timezones.txt
var dataFS embed.FS

const zonesPath = "data/timezones.txt"

var (
	zonesOnce    sync.Once
	defaultZones []string
	zonesErr     error
)

// DefaultZones returns the embedded zone list, sorted.
func DefaultZones() ([]string, error) {
	zonesOnce.Do(func() {
		f, err := dataFS.Open(zonesPath)
		if err != nil {
			zonesErr = err
			return
		}
		defer func() { _ = f.Close() }()
		defaultZones, zonesErr = LoadZones(f)
	})
	if zonesErr != nil {
		return nil, zonesErr
	}
	return append([]string{}, defaultZones...), nil
}

// LoadZones reads one zone per line, skipping blanks, comments and
// duplicates.
func LoadZones(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("choices: missing reader")
	}
	scanner := bufio.NewScanner(r)
	zones := make([]string, 0, 512)
	seen := map[string]struct{}{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		zones = append(zones, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	sort.Strings(zones)
	return zones, nil
}

// Timezones is an option provider over the embedded zone list. Labels use
// spaces instead of underscores.
func Timezones() field.Provider {
	return func() []field.Option {
		zones, err := DefaultZones()
		if err != nil {
			return nil
		}
		return zoneOptions(zones)
	}
}

func zoneOptions(zones []string) []field.Option {
	out := make([]field.Option, 0, len(zones))
	for _, zone := range zones {
		out = append(out, field.Option{Value: zone, Label: strings.ReplaceAll(zone, "_", " ")})
	}
	return out
}
