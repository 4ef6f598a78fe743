package config

import (
	"bufio"
	"fmt"
	"strings"

	"go-tycoon/engine"
	"go-tycoon/entities"
)

// ParseSectors reads one sector per line: "name #rrggbb [chip]". The chip
// name defaults to the engine's name for that position.
func ParseSectors(text string) ([]entities.Sector, error) {
	chips := engine.DefaultConfig().ChipNames
	var sectors []entities.Sector
	sc := bufio.NewScanner(strings.NewReader(text))
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 || !strings.HasPrefix(fields[1], "#") {
			return nil, fmt.Errorf("line %d: want \"name #rrggbb [chip]\", got %q", line, sc.Text())
		}
		s := entities.Sector{Name: fields[0], Color: fields[1]}
		switch {
		case len(fields) > 2:
			s.Chip = fields[2]
		case len(sectors) < len(chips):
			s.Chip = chips[len(sectors)]
		}
		sectors = append(sectors, s)
	}
	return sectors, sc.Err()
}

// ParseNames reads "sector<TAB>name" lines into per-sector pools, keeping
// file order. A sector missing from sectors is an error.
func ParseNames(text string, sectors []entities.Sector) (map[string][]string, error) {
	names := make(map[string][]string, len(sectors))
	for _, s := range sectors {
		names[s.Name] = nil
	}
	sc := bufio.NewScanner(strings.NewReader(text))
	for line := 1; sc.Scan(); line++ {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		cols := strings.SplitN(sc.Text(), "\t", 2)
		if len(cols) != 2 || strings.TrimSpace(cols[1]) == "" {
			return nil, fmt.Errorf("line %d: want \"sector<TAB>name\", got %q", line, sc.Text())
		}
		sector, name := strings.TrimSpace(cols[0]), strings.TrimSpace(cols[1])
		if _, ok := names[sector]; !ok {
			return nil, fmt.Errorf("line %d: unknown sector %q", line, sector)
		}
		names[sector] = append(names[sector], name)
	}
	return names, sc.Err()
}
