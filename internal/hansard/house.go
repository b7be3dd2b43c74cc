package hansard

import (
	"encoding/json"
	"fmt"
	"strings"
)

type House int

const (
	Senate House = iota
	NationalAssembly
)

// ParseHouse accepts the spellings used by both sources and by the cli.
func ParseHouse(s string) (House, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "senate":
		return Senate, nil
	case "national_assembly", "national-assembly", "na":
		return NationalAssembly, nil
	}
	return 0, Invalid("house '%s', accepted values: 'senate', 'national_assembly', 'na'", s)
}

func (h House) String() string {
	switch h {
	case Senate:
		return "Senate"
	case NationalAssembly:
		return "National Assembly"
	}
	return fmt.Sprintf("House(%d)", int(h))
}

// Slug is the path segment the current source uses for the house.
func (h House) Slug() string {
	if h == NationalAssembly {
		return "national-assembly"
	}
	return "senate"
}

func (h House) key() string {
	if h == NationalAssembly {
		return "national_assembly"
	}
	return "senate"
}

func (h House) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.key())
}

func (h *House) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseHouse(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
