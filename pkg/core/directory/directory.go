// Package directory implements the static company-name -> ticker lookup
// table the resolver uses as its fast path.
package directory

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"eumr_screening/pkg/core/utils"
)

// ErrUnavailable means the directory file is missing or unparseable. The
// resolver reports this to its caller rather than falling through to the
// universe scan, since a broken deployment should be visible.
var ErrUnavailable = errors.New("company directory unavailable")

// Directory is an immutable lower-cased-name -> ticker map, loaded once and
// shared read-only.
type Directory struct {
	byName map[string]string
}

// Load reads a directory file. The on-disk shape groups companies by
// category, each category mapping lower-cased company name to ticker:
//
//	{
//	  "technology": { "microsoft": "MSFT", "apple": "AAPL" },
//	  "finance":    { "jpmorgan": "JPM" }
//	}
//
// Categories exist for the file maintainer's benefit and are flattened at
// load. JSON and HJSON are both accepted, with a repair pass for mildly
// damaged JSON.
func Load(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return Parse(data)
}

// Parse builds a Directory from raw file contents. See Load for the format.
func Parse(data []byte) (*Directory, error) {
	categories := make(map[string]map[string]string)
	if err := utils.DecodeLenient(data, &categories); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	byName := make(map[string]string)
	for _, companies := range categories {
		for name, ticker := range companies {
			byName[strings.ToLower(strings.TrimSpace(name))] = strings.ToUpper(ticker)
		}
	}
	if len(byName) == 0 {
		return nil, fmt.Errorf("%w: file contains no companies", ErrUnavailable)
	}

	return &Directory{byName: byName}, nil
}

// Lookup returns the ticker configured for name, matching case-insensitively
// on the trimmed name. The second return reports whether the name is known.
func (d *Directory) Lookup(name string) (string, bool) {
	ticker, ok := d.byName[strings.ToLower(strings.TrimSpace(name))]
	return ticker, ok
}

// Len reports how many companies the directory holds.
func (d *Directory) Len() int {
	return len(d.byName)
}
