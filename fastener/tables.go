package fastener

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

//go:embed tables/*.csv
var tableFS embed.FS

// registry maps family -> nominal size -> dimension name -> mm.
var registry = map[Family]map[string]map[string]float64{}

var tableFiles = map[Family]string{
	HexNut:             "tables/iso4032.csv",
	HexBolt:            "tables/iso4017.csv",
	SocketHeadCapScrew: "tables/iso4762.csv",
	PlainWasher:        "tables/iso7089.csv",
}

func init() {
	for family, path := range tableFiles {
		t, err := loadTable(path)
		if err != nil {
			panic(fmt.Sprintf("fastener: bad embedded table %s: %v", path, err))
		}
		registry[family] = t
	}
}

// loadTable parses one embedded CSV. The first column is the nominal
// size designation; the header row names the remaining dimension
// columns.
func loadTable(path string) (map[string]map[string]float64, error) {
	f, err := tableFS.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	table := map[string]map[string]float64{}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) != len(header) {
			return nil, fmt.Errorf("row %q has %d fields, header has %d", rec[0], len(rec), len(header))
		}
		dims := make(map[string]float64, len(header)-1)
		for i := 1; i < len(rec); i++ {
			v, err := strconv.ParseFloat(rec[i], 64)
			if err != nil {
				return nil, fmt.Errorf("row %q column %q: %v", rec[0], header[i], err)
			}
			dims[header[i]] = v
		}
		table[rec[0]] = dims
	}
	return table, nil
}
