package artwork

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Record is one entry of the output catalog. Field order is the serialized key order.
type Record struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Year      string `json:"year"`
	Group     string `json:"group"`
	Technique string `json:"technique"`
	Location  string `json:"location"`
	Image     string `json:"image"`
}

// Columns is the tabular header shared by the CSV, Excel and SQLite outputs.
func Columns() []string {
	return []string{"id", "title", "artist", "year", "group", "technique", "location", "image"}
}

// Values returns the record fields in Columns order.
func (r Record) Values() []string {
	return []string{
		strconv.Itoa(r.ID),
		r.Title,
		r.Artist,
		r.Year,
		r.Group,
		r.Technique,
		r.Location,
		r.Image,
	}
}

// LoadCatalog reads a catalog previously written in JSON format.
func LoadCatalog(path string) ([]Record, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	records := make([]Record, 0, 128)
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	return records, nil
}
