package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"strconv"

	"github.com/jmfield/postings-atlas/models"
)

// LocatedPosting pairs a posting with its resolved cache entry for map
// output. Unresolved locations never reach this type.
type LocatedPosting struct {
	Posting models.Posting
	Entry   models.GeoCacheEntry
}

// MapPoint is the shape the map rendering collaborator consumes.
type MapPoint struct {
	Lat   float64
	Lng   float64
	Color string
	Title string
}

var mapCSVHeader = []string{
	"Agency", "Business Title", "# Of Positions",
	"Salary Range From", "Salary Range To", "Salary Frequency",
	"Minimum Qual Requirements", "Work Location",
	"longitude", "latitude", "address", "color",
}

// WriteMapCSV writes the per-bracket map table: the posting columns plus
// longitude, latitude, address, and the bracket color. Only resolved rows
// are written; the cache itself keeps the unresolved ones.
func (w *Writer) WriteMapCSV(bracket Bracket, rows []LocatedPosting) (string, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(mapCSVHeader); err != nil {
		return "", fmt.Errorf("error writing map header: %w", err)
	}

	for _, row := range rows {
		if !row.Entry.Resolved || row.Entry.Latitude == nil || row.Entry.Longitude == nil {
			continue
		}
		address := ""
		if row.Entry.ResolvedAddress != nil {
			address = *row.Entry.ResolvedAddress
		}
		p := row.Posting
		record := []string{
			p.Agency, p.BusinessTitle, strconv.Itoa(p.NumberOfPositions),
			floatField(p.SalaryFrom), floatField(p.SalaryTo), string(p.SalaryFrequency),
			p.MinimumQualRequirements, p.WorkLocation,
			strconv.FormatFloat(*row.Entry.Longitude, 'f', -1, 64),
			strconv.FormatFloat(*row.Entry.Latitude, 'f', -1, 64),
			address, bracket.Color(),
		}
		if err := cw.Write(record); err != nil {
			return "", fmt.Errorf("error writing map row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("error flushing map file: %w", err)
	}

	path := w.path(fmt.Sprintf("map-%s.csv", bracket))
	if err := w.s.SaveFile(path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Job posting locations</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map('map').setView([40.7128, -74.0060], 11);
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {maxZoom: 19}).addTo(map);
{{range .Points}}L.circleMarker([{{.Lat}}, {{.Lng}}], {radius: 5, color: {{.Color}}}).bindPopup({{.Title}}).addTo(map);
{{end}}</script>
</body>
</html>
`))

// Points converts located postings to the collaborator input shape.
func Points(bracket Bracket, rows []LocatedPosting) []MapPoint {
	var out []MapPoint
	for _, row := range rows {
		if !row.Entry.Resolved || row.Entry.Latitude == nil || row.Entry.Longitude == nil {
			continue
		}
		out = append(out, MapPoint{
			Lat:   *row.Entry.Latitude,
			Lng:   *row.Entry.Longitude,
			Color: bracket.Color(),
			Title: row.Posting.BusinessTitle,
		})
	}
	return out
}

// WriteMapHTML renders the interactive map artifact from both brackets'
// points.
func (w *Writer) WriteMapHTML(points []MapPoint) (string, error) {
	var buf bytes.Buffer
	if err := mapTemplate.Execute(&buf, struct{ Points []MapPoint }{points}); err != nil {
		return "", fmt.Errorf("error rendering map: %w", err)
	}
	path := w.path("map.html")
	if err := w.s.SaveFile(path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

func floatField(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
