// Package launchbox implements the local catalog provider backed by the
// LaunchBox Metadata.xml export.
package launchbox

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Game is one <Game> element from Metadata.xml.
type Game struct {
	DatabaseID  string `xml:"DatabaseID"`
	Name        string `xml:"Name"`
	Platform    string `xml:"Platform"`
	ReleaseYear string `xml:"ReleaseYear"`
	ReleaseDate string `xml:"ReleaseDate"`
	Developer   string `xml:"Developer"`
	Publisher   string `xml:"Publisher"`
	Genres      string `xml:"Genres"`
}

// Released returns the release date when present, otherwise the release year.
func (g Game) Released() string {
	if date := strings.TrimSpace(g.ReleaseDate); date != "" {
		return date
	}
	return strings.TrimSpace(g.ReleaseYear)
}

// GameImage is one <GameImage> element from Metadata.xml.
type GameImage struct {
	DatabaseID string `xml:"DatabaseID"`
	FileName   string `xml:"FileName"`
	Type       string `xml:"Type"`
}

// Dataset holds the parsed export. It is read-only after Decode returns.
type Dataset struct {
	games  []Game
	byID   map[string]int
	images map[string][]GameImage
}

// Load parses the Metadata.xml file at path.
func Load(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open launchbox metadata: %w", err)
	}
	defer file.Close()
	dataset, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return dataset, nil
}

// Decode streams Game and GameImage elements from r. Other elements are
// skipped without being materialized.
func Decode(r io.Reader) (*Dataset, error) {
	dataset := &Dataset{
		byID:   map[string]int{},
		images: map[string][]GameImage{},
	}
	decoder := xml.NewDecoder(r)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "Game":
			var game Game
			if err := decoder.DecodeElement(&game, &start); err != nil {
				return nil, err
			}
			game.DatabaseID = strings.TrimSpace(game.DatabaseID)
			if _, seen := dataset.byID[game.DatabaseID]; !seen && game.DatabaseID != "" {
				dataset.byID[game.DatabaseID] = len(dataset.games)
			}
			dataset.games = append(dataset.games, game)
		case "GameImage":
			var image GameImage
			if err := decoder.DecodeElement(&image, &start); err != nil {
				return nil, err
			}
			id := strings.TrimSpace(image.DatabaseID)
			if id == "" || strings.TrimSpace(image.FileName) == "" {
				continue
			}
			dataset.images[id] = append(dataset.images[id], image)
		}
	}
	return dataset, nil
}

// Games returns every game in document order.
func (d *Dataset) Games() []Game {
	if d == nil {
		return nil
	}
	return d.games
}

// Game returns the first game with the given database id.
func (d *Dataset) Game(id string) (Game, bool) {
	if d == nil {
		return Game{}, false
	}
	idx, ok := d.byID[strings.TrimSpace(id)]
	if !ok {
		return Game{}, false
	}
	return d.games[idx], true
}

// Images returns the images attached to a database id in document order.
func (d *Dataset) Images(id string) []GameImage {
	if d == nil {
		return nil
	}
	return d.images[strings.TrimSpace(id)]
}
