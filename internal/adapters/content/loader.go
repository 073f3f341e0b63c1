package content

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/bakerysim-go/internal/application/game"
	"github.com/andrescamacho/bakerysim-go/internal/application/logging"
	"github.com/andrescamacho/bakerysim-go/internal/domain/catalog"
	"github.com/andrescamacho/bakerysim-go/internal/domain/event"
	"github.com/andrescamacho/bakerysim-go/internal/domain/region"
	"github.com/andrescamacho/bakerysim-go/internal/domain/resources"
)

//go:embed data/regions.yaml data/catalog.yaml data/events.json data/events.schema.json
var embedded embed.FS

const (
	regionsFile = "data/regions.yaml"
	catalogFile = "data/catalog.yaml"
	eventsFile  = "data/events.json"
	schemaFile  = "data/events.schema.json"
	schemaURL   = "events.schema.json"
)

// Paths points at content files replacing the embedded ones.
// An empty path keeps the embedded file.
type Paths struct {
	Regions string
	Catalog string
	Events  string
}

// Loader reads game content. Any override that cannot be read, parsed or
// validated is replaced by the embedded file and reported as a warning.
type Loader struct {
	paths  Paths
	schema *jsonschema.Schema
}

// NewLoader compiles the event schema and creates a loader
func NewLoader(paths Paths) (*Loader, error) {
	raw, err := embedded.ReadFile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read event schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to add event schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile event schema: %w", err)
	}
	return &Loader{paths: paths, schema: schema}, nil
}

// LoadEmbedded returns the content bundled with the binary
func LoadEmbedded() (game.Content, error) {
	l, err := NewLoader(Paths{})
	if err != nil {
		return game.Content{}, err
	}
	return l.Load(context.Background())
}

// Load reads every content file, falling back to the embedded copy per file
func (l *Loader) Load(ctx context.Context) (game.Content, error) {
	logger := logging.LoggerFromContext(ctx)

	regions, err := loadWithFallback(logger, "regions", l.paths.Regions, regionsFile, parseRegions)
	if err != nil {
		return game.Content{}, err
	}
	products, err := loadWithFallback(logger, "catalog", l.paths.Catalog, catalogFile, parseCatalog)
	if err != nil {
		return game.Content{}, err
	}
	events, err := loadWithFallback(logger, "events", l.paths.Events, eventsFile, l.parseEvents)
	if err != nil {
		return game.Content{}, err
	}

	content := game.Content{Regions: regions, Catalog: products, Events: events}
	if err := content.Validate(); err != nil {
		if l.paths == (Paths{}) {
			return game.Content{}, fmt.Errorf("embedded content is inconsistent: %w", err)
		}
		logger.Log(logging.LevelWarning, "Content files are inconsistent; using embedded content", map[string]interface{}{
			"error": err.Error(),
		})
		return LoadEmbedded()
	}
	return content, nil
}

func loadWithFallback[T any](logger logging.GameLogger, name, overridePath, embeddedPath string, parse func([]byte) (T, error)) (T, error) {
	if overridePath != "" {
		value, err := readOverride(overridePath, parse)
		if err == nil {
			return value, nil
		}
		logger.Log(logging.LevelWarning, "Content file rejected; using embedded copy", map[string]interface{}{
			"content": name,
			"path":    overridePath,
			"error":   err.Error(),
		})
	}

	var zero T
	raw, err := embedded.ReadFile(embeddedPath)
	if err != nil {
		return zero, fmt.Errorf("failed to read embedded %s: %w", name, err)
	}
	value, err := parse(raw)
	if err != nil {
		return zero, fmt.Errorf("embedded %s is invalid: %w", name, err)
	}
	return value, nil
}

func readOverride[T any](path string, parse func([]byte) (T, error)) (T, error) {
	var zero T
	raw, err := os.ReadFile(path)
	if err != nil {
		return zero, err
	}
	return parse(raw)
}

type regionsDocument struct {
	Regions []struct {
		Type      string `yaml:"type"`
		BaseRent  int    `yaml:"base_rent"`
		Districts []struct {
			Name        string  `yaml:"name"`
			Coefficient float64 `yaml:"coefficient"`
		} `yaml:"districts"`
	} `yaml:"regions"`
}

func parseRegions(raw []byte) (*region.Table, error) {
	var doc regionsDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse regions: %w", err)
	}
	regions := make([]region.Region, 0, len(doc.Regions))
	for _, r := range doc.Regions {
		districts := make([]region.District, 0, len(r.Districts))
		for _, d := range r.Districts {
			districts = append(districts, region.District{Name: d.Name, Coefficient: d.Coefficient})
		}
		regions = append(regions, region.Region{Type: r.Type, BaseRent: r.BaseRent, Districts: districts})
	}
	return region.NewTable(regions)
}

type catalogDocument struct {
	Products []struct {
		ID    string `yaml:"id"`
		Name  string `yaml:"name"`
		Cost  int    `yaml:"cost"`
		Price int    `yaml:"price"`
	} `yaml:"products"`
}

func parseCatalog(raw []byte) (*catalog.Catalog, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	products := make([]catalog.Product, 0, len(doc.Products))
	for _, p := range doc.Products {
		products = append(products, catalog.Product{ID: p.ID, Name: p.Name, Cost: p.Cost, Price: p.Price})
	}
	return catalog.NewCatalog(products)
}

type eventsDocument struct {
	Regions map[string][]eventDocument `json:"regions"`
}

type eventDocument struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Signal          string           `json:"signal"`
	StoryText       string           `json:"story_text"`
	Description     string           `json:"description"`
	MarketingLesson string           `json:"marketing_lesson"`
	Options         []optionDocument `json:"options"`
}

type optionDocument struct {
	ID           string            `json:"id"`
	Text         string            `json:"text"`
	FeedbackText string            `json:"feedback_text"`
	Coefficient  float64           `json:"coefficient"`
	Effects      resources.Effects `json:"effects"`
	Correct      bool              `json:"correct"`
}

func (l *Loader) parseEvents(raw []byte) (*event.Dataset, error) {
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("failed to parse events: %w", err)
	}
	if err := l.schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("events do not match schema: %w", err)
	}

	var doc eventsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}

	byRegion := make(map[string][]event.Event, len(doc.Regions))
	for regionType, docs := range doc.Regions {
		events := make([]event.Event, 0, len(docs))
		for _, d := range docs {
			options := make([]event.Option, 0, len(d.Options))
			for _, o := range d.Options {
				options = append(options, event.Option{
					ID:           o.ID,
					Text:         o.Text,
					FeedbackText: o.FeedbackText,
					Coefficient:  o.Coefficient,
					Effects:      o.Effects,
					Correct:      o.Correct,
				})
			}
			events = append(events, event.Event{
				ID:              d.ID,
				Title:           d.Title,
				Signal:          event.EconomicSignal(d.Signal),
				StoryText:       d.StoryText,
				Description:     d.Description,
				MarketingLesson: d.MarketingLesson,
				Options:         options,
			})
		}
		byRegion[regionType] = events
	}
	return event.NewDataset(byRegion)
}
