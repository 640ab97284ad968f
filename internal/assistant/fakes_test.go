package assistant

import (
	"context"
	"strings"
	"sync"

	"animebuddy/internal/anime"
	"animebuddy/internal/services"
)

var errNotFound = services.Wrap(services.ErrNoMatch, "fake catalog", "fetch", "not found", nil)

// scriptedGateway answers each prompt kind with a canned reply.
type scriptedGateway struct {
	mu sync.Mutex

	intent     string
	title      string
	genre      string
	year       string
	titles     string
	answer     string
	failStage  map[string]error
	closingLog []string
	stageCalls map[string]int
}

func newScriptedGateway() *scriptedGateway {
	return &scriptedGateway{
		intent:     `{"intent":"unknown"}`,
		title:      `{"hasTitle":false,"title":null,"usage":"none"}`,
		genre:      `{"genre":null}`,
		year:       `{"year":null}`,
		titles:     `{"titles":[]}`,
		answer:     "closing answer",
		failStage:  map[string]error{},
		stageCalls: map[string]int{},
	}
}

func promptStage(prompt string) string {
	switch {
	case strings.HasPrefix(prompt, "Classify the intent"):
		return "classify"
	case strings.HasPrefix(prompt, "Identify whether the following text mentions"):
		return "extract_title"
	case strings.HasPrefix(prompt, "Identify the anime genre"):
		return "extract_genre"
	case strings.HasPrefix(prompt, "Identify the release year"):
		return "extract_year"
	case strings.HasPrefix(prompt, "List every anime title"):
		return "extract_titles"
	default:
		return "answer"
	}
}

func (g *scriptedGateway) Ask(_ context.Context, prompt string) (string, error) {
	stage := promptStage(prompt)
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stageCalls[stage]++
	if err := g.failStage[stage]; err != nil {
		return "", err
	}
	switch stage {
	case "classify":
		return g.intent, nil
	case "extract_title":
		return g.title, nil
	case "extract_genre":
		return g.genre, nil
	case "extract_year":
		return g.year, nil
	case "extract_titles":
		return g.titles, nil
	default:
		g.closingLog = append(g.closingLog, prompt)
		return g.answer, nil
	}
}

func (g *scriptedGateway) calls(stage string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stageCalls[stage]
}

func (g *scriptedGateway) closingPrompts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.closingLog...)
}

type fakeCatalog struct {
	mu sync.Mutex

	records   map[string]anime.Record
	recs      map[string][]anime.Record
	top       []anime.Record
	failTitle map[string]error
	topErr    error
	block     bool

	byTitleCalls int
	recCalls     int
	topCalls     int
	topFilters   []anime.TopFilter
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		records:   map[string]anime.Record{},
		recs:      map[string][]anime.Record{},
		failTitle: map[string]error{},
	}
}

func (c *fakeCatalog) FetchByTitle(ctx context.Context, title string) (anime.Record, error) {
	c.mu.Lock()
	c.byTitleCalls++
	block := c.block
	err := c.failTitle[title]
	rec, ok := c.records[title]
	c.mu.Unlock()

	if block {
		<-ctx.Done()
		return anime.Record{}, ctx.Err()
	}
	if err != nil {
		return anime.Record{}, err
	}
	if !ok {
		return anime.Record{}, errNotFound
	}
	return rec, nil
}

func (c *fakeCatalog) FetchRecommendations(_ context.Context, seedTitle string) ([]anime.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recCalls++
	recs, ok := c.recs[seedTitle]
	if !ok {
		return nil, errNotFound
	}
	return recs, nil
}

func (c *fakeCatalog) FetchTop(_ context.Context, filter anime.TopFilter) ([]anime.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topCalls++
	c.topFilters = append(c.topFilters, filter)
	if c.topErr != nil {
		return nil, c.topErr
	}
	return c.top, nil
}

func (c *fakeCatalog) totalCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.byTitleCalls + c.recCalls + c.topCalls
}
