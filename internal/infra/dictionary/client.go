package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/aliskhannn/lingvo-bot/internal/domain/entities"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected dictionary response status")
	ErrNoDefinition     = errors.New("no definition found")
	ErrNoWord           = errors.New("random word service returned no word")
)

// Client fetches random words and their English definitions.
type Client struct {
	httpClient    *http.Client
	randomWordURL string
	baseURL       string
}

func NewClient(httpClient *http.Client, randomWordURL, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient:    httpClient,
		randomWordURL: randomWordURL,
		baseURL:       strings.TrimRight(baseURL, "/"),
	}
}

// RandomWord returns the first word of the random word service response.
func (c *Client) RandomWord(ctx context.Context) (string, error) {
	var words []string
	if err := c.getJSON(ctx, c.randomWordURL, &words); err != nil {
		return "", fmt.Errorf("random word: %w", err)
	}
	if len(words) == 0 {
		return "", ErrNoWord
	}
	return words[0], nil
}

type entry struct {
	Word     string `json:"word"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Define returns the first definition of the first meaning of word.
func (c *Client) Define(ctx context.Context, word string) (entities.Definition, error) {
	endpoint := fmt.Sprintf("%s/api/v2/entries/en/%s", c.baseURL, url.PathEscape(word))

	var entries []entry
	if err := c.getJSON(ctx, endpoint, &entries); err != nil {
		return entities.Definition{}, fmt.Errorf("define %q: %w", word, err)
	}

	for _, e := range entries {
		for _, m := range e.Meanings {
			for _, d := range m.Definitions {
				if strings.TrimSpace(d.Definition) != "" {
					return entities.Definition{PartOfSpeech: m.PartOfSpeech, Text: d.Definition}, nil
				}
			}
		}
	}

	return entities.Definition{}, fmt.Errorf("define %q: %w", word, ErrNoDefinition)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNoDefinition
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
