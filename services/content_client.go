package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"brain-play-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoContent means the content-generation service had nothing usable. The
// presenting minigame shows a retry/exit affordance; no retry policy here.
var ErrNoContent = errors.New("no content available")

// Typed payloads, one per minigame content type.

type TriviaQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Hint         string   `json:"hint,omitempty"`
}

type ScrambleWord struct {
	Word string `json:"word"`
	Hint string `json:"hint,omitempty"`
}

type StepSequence struct {
	Steps  []int64 `json:"steps"`
	Answer int64   `json:"answer"`
}

type IntruderSet struct {
	Items         []string `json:"items"`
	IntruderIndex int      `json:"intruder_index"`
}

type DailyWord struct {
	Word string `json:"word"`
}

// ContentClient calls the remote content-generation service. Failures degrade
// to ErrNoContent; the progression engine is never involved for a game that
// produced no content.
type ContentClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
	DB      *gorm.DB
}

func NewContentClient(baseURL, token string, db *gorm.DB) *ContentClient {
	return &ContentClient{
		BaseURL: baseURL,
		Token:   token,
		DB:      db,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *ContentClient) fetch(path, lang string, out any) error {
	url := fmt.Sprintf("%s/content/%s?lang=%s", c.BaseURL, path, lang)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		log.Printf("❌ [CONTENT] request to %s failed: %v", url, err)
		return ErrNoContent
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ [CONTENT] %s returned %d", url, resp.StatusCode)
		return ErrNoContent
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Printf("❌ [CONTENT] failed to decode %s response: %v", path, err)
		return ErrNoContent
	}
	return nil
}

func (c *ContentClient) FetchTrivia(lang string) (*TriviaQuestion, error) {
	var q TriviaQuestion
	if err := c.fetch("trivia", lang, &q); err != nil {
		return nil, err
	}
	if q.Question == "" || len(q.Options) < 2 {
		return nil, ErrNoContent
	}
	return &q, nil
}

func (c *ContentClient) FetchScramble(lang string) (*ScrambleWord, error) {
	var w ScrambleWord
	if err := c.fetch("scramble", lang, &w); err != nil {
		return nil, err
	}
	if w.Word == "" {
		return nil, ErrNoContent
	}
	return &w, nil
}

func (c *ContentClient) FetchSequence(lang string) (*StepSequence, error) {
	var s StepSequence
	if err := c.fetch("sequence", lang, &s); err != nil {
		return nil, err
	}
	if len(s.Steps) == 0 {
		return nil, ErrNoContent
	}
	return &s, nil
}

func (c *ContentClient) FetchIntruder(lang string) (*IntruderSet, error) {
	var s IntruderSet
	if err := c.fetch("intruder", lang, &s); err != nil {
		return nil, err
	}
	if len(s.Items) < 2 {
		return nil, ErrNoContent
	}
	return &s, nil
}

// FetchForGame dispatches on the game's content kind.
func (c *ContentClient) FetchForGame(kind models.ContentKind, lang string) (any, error) {
	switch kind {
	case models.ContentTrivia:
		return c.FetchTrivia(lang)
	case models.ContentScramble:
		return c.FetchScramble(lang)
	case models.ContentSequence:
		return c.FetchSequence(lang)
	case models.ContentIntruder:
		return c.FetchIntruder(lang)
	}
	return nil, ErrNoContent
}

// DailyChallengeWord returns today's cached challenge word, fetching and
// caching it on a miss so every player gets the same word for the day.
func (c *ContentClient) DailyChallengeWord(lang string, now time.Time) (*DailyWord, error) {
	day := now.Format("2006-01-02")

	var item models.ContentItem
	err := c.DB.Where("kind = ? AND language = ? AND day = ?", string(models.ContentDailyWord), lang, day).
		First(&item).Error
	if err == nil {
		var w DailyWord
		if jsonErr := json.Unmarshal([]byte(item.Payload), &w); jsonErr == nil && w.Word != "" {
			return &w, nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return c.RefreshDailyWord(lang, now)
}

// RefreshDailyWord fetches today's word from the provider and upserts the
// cache row. Used by both the cache-miss path and the prefetch scheduler.
func (c *ContentClient) RefreshDailyWord(lang string, now time.Time) (*DailyWord, error) {
	var w DailyWord
	if err := c.fetch("daily-word", lang, &w); err != nil {
		return nil, err
	}
	if w.Word == "" {
		return nil, ErrNoContent
	}

	payload, _ := json.Marshal(w)
	item := models.ContentItem{
		Kind:     string(models.ContentDailyWord),
		Language: lang,
		Payload:  string(payload),
		Day:      now.Format("2006-01-02"),
	}
	if err := c.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "language"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "fetched_at"}),
	}).Create(&item).Error; err != nil {
		log.Printf("⚠️ [CONTENT] failed to cache daily word: %v", err)
	}
	return &w, nil
}
