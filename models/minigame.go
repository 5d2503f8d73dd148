package models

import (
	"github.com/gosimple/slug"
)

// ContentKind names the payload type a minigame needs from the remote
// content-generation service. Empty for games whose boards are generated
// client-side.
type ContentKind string

const (
	ContentTrivia    ContentKind = "trivia"
	ContentScramble  ContentKind = "scramble"
	ContentSequence  ContentKind = "sequence"
	ContentIntruder  ContentKind = "intruder"
	ContentDailyWord ContentKind = "daily_word"
)

// Minigame is a static catalog entry. At most one of UnlockLevel / UnlockCost /
// AdGated is set; a game with none of them is free from the start.
type Minigame struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Emoji       string      `json:"emoji"`
	Tutorial    string      `json:"tutorial"`
	Content     ContentKind `json:"content,omitempty"`
	UnlockLevel int         `json:"unlock_level,omitempty"`
	UnlockCost  int64       `json:"unlock_cost,omitempty"`
	AdGated     bool        `json:"ad_gated,omitempty"`
}

func game(name string, g Minigame) Minigame {
	g.ID = slug.Make(name)
	g.Name = name
	return g
}

// MinigameCatalog is the fixed set of games the home screen offers.
var MinigameCatalog = []Minigame{
	game("Memory Match", Minigame{
		Emoji:    "🃏",
		Tutorial: "Flip cards two at a time and find every matching pair before the timer runs out.",
	}),
	game("Quick Math", Minigame{
		Emoji:    "➗",
		Tutorial: "Solve as many arithmetic problems as you can. Wrong answers cost time.",
	}),
	game("Trivia Rush", Minigame{
		Emoji:       "❓",
		Content:     ContentTrivia,
		UnlockLevel: 3,
		Tutorial:    "Answer trivia questions against the clock. Use a hint if you get stuck.",
	}),
	game("Word Scramble", Minigame{
		Emoji:       "🔤",
		Content:     ContentScramble,
		UnlockLevel: 5,
		Tutorial:    "Unscramble the letters to form the hidden word before time runs out.",
	}),
	game("Pattern Recall", Minigame{
		Emoji:      "🟪",
		UnlockCost: 500,
		Tutorial:   "Watch the tiles light up, then repeat the pattern from memory.",
	}),
	game("Number Sequence", Minigame{
		Emoji:       "🔢",
		Content:     ContentSequence,
		UnlockLevel: 8,
		Tutorial:    "Figure out the rule behind the sequence and pick the next number.",
	}),
	game("Odd One Out", Minigame{
		Emoji:      "🔍",
		Content:    ContentIntruder,
		UnlockCost: 1500,
		Tutorial:   "Four items, one intruder. Spot the one that doesn't belong.",
	}),
	game("Speed Sort", Minigame{
		Emoji:    "⚡",
		AdGated:  true,
		Tutorial: "Sort the falling shapes into the right bins. It gets faster. A lot faster.",
	}),
}

// MinigameByID looks up a catalog entry; ok=false for unknown ids.
func MinigameByID(id string) (Minigame, bool) {
	for _, g := range MinigameCatalog {
		if g.ID == id {
			return g, true
		}
	}
	return Minigame{}, false
}

// StoreItemKind separates the two cosmetic catalogs.
type StoreItemKind string

const (
	StoreItemTheme  StoreItemKind = "theme"
	StoreItemAvatar StoreItemKind = "avatar"
)

// StoreItem is a purchasable cosmetic. The default theme/avatar are listed at
// price 0 and owned by every profile.
type StoreItem struct {
	ID    string        `json:"id"`
	Kind  StoreItemKind `json:"kind"`
	Name  string        `json:"name"`
	Emoji string        `json:"emoji"`
	Price int64         `json:"price"`
}

var ThemeCatalog = []StoreItem{
	{ID: DefaultThemeID, Kind: StoreItemTheme, Name: "Classic", Emoji: "⬜", Price: 0},
	{ID: "ocean", Kind: StoreItemTheme, Name: "Ocean", Emoji: "🌊", Price: 500},
	{ID: "forest", Kind: StoreItemTheme, Name: "Forest", Emoji: "🌲", Price: 500},
	{ID: "sunset", Kind: StoreItemTheme, Name: "Sunset", Emoji: "🌇", Price: 1000},
	{ID: "neon", Kind: StoreItemTheme, Name: "Neon", Emoji: "💜", Price: 2500},
	{ID: "galaxy", Kind: StoreItemTheme, Name: "Galaxy", Emoji: "🌌", Price: 5000},
}

var AvatarCatalog = []StoreItem{
	{ID: DefaultAvatarID, Kind: StoreItemAvatar, Name: "Fox", Emoji: "🦊", Price: 0},
	{ID: "owl", Kind: StoreItemAvatar, Name: "Owl", Emoji: "🦉", Price: 300},
	{ID: "panda", Kind: StoreItemAvatar, Name: "Panda", Emoji: "🐼", Price: 300},
	{ID: "cat", Kind: StoreItemAvatar, Name: "Cat", Emoji: "🐱", Price: 600},
	{ID: "robot", Kind: StoreItemAvatar, Name: "Robot", Emoji: "🤖", Price: 1200},
	{ID: "alien", Kind: StoreItemAvatar, Name: "Alien", Emoji: "👽", Price: 3000},
}

// StoreItemByID searches the catalog for the given kind.
func StoreItemByID(kind StoreItemKind, id string) (StoreItem, bool) {
	catalog := ThemeCatalog
	if kind == StoreItemAvatar {
		catalog = AvatarCatalog
	}
	for _, item := range catalog {
		if item.ID == id {
			return item, true
		}
	}
	return StoreItem{}, false
}
