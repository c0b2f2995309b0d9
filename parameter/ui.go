package parameter

import "time"

// Layout & Margins
const (
	// TopMargin holds the HUD line
	TopMargin = 1

	// BottomMargin holds the status line (bonus ladder, audio, debug metrics)
	BottomMargin = 1

	// MinPlayRows is the smallest playfield height the renderer draws into
	MinPlayRows = 4
)

// Status Bar & HUD
const (
	// UI Symbols
	AudioStr     = "♫ "
	LifeFull     = '♥'
	LifeEmpty    = '♡'
	TrailChar    = '·'
	TrailHead    = '•'
	LadderFull   = '█'
	LadderEmpty  = '░'
	PausedText   = " PAUSED  Esc resume  r restart  q quit "
	GameOverText = " GAME OVER  r restart  q quit "

	// BannerDuration is how long a HUD banner stays up in game time
	BannerDuration = 1200 * time.Millisecond

	// NearMissBannerDuration is shorter so close calls do not mask scoring banners
	NearMissBannerDuration = 400 * time.Millisecond
)
