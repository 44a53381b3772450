package domain

import (
	"fmt"
	"time"
)

// XPPerLevel is the amount of XP needed to advance one level.
const XPPerLevel = 250

// UserProfile holds per-address gamification state. Level and NextLevelXP are
// derived from the XP supplied with each request and are not persisted.
type UserProfile struct {
	Address       string `json:"address"`
	ShortAddress  string `json:"shortAddress"`
	Level         int    `json:"level"`
	Rank          int    `json:"rank"`
	Badge         string `json:"badge"`
	JoinDate      string `json:"joinDate"`
	NextLevelXP   int    `json:"nextLevelXP"`
	TokensCreated int    `json:"tokensCreated"`
	TokensTraded  int    `json:"tokensTraded"`
	WinRate       string `json:"winRate"`
	Streak        int    `json:"streak"`
	Achievements  int    `json:"achievements"`
	TotalTrades   int    `json:"totalTrades"`
	TotalVolume   string `json:"totalVolume"`
	HoldDays      int    `json:"holdDays"`
	LargestTrade  string `json:"largestTrade"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// CalcLevel derives a level from total XP. Level 1 starts at 0 XP.
func CalcLevel(xp int) int {
	level := xp/XPPerLevel + 1
	if level < 1 {
		level = 1
	}
	return level
}

// NextLevelXP returns the XP threshold for the next level.
func NextLevelXP(xp int) int {
	return (xp/XPPerLevel + 1) * XPPerLevel
}

// ShortenAddress renders 0xABC… style display addresses.
func ShortenAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

// NewDefaultProfile is the single definition of the payload seeded for a
// fresh address.
func NewDefaultProfile(address string, xp int, now time.Time) *UserProfile {
	return &UserProfile{
		Address:       address,
		ShortAddress:  ShortenAddress(address),
		Level:         CalcLevel(xp),
		Rank:          0,
		Badge:         "Newbie",
		JoinDate:      now.Format("January 2006"),
		NextLevelXP:   NextLevelXP(xp),
		TokensCreated: 0,
		TokensTraded:  0,
		WinRate:       "0%",
		Streak:        0,
		Achievements:  0,
		TotalTrades:   0,
		TotalVolume:   "0 APT",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Achievement is one badge in a user's trophy case.
type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
	Rarity      string `json:"rarity"`
}

// Achievement titles referenced by the unlock rules.
const (
	AchievementFirstLaunch     = "First Launch"
	AchievementVolumeMilestone = "Volume Milestone"
	AchievementHotStreak       = "Hot Streak"
	AchievementMemeMaster      = "Meme Master"
	AchievementDiamondHands    = "Diamond Hands"
	AchievementWhaleHunter     = "Whale Hunter"
)

// DefaultAchievements is the locked set seeded for every fresh address.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{Title: AchievementFirstLaunch, Description: "Created your first token", Icon: "🚀", Unlocked: false, Rarity: "Common"},
		{Title: AchievementVolumeMilestone, Description: "Traded over 10M APT", Icon: "💰", Unlocked: false, Rarity: "Rare"},
		{Title: AchievementHotStreak, Description: "5 winning trades in a row", Icon: "🔥", Unlocked: false, Rarity: "Epic"},
		{Title: AchievementMemeMaster, Description: "Launch 5 successful meme tokens", Icon: "🎭", Unlocked: false, Rarity: "Legendary"},
		{Title: AchievementDiamondHands, Description: "Hold position for 30 days", Icon: "💎", Unlocked: false, Rarity: "Mythic"},
		{Title: AchievementWhaleHunter, Description: "Single trade over 1M APT", Icon: "🐋", Unlocked: false, Rarity: "Legendary"},
	}
}

// Quest is one timed objective shown on the dashboard.
type Quest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Progress    int    `json:"progress"`
	Total       int    `json:"total"`
	Reward      string `json:"reward"`
	TimeLeft    string `json:"timeLeft"`
}

// DefaultQuests is the quest board seeded for every fresh address.
func DefaultQuests() []Quest {
	return []Quest{
		{Title: "Daily Trader", Description: "Make 5 trades today", Progress: 0, Total: 5, Reward: "50 XP", TimeLeft: "24h"},
		{Title: "Token Creator", Description: "Launch 3 tokens this week", Progress: 0, Total: 3, Reward: "200 XP", TimeLeft: "7d"},
		{Title: "Volume King", Description: "Trade 100 APT this month", Progress: 0, Total: 100, Reward: "500 XP", TimeLeft: "30d"},
		{Title: "Social Butterfly", Description: "Share 3 tokens on social", Progress: 0, Total: 3, Reward: "100 XP", TimeLeft: "7d"},
	}
}

// Activity is one entry in a user's activity feed.
type Activity struct {
	Action string `json:"action"`
	Token  string `json:"token"`
	Amount string `json:"amount"`
	Time   string `json:"time"`
	Type   string `json:"type"`
}

// DefaultActivity is the feed seeded for every fresh address.
func DefaultActivity() []Activity {
	return []Activity{
		{Action: "Launched", Token: "$ROCKET", Amount: "1000 tokens", Time: "2 hours ago", Type: "launch"},
		{Action: "Bought", Token: "$DOGE", Amount: "500 APT", Time: "5 hours ago", Type: "buy"},
		{Action: "Sold", Token: "$PEPE", Amount: "1.2K tokens", Time: "1 day ago", Type: "sell"},
		{Action: "Launched", Token: "$MOON", Amount: "2000 tokens", Time: "3 days ago", Type: "launch"},
		{Action: "Bought", Token: "$CYBER", Amount: "250 APT", Time: "1 week ago", Type: "buy"},
	}
}

// String implements fmt.Stringer for log lines.
func (a Activity) String() string {
	return fmt.Sprintf("%s %s %s", a.Action, a.Token, a.Amount)
}
