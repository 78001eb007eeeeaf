package profile

import (
	"time"

	"github.com/abhisek/shindan/internal/aptitude"
)

// DiagnosisType identifies which quiz produced a diagnosis.
type DiagnosisType string

const (
	TypeJobAptitude      DiagnosisType = "job-aptitude"
	TypeCultureMatch     DiagnosisType = "culture-match"
	TypeCareerType       DiagnosisType = "career-type"
	TypeIndustryAptitude DiagnosisType = "industry-aptitude"
)

// RewardType classifies an unlocked reward.
type RewardType string

const (
	RewardNovelty     RewardType = "novelty"
	RewardInformation RewardType = "information"
	RewardDiscount    RewardType = "discount"
	RewardSpecial     RewardType = "special"
)

// AllRewardTypes returns every reward type in display order.
func AllRewardTypes() []RewardType {
	return []RewardType{RewardNovelty, RewardInformation, RewardDiscount, RewardSpecial}
}

// DisplayName returns a human-readable label for the reward type.
func (t RewardType) DisplayName() string {
	switch t {
	case RewardNovelty:
		return "Novelty"
	case RewardInformation:
		return "Info"
	case RewardDiscount:
		return "Discount"
	case RewardSpecial:
		return "Special"
	default:
		return string(t)
	}
}

// Theme is the user's display preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Preferences holds user settings.
type Preferences struct {
	Theme         Theme `json:"theme"`
	Notifications bool  `json:"notifications"`
}

// DefaultPreferences returns the settings of a new user.
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeSystem, Notifications: true}
}

// Diagnosis is one completed quiz.
type Diagnosis struct {
	ID          string                   `json:"id"`
	Type        DiagnosisType            `json:"type"`
	Answers     []aptitude.Answer        `json:"answers"`
	Result      aptitude.DiagnosisResult `json:"result"`
	CompletedAt time.Time                `json:"completedAt"`
}

// Reward is an item unlocked through the reward draw.
type Reward struct {
	ID          string     `json:"id"`
	Type        RewardType `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	UnlockedAt  time.Time  `json:"unlockedAt"`
}

// UserData is the single persisted record holding all user state.
type UserData struct {
	UserID             string      `json:"userId"`
	CompletedDiagnoses []Diagnosis `json:"completedDiagnoses"`
	Points             int         `json:"points"`
	UnlockedRewards    []Reward    `json:"unlockedRewards"`
	Preferences        Preferences `json:"preferences"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

// NewUserData returns an empty record for userID created at now.
func NewUserData(userID string, now time.Time) *UserData {
	return &UserData{
		UserID:             userID,
		CompletedDiagnoses: []Diagnosis{},
		Points:             0,
		UnlockedRewards:    []Reward{},
		Preferences:        DefaultPreferences(),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Diagnosis returns the stored diagnosis with id.
func (u *UserData) Diagnosis(id string) (Diagnosis, bool) {
	for _, d := range u.CompletedDiagnoses {
		if d.ID == id {
			return d, true
		}
	}
	return Diagnosis{}, false
}
