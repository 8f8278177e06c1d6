package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Veraticus/shopimpact/internal/model"
)

// TimeLayout is the wire format for timestamps in the saved document.
const TimeLayout = "2006-01-02 15:04:05"

type document struct {
	Purchases   []purchaseRecord `json:"purchases"`
	UserProfile *profileRecord   `json:"user_profile"`
}

type purchaseRecord struct {
	Date      string  `json:"date"`
	Type      string  `json:"type"`
	Brand     string  `json:"brand"`
	Price     float64 `json:"price"`
	CO2Impact float64 `json:"co2_impact"`
}

type profileRecord struct {
	Name          string   `json:"name"`
	JoinedDate    string   `json:"joined_date"`
	Badges        []string `json:"badges"`
	MonthlyBudget float64  `json:"monthlyBudget"`
	CO2Goal       float64  `json:"co2Goal"`
}

// Encode serializes state into the saved document format.
func Encode(state *model.State) ([]byte, error) {
	if err := validateState(state); err != nil {
		return nil, err
	}

	doc := document{
		Purchases:   make([]purchaseRecord, 0, len(state.Purchases)),
		UserProfile: toProfileRecord(state.Profile),
	}
	for _, p := range state.Purchases {
		doc.Purchases = append(doc.Purchases, toPurchaseRecord(p))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize state: %w", err)
	}
	return data, nil
}

// Decode parses a saved document. Any structural problem is reported as ErrCorrupt.
func Decode(data []byte) (*model.State, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.UserProfile == nil {
		return nil, fmt.Errorf("%w: missing user_profile", ErrCorrupt)
	}

	state := &model.State{Purchases: make([]model.Purchase, 0, len(doc.Purchases))}
	for i, rec := range doc.Purchases {
		p, err := fromPurchaseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: purchase %d: %v", ErrCorrupt, i, err)
		}
		state.Purchases = append(state.Purchases, p)
	}

	profile, err := fromProfileRecord(*doc.UserProfile)
	if err != nil {
		return nil, fmt.Errorf("%w: user_profile: %v", ErrCorrupt, err)
	}
	state.Profile = profile

	if err := validateState(state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return state, nil
}

func toPurchaseRecord(p model.Purchase) purchaseRecord {
	return purchaseRecord{
		Date:      formatTime(p.Timestamp),
		Type:      p.Category,
		Brand:     p.Brand,
		Price:     p.Price,
		CO2Impact: p.CO2Impact,
	}
}

func fromPurchaseRecord(rec purchaseRecord) (model.Purchase, error) {
	ts, err := parseTime(rec.Date)
	if err != nil {
		return model.Purchase{}, err
	}
	return model.Purchase{
		Timestamp: ts,
		Category:  rec.Type,
		Brand:     rec.Brand,
		Price:     rec.Price,
		CO2Impact: rec.CO2Impact,
	}, nil
}

func toProfileRecord(p model.Profile) *profileRecord {
	badges := p.Badges
	if badges == nil {
		badges = []string{}
	}
	return &profileRecord{
		Name:          p.Name,
		MonthlyBudget: p.MonthlyBudget,
		CO2Goal:       p.CO2Goal,
		Badges:        badges,
		JoinedDate:    formatTime(p.JoinedDate),
	}
}

func fromProfileRecord(rec profileRecord) (model.Profile, error) {
	joined, err := parseTime(rec.JoinedDate)
	if err != nil {
		return model.Profile{}, err
	}
	badges := rec.Badges
	if badges == nil {
		badges = []string{}
	}
	return model.Profile{
		Name:          rec.Name,
		MonthlyBudget: rec.MonthlyBudget,
		CO2Goal:       rec.CO2Goal,
		Badges:        badges,
		JoinedDate:    joined,
	}, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// parseTime accepts the document layout and RFC 3339 for hand-edited files.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return t.UTC().Truncate(time.Second), nil
}
