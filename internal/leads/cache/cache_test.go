package cache

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"clinic_portal_backend/internal/leads/scoring"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Minute), server
}

func sampleProfile() scoring.CustomerProfile {
	return scoring.CustomerProfile{
		Age:              30,
		SkinCondition:    scoring.SkinCondition{OverallScore: 60, SkinAge: 33, Concerns: []string{"acne"}},
		EngagementLevel:  scoring.EngagementLevel{QuestionsAsked: 2, TimeSpentInAnalysis: 9},
		BudgetIndicators: scoring.BudgetIndicators{PriceRange: scoring.PriceRangePremium},
	}
}

func TestKey_IsStableAndScoped(t *testing.T) {
	profile := sampleProfile()

	first, err := Key("v1", scoring.LocaleThai, profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := Key("v1", scoring.LocaleThai, profile)
	if first != second {
		t.Fatalf("expected stable key, got %q and %q", first, second)
	}
	if !strings.HasPrefix(first, "lead_score:v1:th:") {
		t.Fatalf("unexpected key layout %q", first)
	}

	otherVersion, _ := Key("v2", scoring.LocaleThai, profile)
	otherLocale, _ := Key("v1", scoring.LocaleEnglish, profile)
	profile.Age = 31
	otherProfile, _ := Key("v1", scoring.LocaleThai, profile)
	for _, key := range []string{otherVersion, otherLocale, otherProfile} {
		if key == first {
			t.Fatalf("expected distinct key, got %q twice", key)
		}
	}
}

func TestCache_RoundTripAndExpiry(t *testing.T) {
	c, server := newTestCache(t)
	ctx := context.Background()
	key, _ := Key("v1", scoring.LocaleEnglish, sampleProfile())

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	want := scoring.NewEngine(scoring.DefaultConfig(), scoring.WithLocale(scoring.LocaleEnglish)).Calculate(sampleProfile())
	if err := c.Set(ctx, key, want); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	server.FastForward(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, key); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestCache_CorruptEntryIsAnError(t *testing.T) {
	c, server := newTestCache(t)
	if err := server.Set("lead_score:v1:th:broken", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, _, err := c.Get(context.Background(), "lead_score:v1:th:broken"); err == nil {
		t.Fatalf("expected decode error")
	}
}
