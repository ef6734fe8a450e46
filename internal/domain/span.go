package domain

import (
	"context"
	"encoding/json"
	"time"
)

type Span struct {
	Name    string    `json:"name"`
	startTs time.Time
	Elapsed *int64    `json:"elapsedMs"`
}

type contextKey string

const ContextProfileKey contextKey = "performanceProfile"

// GetProfile returns the profile stored in ctx. Callers that did not
// set one up get a detached profile so stage timing never fails a run.
func GetProfile(ctx context.Context) (profile *Profile, endProfile func()) {
	profile, ok := ctx.Value(ContextProfileKey).(*Profile)
	if !ok || profile == nil {
		profile, _ = NewProfile()
	}
	return profile, profile.End
}

func NewCtxWithProfile(ctx context.Context) (context.Context, *Profile) {
	profile, _ := NewProfile()
	return context.WithValue(ctx, ContextProfileKey, profile), profile
}

// Profile is simply a list of spans
type Profile struct {
	Spans   []*Span `json:"spans"`
	startTs time.Time
	TotalMs *int64 `json:"totalMs"`
}

func (p *Profile) End() {
	if len(p.Spans) > 0 {
		p.Spans[len(p.Spans)-1].End()
	}
	t := time.Since(p.startTs).Milliseconds()
	if p.TotalMs == nil {
		p.TotalMs = &t
	}
}

func (s *Span) End() {
	if s.Elapsed == nil {
		t := time.Since(s.startTs).Milliseconds()
		s.Elapsed = &t
	}
}

func NewProfile() (newProfile *Profile, endNewProfile func()) {
	newProfile = &Profile{
		Spans:   []*Span{},
		startTs: time.Now(),
	}

	return newProfile, newProfile.End
}

// StartNewSpan ends the last span and begins a new one
// not thread safe
func (p *Profile) StartNewSpan(name string) (newSpan *Span, endSpan func()) {
	newSpan = &Span{
		Name:    name,
		startTs: time.Now(),
	}
	if len(p.Spans) > 0 {
		p.Spans[len(p.Spans)-1].End()
	}
	p.Spans = append(p.Spans, newSpan)
	return newSpan, newSpan.End
}

func (p *Profile) ToJsonBytes() ([]byte, error) {
	bytes, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return bytes, nil
}
