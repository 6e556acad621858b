// Package model defines domain entities shared by the client and the server.
package model

import "time"

// ContentType enumerates the kinds of content the platform generates.
type ContentType string

const (
	ContentBlog   ContentType = "blog"
	ContentEmail  ContentType = "email"
	ContentSocial ContentType = "social"
)

// Tone enumerates supported writing tones.
type Tone string

const (
	ToneFormal     Tone = "formal"
	ToneCasual     Tone = "casual"
	ToneFunny      Tone = "funny"
	TonePersuasive Tone = "persuasive"
)

// Length enumerates supported output lengths.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// User is the account identity as reported by the backend.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the client-side record of whether a user is logged in
// and with what credential. User is populated only alongside Token.
type Session struct {
	Token string
	User  *User
}

// Authenticated reports whether the session holds a credential.
func (s Session) Authenticated() bool { return s.Token != "" }

// GenerationRequest describes a single content generation order.
// Immutable once submitted.
type GenerationRequest struct {
	ContentType       ContentType `json:"content_type" validate:"required,oneof=blog email social"`
	Tone              Tone        `json:"tone" validate:"required,oneof=formal casual funny persuasive"`
	Length            Length      `json:"length" validate:"required,oneof=short medium long"`
	Product           string      `json:"product" validate:"required"`
	Audience          string      `json:"audience" validate:"required"`
	ExtraInstructions string      `json:"extra_instructions,omitempty"`
}

// GenerationResult is the backend's answer to a GenerationRequest.
// Read-only to the client.
type GenerationResult struct {
	ID               int64     `json:"id"`
	GeneratedContent string    `json:"generated_content"`
	ModelUsed        string    `json:"model_used"`
	CreatedAt        time.Time `json:"created_at"`
}

// ContentHistoryItem is a durable generation record: the result plus the
// originating request fields. Owned by the backend; the client only caches
// a copy for display.
type ContentHistoryItem struct {
	ID                int64       `json:"id"`
	ContentType       ContentType `json:"content_type"`
	Tone              Tone        `json:"tone"`
	Length            Length      `json:"length"`
	Product           string      `json:"product"`
	Audience          string      `json:"audience"`
	ExtraInstructions string      `json:"extra_instructions,omitempty"`
	GeneratedContent  string      `json:"generated_content"`
	ModelUsed         string      `json:"model_used"`
	CreatedAt         time.Time   `json:"created_at"`
}

// HealthStatus is the backend's liveness report.
type HealthStatus struct {
	Status       string          `json:"status"`
	Service      string          `json:"service"`
	Version      string          `json:"version"`
	AIConfigured map[string]bool `json:"ai_configured,omitempty"`
}

// Tokens collects issued access tokens (refresh not used yet).
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time // access token expiry (for diagnostics)
}

// Account is a server-side user row. Password material never leaves the server.
type Account struct {
	ID        int64
	Email     string
	PwdHash   []byte // Argon2id(password, SaltAuth)
	SaltAuth  []byte // per-user auth salt
	CreatedAt time.Time
}

// Generation is a server-side stored generation row.
type Generation struct {
	ID                int64
	UserID            int64
	ContentType       ContentType
	Tone              Tone
	Length            Length
	Product           string
	Audience          string
	ExtraInstructions string
	GeneratedContent  string
	ModelUsed         string
	CreatedAt         time.Time
}

// HistoryItem converts a stored generation into its client-facing shape.
func (g Generation) HistoryItem() ContentHistoryItem {
	return ContentHistoryItem{
		ID:                g.ID,
		ContentType:       g.ContentType,
		Tone:              g.Tone,
		Length:            g.Length,
		Product:           g.Product,
		Audience:          g.Audience,
		ExtraInstructions: g.ExtraInstructions,
		GeneratedContent:  g.GeneratedContent,
		ModelUsed:         g.ModelUsed,
		CreatedAt:         g.CreatedAt,
	}
}
