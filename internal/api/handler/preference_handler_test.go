package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/medicocare/hospital-portal/internal/core/domain"
)

type stubPreferences struct {
	locale domain.Locale
}

func (s *stubPreferences) Language(ctx context.Context) (domain.Locale, error) {
	return s.locale, nil
}

func (s *stubPreferences) SetLanguage(ctx context.Context, locale domain.Locale) error {
	s.locale = locale
	return nil
}

func TestPreferenceHandler_Language(t *testing.T) {
	prefs := &stubPreferences{locale: domain.DefaultLocale}
	h := NewPreferenceHandler(prefs)

	c, rec := newContext(http.MethodGet, "/api/preferences/language", "")
	if err := h.GetLanguage(c); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := rec.Body.String(); got != "{\"language\":\"en\"}\n" {
		t.Fatalf("unexpected body: %s", got)
	}

	c, rec = newContext(http.MethodPut, "/api/preferences/language", `{"language":"mr"}`)
	if err := h.SetLanguage(c); err != nil {
		t.Fatalf("set: %v", err)
	}
	if rec.Code != http.StatusOK || prefs.locale != domain.LocaleMarathi {
		t.Fatalf("expected mr to be stored, got code=%d locale=%q", rec.Code, prefs.locale)
	}
}

func TestPreferenceHandler_SetLanguage_Unsupported(t *testing.T) {
	prefs := &stubPreferences{locale: domain.LocaleHindi}
	h := NewPreferenceHandler(prefs)

	c, _ := newContext(http.MethodPut, "/api/preferences/language", `{"language":"fr"}`)
	if err := h.SetLanguage(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if prefs.locale != domain.LocaleHindi {
		t.Fatalf("locale must be unchanged, got %q", prefs.locale)
	}
}
