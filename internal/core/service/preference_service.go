package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
)

// PreferenceService persists the UI language under the "language" key.
type PreferenceService struct {
	storage ports.DurableStorage
	log     zerolog.Logger
}

func NewPreferenceService(storage ports.DurableStorage, log zerolog.Logger) *PreferenceService {
	return &PreferenceService{storage: storage, log: log}
}

// Language returns the stored locale. A missing or unreadable value falls
// back to the default.
func (s *PreferenceService) Language(ctx context.Context) (domain.Locale, error) {
	v, err := s.storage.Get(ctx, domain.KeyLanguage)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return domain.DefaultLocale, nil
	}
	if err != nil {
		return "", fmt.Errorf("read language: %w", err)
	}

	var raw string
	if err := json.Unmarshal(v.Data, &raw); err != nil {
		raw = string(v.Data)
	}
	locale, ok := domain.ParseLocale(raw)
	if !ok {
		s.log.Warn().Str("value", raw).Msg("ignoring unsupported stored language")
		return domain.DefaultLocale, nil
	}
	return locale, nil
}

func (s *PreferenceService) SetLanguage(ctx context.Context, locale domain.Locale) error {
	if _, ok := domain.ParseLocale(string(locale)); !ok {
		verr := domain.NewValidationError()
		verr.Add("language", "Language must be one of en, hi, mr")
		return verr
	}
	data, _ := json.Marshal(string(locale))
	if err := s.storage.Set(ctx, domain.KeyLanguage, data); err != nil {
		return fmt.Errorf("write language: %w", err)
	}
	return nil
}
