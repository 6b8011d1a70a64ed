package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/fastprodman/billionspend/internal/notify"
)

const Key = "@settings"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

var ErrInvalidTheme = errors.New("invalid theme")

type Accessibility struct {
	LargeText    bool `json:"largeText"`
	HighContrast bool `json:"highContrast"`
	ScreenReader bool `json:"screenReader"`
}

// AccessibilityPatch changes only the fields that are set.
type AccessibilityPatch struct {
	LargeText    *bool `json:"largeText,omitempty"`
	HighContrast *bool `json:"highContrast,omitempty"`
	ScreenReader *bool `json:"screenReader,omitempty"`
}

type AppSettings struct {
	SoundEnabled     bool          `json:"soundEnabled"`
	VibrationEnabled bool          `json:"vibrationEnabled"`
	Theme            Theme         `json:"theme" validate:"oneof=light dark auto"`
	Language         string        `json:"language"`
	Accessibility    Accessibility `json:"accessibility"`
}

func Defaults() AppSettings {
	return AppSettings{
		SoundEnabled:     true,
		VibrationEnabled: true,
		Theme:            ThemeAuto,
		Language:         "en",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type Persister interface {
	Save(key string, v any)
	Load(ctx context.Context, key string, dst any) (bool, error)
}

type Store struct {
	store   Persister
	changes notify.Broadcaster

	mu       sync.Mutex
	settings AppSettings
}

func New(store Persister) *Store {
	return &Store{store: store, settings: Defaults()}
}

// Subscribe registers fn to be called after every change.
func (s *Store) Subscribe(fn func()) func() {
	return s.changes.Subscribe(fn)
}

func (s *Store) mutate(fn func(a *AppSettings)) {
	s.mu.Lock()
	fn(&s.settings)
	s.store.Save(Key, s.settings)
	s.mu.Unlock()

	s.changes.Notify()
}

func (s *Store) SetSoundEnabled(enabled bool) {
	s.mutate(func(a *AppSettings) { a.SoundEnabled = enabled })
}

func (s *Store) SetVibrationEnabled(enabled bool) {
	s.mutate(func(a *AppSettings) { a.VibrationEnabled = enabled })
}

// SetTheme rejects anything but light, dark and auto.
func (s *Store) SetTheme(theme Theme) error {
	err := validate.Var(string(theme), "oneof=light dark auto")
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}

	s.mutate(func(a *AppSettings) { a.Theme = theme })

	return nil
}

func (s *Store) SetLanguage(language string) {
	s.mutate(func(a *AppSettings) { a.Language = language })
}

// SetAccessibility merges patch into the current accessibility options.
func (s *Store) SetAccessibility(patch AccessibilityPatch) {
	s.mutate(func(a *AppSettings) {
		if patch.LargeText != nil {
			a.Accessibility.LargeText = *patch.LargeText
		}

		if patch.HighContrast != nil {
			a.Accessibility.HighContrast = *patch.HighContrast
		}

		if patch.ScreenReader != nil {
			a.Accessibility.ScreenReader = *patch.ScreenReader
		}
	})
}

func (s *Store) Reset() {
	s.mutate(func(a *AppSettings) { *a = Defaults() })
}

// Discard restores the defaults in memory without scheduling a write.
func (s *Store) Discard() {
	s.mu.Lock()
	s.settings = Defaults()
	s.mu.Unlock()

	s.changes.Notify()
}

// Load merges the stored settings over the defaults. A stored record that
// fails validation is rejected and the current settings kept.
func (s *Store) Load(ctx context.Context) error {
	loaded := Defaults()

	found, err := s.store.Load(ctx, Key, &loaded)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if !found {
		return nil
	}

	err = validate.Struct(loaded)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	s.mu.Lock()
	s.settings = loaded
	s.mu.Unlock()

	s.changes.Notify()

	return nil
}

func (s *Store) Settings() AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.settings
}

func (s *Store) IsSoundEnabled() bool { return s.Settings().SoundEnabled }

func (s *Store) IsVibrationEnabled() bool { return s.Settings().VibrationEnabled }

func (s *Store) Theme() Theme { return s.Settings().Theme }

func (s *Store) Language() string { return s.Settings().Language }

func (s *Store) AccessibilityStatus() Accessibility { return s.Settings().Accessibility }

type Formatted struct {
	Sound        string `json:"sound"`
	Vibration    string `json:"vibration"`
	Theme        string `json:"theme"`
	Language     string `json:"language"`
	LargeText    string `json:"largeText"`
	HighContrast string `json:"highContrast"`
	ScreenReader string `json:"screenReader"`
}

func onOff(b bool) string {
	if b {
		return "Enabled"
	}

	return "Disabled"
}

func (s *Store) Formatted() Formatted {
	a := s.Settings()

	theme := string(a.Theme)
	if theme != "" {
		theme = strings.ToUpper(theme[:1]) + theme[1:]
	}

	return Formatted{
		Sound:        onOff(a.SoundEnabled),
		Vibration:    onOff(a.VibrationEnabled),
		Theme:        theme,
		Language:     strings.ToUpper(a.Language),
		LargeText:    onOff(a.Accessibility.LargeText),
		HighContrast: onOff(a.Accessibility.HighContrast),
		ScreenReader: onOff(a.Accessibility.ScreenReader),
	}
}
