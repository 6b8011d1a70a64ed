package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastprodman/billionspend/internal/persist/persisttest"
)

func ptr[T any](v T) *T { return &v }

func TestStore_Defaults(t *testing.T) {
	t.Parallel()

	s := New(persisttest.New())

	assert.Equal(t, AppSettings{
		SoundEnabled:     true,
		VibrationEnabled: true,
		Theme:            ThemeAuto,
		Language:         "en",
	}, s.Settings())
	assert.True(t, s.IsSoundEnabled())
	assert.True(t, s.IsVibrationEnabled())
	assert.Equal(t, ThemeAuto, s.Theme())
	assert.Equal(t, "en", s.Language())
	assert.Equal(t, Accessibility{}, s.AccessibilityStatus())
}

func TestStore_SettersPersistAndNotify(t *testing.T) {
	t.Parallel()

	rec := persisttest.New()
	s := New(rec)

	notified := 0
	s.Subscribe(func() { notified++ })

	s.SetSoundEnabled(false)
	s.SetVibrationEnabled(false)
	require.NoError(t, s.SetTheme(ThemeDark))
	s.SetLanguage("de")

	got := s.Settings()
	assert.False(t, got.SoundEnabled)
	assert.False(t, got.VibrationEnabled)
	assert.Equal(t, ThemeDark, got.Theme)
	assert.Equal(t, "de", got.Language)

	assert.Equal(t, 4, notified)
	assert.Equal(t, 4, rec.Saves(Key))
	assert.JSONEq(t, `{
		"soundEnabled": false,
		"vibrationEnabled": false,
		"theme": "dark",
		"language": "de",
		"accessibility": {"largeText": false, "highContrast": false, "screenReader": false}
	}`, rec.Raw(Key))
}

func TestStore_SetThemeRejectsUnknown(t *testing.T) {
	t.Parallel()

	rec := persisttest.New()
	s := New(rec)

	err := s.SetTheme(Theme("sepia"))
	require.ErrorIs(t, err, ErrInvalidTheme)

	assert.Equal(t, ThemeAuto, s.Theme())
	assert.Zero(t, rec.Saves(Key))
}

func TestStore_SetAccessibilityMerges(t *testing.T) {
	t.Parallel()

	s := New(persisttest.New())

	s.SetAccessibility(AccessibilityPatch{LargeText: ptr(true)})
	s.SetAccessibility(AccessibilityPatch{ScreenReader: ptr(true)})

	assert.Equal(t, Accessibility{LargeText: true, ScreenReader: true}, s.AccessibilityStatus())

	s.SetAccessibility(AccessibilityPatch{LargeText: ptr(false), HighContrast: ptr(true)})

	assert.Equal(t, Accessibility{HighContrast: true, ScreenReader: true}, s.AccessibilityStatus())
}

func TestStore_ResetAndDiscard(t *testing.T) {
	t.Parallel()

	rec := persisttest.New()
	s := New(rec)

	s.SetLanguage("fr")
	s.Reset()
	assert.Equal(t, Defaults(), s.Settings())
	assert.Equal(t, 2, rec.Saves(Key))

	s.SetLanguage("fr")
	s.Discard()
	assert.Equal(t, Defaults(), s.Settings())
	assert.Equal(t, 3, rec.Saves(Key))
}

func TestStore_Load(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    AppSettings
		wantErr bool
	}{
		{
			name: "missing_key_keeps_defaults",
			want: Defaults(),
		},
		{
			name: "partial_record_merges_over_defaults",
			raw:  `{"theme":"light","accessibility":{"highContrast":true}}`,
			want: AppSettings{
				SoundEnabled:     true,
				VibrationEnabled: true,
				Theme:            ThemeLight,
				Language:         "en",
				Accessibility:    Accessibility{HighContrast: true},
			},
		},
		{
			name:    "invalid_theme_rejected",
			raw:     `{"theme":"neon"}`,
			want:    Defaults(),
			wantErr: true,
		},
		{
			name:    "garbage_rejected",
			raw:     `{"theme":`,
			want:    Defaults(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := persisttest.New()
			if tt.raw != "" {
				rec.Put(Key, tt.raw)
			}

			s := New(rec)

			err := s.Load(t.Context())
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, s.Settings())
		})
	}
}

func TestStore_RoundTripEmptyLanguage(t *testing.T) {
	t.Parallel()

	rec := persisttest.New()
	s := New(rec)

	s.SetSoundEnabled(false)
	s.SetLanguage("")

	restored := New(rec)
	require.NoError(t, restored.Load(t.Context()))

	assert.Equal(t, s.Settings(), restored.Settings())
	assert.False(t, restored.IsSoundEnabled())
	assert.Empty(t, restored.Language())
}

func TestStore_Formatted(t *testing.T) {
	t.Parallel()

	s := New(persisttest.New())
	s.SetVibrationEnabled(false)
	s.SetAccessibility(AccessibilityPatch{ScreenReader: ptr(true)})

	assert.Equal(t, Formatted{
		Sound:        "Enabled",
		Vibration:    "Disabled",
		Theme:        "Auto",
		Language:     "EN",
		LargeText:    "Disabled",
		HighContrast: "Disabled",
		ScreenReader: "Enabled",
	}, s.Formatted())
}
