package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/qontract/internal/localization"
)

func TestLanguageMiddleware(t *testing.T) {
	messages, err := localization.NewManager(localization.Indonesian)
	require.NoError(t, err)

	tests := []struct {
		name   string
		target string
		accept string
		want   localization.Language
	}{
		{name: "query", target: "/?lang=en", want: localization.English},
		{name: "accept language", target: "/", accept: "en-US,en;q=0.8", want: localization.English},
		{name: "default", target: "/", want: localization.Indonesian},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got localization.Language
			handler := LanguageMiddleware(messages)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = localization.FromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.want, got)
			require.Equal(t, string(tt.want), rec.Header().Get("Content-Language"))
		})
	}
}

func TestServerLanguage_FallsBackToConfiguredDefault(t *testing.T) {
	messages, err := localization.NewManager(localization.English)
	require.NoError(t, err)
	s := &Server{messages: messages}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	require.Equal(t, localization.English, s.language(req))

	req = req.WithContext(localization.ToContext(req.Context(), localization.Indonesian))
	require.Equal(t, localization.Indonesian, s.language(req))
}
