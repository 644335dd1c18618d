package transport

import (
	"net/http"

	"github.com/rpggio/qontract/internal/localization"
)

// LanguageResolver picks the response language for a request.
type LanguageResolver interface {
	Resolve(explicit, acceptLanguage string) localization.Language
}

// LanguageMiddleware stores the language chosen from ?lang= or
// Accept-Language in the request context.
func LanguageMiddleware(resolver LanguageResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := resolver.Resolve(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
			w.Header().Set("Content-Language", string(lang))
			next.ServeHTTP(w, r.WithContext(localization.ToContext(r.Context(), lang)))
		})
	}
}
